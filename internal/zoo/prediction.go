package zoo

import "fmt"

// Prediction is the result of PredictOnBatch: a float64 scalar, a
// []float64 vector (one value per record) or a [][]float64 matrix
// (one row per record). Any other shape is a contract violation.
type Prediction = any

// Rows normalizes a prediction into one row of values per record.
// A scalar becomes a single-row, single-value result; a vector becomes
// one single-value row per record. Unsupported shapes are fatal.
func Rows(p Prediction) ([][]float64, error) {
	switch v := p.(type) {
	case float64:
		return [][]float64{{v}}, nil
	case []float64:
		rows := make([][]float64, len(v))
		for i, val := range v {
			rows[i] = []float64{val}
		}
		return rows, nil
	case [][]float64:
		return v, nil
	default:
		return nil, fmt.Errorf("only predictions of type scalar, vector or matrix are supported, got %T", p)
	}
}
