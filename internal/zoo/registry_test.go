package zoo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel is a minimal Model for registry tests.
type fakeModel struct {
	desc Description
}

func (m *fakeModel) Description() Description { return m.desc }

func (m *fakeModel) DefaultDataloader(args map[string]string) (Dataloader, error) {
	return nil, nil
}

func (m *fakeModel) PredictOnBatch(inputs any) (Prediction, error) {
	return 0.0, nil
}

func register(t *testing.T, name string, labels []string, width int) Description {
	t.Helper()
	desc := Description{
		Name: name,
		Targets: TargetSchema{
			Shape:        []int{width},
			ColumnLabels: labels,
		},
	}
	Register(desc, func() (Model, error) {
		return &fakeModel{desc: desc}, nil
	})
	return desc
}

func TestRegistry_DescribeAndGet(t *testing.T) {
	desc := register(t, "test/registry-basic", []string{"a", "b"}, 2)

	got, err := Describe("test/registry-basic")
	require.NoError(t, err)
	assert.Equal(t, desc, got)

	model, err := Get("test/registry-basic")
	require.NoError(t, err)
	assert.Equal(t, desc, model.Description())
}

func TestRegistry_UnknownModel(t *testing.T) {
	_, err := Describe("test/does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")

	_, err = Get("test/does-not-exist")
	require.Error(t, err)
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	register(t, "test/registry-dup", nil, 1)

	assert.Panics(t, func() {
		register(t, "test/registry-dup", nil, 1)
	})
}

func TestRegistry_List(t *testing.T) {
	register(t, "test/registry-list-b", nil, 1)
	register(t, "test/registry-list-a", nil, 1)

	names := List()
	assert.Contains(t, names, "test/registry-list-a")
	assert.Contains(t, names, "test/registry-list-b")
	assert.IsIncreasing(t, names)
}

func TestBatch_Len(t *testing.T) {
	b := &Batch{
		Metadata: Metadata{
			Variant: VariantMeta{Chrom: []string{"1", "2", "3"}},
		},
	}
	assert.Equal(t, 3, b.Len())
}
