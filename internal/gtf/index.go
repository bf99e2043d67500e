package gtf

import (
	"math"
	"sort"

	"github.com/google/btree"
)

// exonItem wraps an Exon for btree ordering.
type exonItem struct {
	exon *Exon
}

// Less orders exons by start position, breaking ties so that distinct
// exons sharing a start coordinate are never collapsed by the tree.
func (a exonItem) Less(than btree.Item) bool {
	b := than.(exonItem)
	if a.exon.Start != b.exon.Start {
		return a.exon.Start < b.exon.Start
	}
	if a.exon.End != b.exon.End {
		return a.exon.End < b.exon.End
	}
	if a.exon.ID != b.exon.ID {
		return a.exon.ID < b.exon.ID
	}
	return a.exon.Transcript < b.exon.Transcript
}

// chromIndex is an ordered exon index for one chromosome.
type chromIndex struct {
	tree   *btree.BTree
	maxLen int64 // longest exon seen, bounds the overlap scan
}

// ExonSet holds exons indexed by chromosome for overlap queries.
type ExonSet struct {
	byChrom map[string]*chromIndex
	count   int
}

// NewExonSet creates an empty exon set.
func NewExonSet() *ExonSet {
	return &ExonSet{byChrom: make(map[string]*chromIndex)}
}

// Add inserts an exon into the set.
func (s *ExonSet) Add(e *Exon) {
	idx, ok := s.byChrom[e.Chrom]
	if !ok {
		idx = &chromIndex{tree: btree.New(16)}
		s.byChrom[e.Chrom] = idx
	}
	if prev := idx.tree.ReplaceOrInsert(exonItem{exon: e}); prev == nil {
		s.count++
	}
	if length := e.End - e.Start + 1; length > idx.maxLen {
		idx.maxLen = length
	}
}

// Overlapping returns all exons whose [Start, End] range contains pos,
// ordered by start position. The chromosome name is normalized before lookup.
func (s *ExonSet) Overlapping(chrom string, pos int64) []*Exon {
	idx, ok := s.byChrom[normalizeChrom(chrom)]
	if !ok {
		return nil
	}

	var result []*Exon

	// Candidates start at or before pos; the longest exon length bounds
	// how far back an overlapping exon's start can be.
	pivot := exonItem{exon: &Exon{Start: pos, End: math.MaxInt64, ID: "\xff", Transcript: "\xff"}}
	low := pos - idx.maxLen + 1

	idx.tree.DescendLessOrEqual(pivot, func(item btree.Item) bool {
		e := item.(exonItem).exon
		if e.Start < low {
			return false
		}
		if e.End >= pos {
			result = append(result, e)
		}
		return true
	})

	// Descend visits in reverse start order; restore ascending order.
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.ID < b.ID
	})

	return result
}

// Count returns the number of exons in the set.
func (s *ExonSet) Count() int {
	return s.count
}

// Chromosomes returns the chromosome names present in the set.
func (s *ExonSet) Chromosomes() []string {
	chroms := make([]string, 0, len(s.byChrom))
	for c := range s.byChrom {
		chroms = append(chroms, c)
	}
	sort.Strings(chroms)
	return chroms
}
