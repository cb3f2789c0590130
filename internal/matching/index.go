package matching

import (
	"sort"

	"go.uber.org/zap"
)

// CandidateColumns names the recognized columns of the candidates table.
type CandidateColumns struct {
	ID  string
	Key string
}

// Candidate is one indexed candidate: its id, the ceiling parsed from its
// composite key and the original row for pass-through.
type Candidate struct {
	ID      string
	Ceiling float64
	Record  Record
}

// Index buckets candidates by composite key prefix for fast job lookups.
// Built once, read-only afterwards.
type Index struct {
	buckets map[string][]Candidate
	indexed int
	skipped int
}

// BuildIndex walks the candidates table in order and buckets every candidate
// under its key prefix. A candidate with a malformed key is skipped with a
// warning; one bad record never aborts indexing of the rest.
func BuildIndex(candidates *Table, cols CandidateColumns, logger *zap.Logger) *Index {
	idx := &Index{buckets: make(map[string][]Candidate)}

	for _, row := range candidates.Rows() {
		id := row.Get(cols.ID)
		raw := row.Get(cols.Key)

		key, err := ParseKey(raw)
		if err != nil {
			idx.skipped++
			logger.Warn("skipping candidate with malformed key",
				zap.String("candidate_id", id),
				zap.String("key", raw),
				zap.Error(err),
			)
			continue
		}

		idx.buckets[key.Prefix] = append(idx.buckets[key.Prefix], Candidate{
			ID:      id,
			Ceiling: key.Ceiling,
			Record:  row,
		})
		idx.indexed++

		logger.Debug("indexed candidate",
			zap.String("candidate_id", id),
			zap.String("prefix", key.Prefix),
			zap.Float64("ceiling", key.Ceiling),
		)
	}

	return idx
}

// Bucket returns the candidates sharing the given prefix in input order.
// A prefix with no valid candidates has no bucket.
func (i *Index) Bucket(prefix string) []Candidate {
	return i.buckets[prefix]
}

// Prefixes returns every bucketed prefix, sorted.
func (i *Index) Prefixes() []string {
	prefixes := make([]string, 0, len(i.buckets))
	for prefix := range i.buckets {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	return prefixes
}

// Len returns the number of indexed candidates.
func (i *Index) Len() int {
	return i.indexed
}

// Skipped returns the number of candidates dropped for malformed keys.
func (i *Index) Skipped() int {
	return i.skipped
}
