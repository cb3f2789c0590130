package matching

import "go.uber.org/zap"

// JobColumns names the recognized columns of the jobs table.
type JobColumns struct {
	ID  string
	Key string
}

// MatchResult holds the outcome of matching one job: its key, the ceiling
// parsed from it and the candidates that qualified, in index order.
type MatchResult struct {
	JobID   string
	JobKey  string
	Ceiling float64
	Matches []Candidate
}

// Count returns the number of matched candidates.
func (r *MatchResult) Count() int {
	return len(r.Matches)
}

// Results is the ordered outcome of a matching run: one entry per distinct
// job id that parsed successfully, in job-iteration order. A job id seen
// again replaces its earlier entry while keeping the first occurrence's
// position.
type Results struct {
	entries []*MatchResult
	pos     map[string]int
	skipped int
}

// Entries returns the results in job-iteration order.
func (r *Results) Entries() []*MatchResult {
	return r.entries
}

// FindByJobID returns the result for the given job id, or nil.
func (r *Results) FindByJobID(id string) *MatchResult {
	idx, ok := r.pos[id]
	if !ok {
		return nil
	}
	return r.entries[idx]
}

// Len returns the number of jobs that produced a result.
func (r *Results) Len() int {
	return len(r.entries)
}

// Skipped returns the number of jobs dropped for malformed keys.
func (r *Results) Skipped() int {
	return r.skipped
}

// Matched returns the total number of matched candidates across all jobs.
func (r *Results) Matched() int {
	total := 0
	for _, entry := range r.entries {
		total += entry.Count()
	}
	return total
}

// MatchAll matches every job against the candidate index. A candidate
// qualifies when it shares the job's key prefix and its ceiling is at or
// below the job's ceiling; no other field takes part in matching. Jobs with
// malformed keys are skipped with a warning, jobs whose prefix has no bucket
// still get a result with zero matches. When several rows carry the same job
// id the last one wins, so each job id appears in the results exactly once.
func MatchAll(jobs *Table, cols JobColumns, index *Index, logger *zap.Logger) *Results {
	results := &Results{pos: make(map[string]int)}

	for _, row := range jobs.Rows() {
		id := row.Get(cols.ID)
		raw := row.Get(cols.Key)

		key, err := ParseKey(raw)
		if err != nil {
			results.skipped++
			logger.Warn("skipping job with malformed key",
				zap.String("job_id", id),
				zap.String("key", raw),
				zap.Error(err),
			)
			continue
		}

		var matches []Candidate
		for _, candidate := range index.Bucket(key.Prefix) {
			if candidate.Ceiling <= key.Ceiling {
				matches = append(matches, candidate)
			}
		}

		result := &MatchResult{
			JobID:   id,
			JobKey:  raw,
			Ceiling: key.Ceiling,
			Matches: matches,
		}
		if idx, ok := results.pos[id]; ok {
			logger.Warn("job id seen again, keeping the last occurrence",
				zap.String("job_id", id),
				zap.String("key", raw),
			)
			results.entries[idx] = result
		} else {
			results.pos[id] = len(results.entries)
			results.entries = append(results.entries, result)
		}

		logger.Debug("matched job",
			zap.String("job_id", id),
			zap.String("prefix", key.Prefix),
			zap.Float64("ceiling", key.Ceiling),
			zap.Int("matches", result.Count()),
		)
	}

	return results
}
