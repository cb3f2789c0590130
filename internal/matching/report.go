package matching

// Report is the flattened output table: one row per (job, matched candidate)
// pair, with the owning job id in the first column followed by the
// candidate's original columns.
type Report struct {
	Columns []string
	Rows    [][]string
	Total   int
}

// Empty reports whether no job produced any match. An empty report means no
// output artifact should be written at all.
func (r *Report) Empty() bool {
	return r.Total == 0
}

// Flatten concatenates the non-empty match sets of all jobs into one table.
// Jobs with zero matches contribute no rows. Row order is job-iteration
// order, candidate order within a job is preserved from the index. When the
// candidates table already carries a column named jobIDCol, the owning job's
// id replaces it in the first position instead of appearing twice.
func Flatten(results *Results, candidates *Table, jobIDCol string) *Report {
	columns := []string{jobIDCol}
	passthrough := make([]int, 0, len(candidates.Columns()))
	for i, name := range candidates.Columns() {
		if name == jobIDCol {
			continue
		}
		columns = append(columns, name)
		passthrough = append(passthrough, i)
	}

	report := &Report{Columns: columns}
	for _, result := range results.Entries() {
		for _, candidate := range result.Matches {
			cells := candidate.Record.Cells()
			row := make([]string, 0, len(columns))
			row = append(row, result.JobID)
			for _, idx := range passthrough {
				row = append(row, cells[idx])
			}
			report.Rows = append(report.Rows, row)
			report.Total++
		}
	}

	return report
}
