package xlsx

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/finploy/matcher/internal/matching"
)

func TestWriteThenReadReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsx")

	report := &matching.Report{
		Columns: []string{"job_id", "candidate_id", "composit_key"},
		Rows: [][]string{
			{"J1", "1", "12_3_4_2.0"},
			{"J1", "2", "12_3_4_2.5"},
		},
		Total: 2,
	}

	if err := WriteReport(path, report); err != nil {
		t.Fatalf("writing report: %v", err)
	}

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("reading report back: %v", err)
	}

	if !reflect.DeepEqual(table.Columns(), report.Columns) {
		t.Fatalf("expected columns %v, got %v", report.Columns, table.Columns())
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	if got := table.Rows()[1].Get("candidate_id"); got != "2" {
		t.Fatalf("expected candidate_id 2 in second row, got %q", got)
	}
}

func TestReadTableMissingInput(t *testing.T) {
	t.Parallel()

	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.xlsx"))
	if err == nil {
		t.Fatalf("expected an error for a missing input")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestReadTablePadsShortRows(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "short.xlsx")
	report := &matching.Report{
		Columns: []string{"candidate_id", "composit_key", "name"},
		Rows:    [][]string{{"1", "12_3_4_2.0"}},
		Total:   1,
	}
	if err := WriteReport(path, report); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	if got := table.Rows()[0].Get("name"); got != "" {
		t.Fatalf("expected padded empty cell, got %q", got)
	}
}

func TestEnsureDirCreatesNestedDirs(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b", "matchfiles")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("creating directory: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %q, got %v, %v", dir, info, err)
	}

	// A second call on an existing directory is a no-op.
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("re-creating directory: %v", err)
	}
}
