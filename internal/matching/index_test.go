package matching

import (
	"testing"

	"go.uber.org/zap"
)

var testCandidateCols = CandidateColumns{ID: "candidate_id", Key: "composit_key"}

func candidatesTable(rows ...[]string) *Table {
	table := NewTable([]string{"candidate_id", "composit_key", "name"})
	for _, row := range rows {
		table.AppendRow(row)
	}
	return table
}

func TestBuildIndexBucketsByPrefix(t *testing.T) {
	t.Parallel()

	table := candidatesTable(
		[]string{"1", "12_3_4_2.0", "alice"},
		[]string{"2", "12_3_4_3.5", "bob"},
		[]string{"3", "99_9_9_1.0", "carol"},
	)

	index := BuildIndex(table, testCandidateCols, zap.NewNop())

	if index.Len() != 3 {
		t.Fatalf("expected 3 indexed candidates, got %d", index.Len())
	}
	if index.Skipped() != 0 {
		t.Fatalf("expected no skipped candidates, got %d", index.Skipped())
	}

	bucket := index.Bucket("12_3_4")
	if len(bucket) != 2 {
		t.Fatalf("expected 2 candidates in bucket, got %d", len(bucket))
	}
	if bucket[0].ID != "1" || bucket[1].ID != "2" {
		t.Fatalf("expected input order preserved, got %q then %q", bucket[0].ID, bucket[1].ID)
	}
	if bucket[0].Ceiling != 2.0 {
		t.Fatalf("expected ceiling 2.0, got %v", bucket[0].Ceiling)
	}

	prefixes := index.Prefixes()
	if len(prefixes) != 2 || prefixes[0] != "12_3_4" || prefixes[1] != "99_9_9" {
		t.Fatalf("unexpected prefixes: %v", prefixes)
	}
}

func TestBuildIndexSkipsMalformedKeys(t *testing.T) {
	t.Parallel()

	table := candidatesTable(
		[]string{"1", "12_3_4", "three tokens"},
		[]string{"2", "12_3_4_x", "bad ceiling"},
		[]string{"3", "12_3_4_2.0", "valid"},
	)

	index := BuildIndex(table, testCandidateCols, zap.NewNop())

	if index.Len() != 1 {
		t.Fatalf("expected 1 indexed candidate, got %d", index.Len())
	}
	if index.Skipped() != 2 {
		t.Fatalf("expected 2 skipped candidates, got %d", index.Skipped())
	}

	bucket := index.Bucket("12_3_4")
	if len(bucket) != 1 || bucket[0].ID != "3" {
		t.Fatalf("expected only the valid candidate in the bucket, got %v", bucket)
	}
}

func TestBuildIndexNoEmptyBuckets(t *testing.T) {
	t.Parallel()

	table := candidatesTable(
		[]string{"1", "bad_key", "malformed"},
	)

	index := BuildIndex(table, testCandidateCols, zap.NewNop())

	if len(index.Prefixes()) != 0 {
		t.Fatalf("expected no buckets, got %v", index.Prefixes())
	}
}

func TestBuildIndexIsIdempotent(t *testing.T) {
	t.Parallel()

	table := candidatesTable(
		[]string{"1", "12_3_4_2.0", "alice"},
		[]string{"2", "12_3_4_3.5", "bob"},
		[]string{"3", "not_a_key", "skip"},
	)

	first := BuildIndex(table, testCandidateCols, zap.NewNop())
	second := BuildIndex(table, testCandidateCols, zap.NewNop())

	if first.Len() != second.Len() || first.Skipped() != second.Skipped() {
		t.Fatalf("rebuild changed counts: %d/%d vs %d/%d",
			first.Len(), first.Skipped(), second.Len(), second.Skipped())
	}

	firstPrefixes := first.Prefixes()
	secondPrefixes := second.Prefixes()
	if len(firstPrefixes) != len(secondPrefixes) {
		t.Fatalf("rebuild changed prefixes: %v vs %v", firstPrefixes, secondPrefixes)
	}
	for i, prefix := range firstPrefixes {
		if secondPrefixes[i] != prefix {
			t.Fatalf("rebuild changed prefixes: %v vs %v", firstPrefixes, secondPrefixes)
		}
		a, b := first.Bucket(prefix), second.Bucket(prefix)
		if len(a) != len(b) {
			t.Fatalf("rebuild changed bucket %q size: %d vs %d", prefix, len(a), len(b))
		}
		for j := range a {
			if a[j].ID != b[j].ID {
				t.Fatalf("rebuild changed bucket %q order at %d: %q vs %q", prefix, j, a[j].ID, b[j].ID)
			}
		}
	}
}
