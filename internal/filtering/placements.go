package filtering

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Placements is the content of a placements file: candidates already placed
// into a job and therefore excluded from further matching runs.
type Placements struct {
	Items []*Placement `json:"items"`
}

// Placement records one placed candidate.
type Placement struct {
	CandidateID string    `json:"candidate_id" mapstructure:"candidate_id"`
	JobID       string    `json:"job_id,omitempty" mapstructure:"job_id"`
	PlacedAt    time.Time `json:"placed_at,omitempty" mapstructure:"placed_at"`
}

// GetPlacementsFromFile loads a placements file. An empty file yields an
// empty set.
func GetPlacementsFromFile(path string) (*Placements, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Placements{}, nil
	}

	// The file may come from other tooling with extra keys per entry, so it
	// is decoded loosely first and mapped onto the known fields after.
	var raw struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return nil, err
	}

	var items []*Placement
	cfg := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
		Result:     &items,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw.Items); err != nil {
		return nil, err
	}

	return &Placements{Items: items}, nil
}

// CandidateIDs returns the ids of all placed candidates.
func (p *Placements) CandidateIDs() []string {
	ids := make([]string, 0)
	for _, placement := range p.Items {
		ids = append(ids, placement.CandidateID)
	}
	return ids
}

// ToFile writes the set to the given path, creating the file when needed.
func (p *Placements) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return err
	}
	return nil
}
