package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/evaluator"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/summary"
	"gopkg.in/yaml.v3"
)

// ManifestConfig records the inputs of a run.
type ManifestConfig struct {
	Name        string   `yaml:"name"`
	Entered     []string `yaml:"entered"`
	GroundTruth string   `yaml:"groundtruth"`
	Output      string   `yaml:"output"`
	Timestamp   string   `yaml:"timestamp"`
}

// ManifestRecord is the per-row part of a manifest.
type ManifestRecord struct {
	ImageID     string               `yaml:"imageid"`
	Method      string               `yaml:"method,omitempty"`
	Overall     evaluator.FieldScore `yaml:"overall"`
	FieldScores map[string]float64   `yaml:"fieldscores"`
}

// Manifest is the YAML record of one evaluation run.
type Manifest struct {
	Config     ManifestConfig        `yaml:"config"`
	Stats      evaluator.Stats       `yaml:"stats"`
	Diagnostic *evaluator.Diagnostic `yaml:"diagnostic,omitempty"`
	Summary    *summary.Summary      `yaml:"summary"`
	Unmatched  []evaluator.Unmatched `yaml:"unmatched,omitempty"`
	Results    []ManifestRecord      `yaml:"results"`
}

// NewManifest builds the manifest for run.
func NewManifest(cfg ManifestConfig, run *evaluator.Run, sum *summary.Summary) *Manifest {
	m := &Manifest{
		Config:     cfg,
		Stats:      run.Stats,
		Diagnostic: run.Diagnostic,
		Summary:    sum,
		Unmatched:  run.Unmatched,
		Results:    make([]ManifestRecord, 0, len(run.Rows)),
	}

	for _, r := range run.Rows {
		rec := ManifestRecord{
			ImageID:     r.ImageID,
			Method:      string(r.Method),
			Overall:     r.Overall,
			FieldScores: make(map[string]float64, evaluator.NumFields),
		}
		for i, f := range evaluator.Fields {
			rec.FieldScores[string(f)] = r.Scores[i].Accuracy
		}
		m.Results = append(m.Results, rec)
	}
	return m
}

// SaveToYAML writes the manifest to dir/<name>-<timestamp>.yaml and
// returns the path written.
func SaveToYAML(dir string, m *Manifest) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", dir, err)
	}

	if m.Config.Timestamp == "" {
		m.Config.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	}
	name := m.Config.Name
	if name == "" {
		name = "evaluation"
	}
	filename := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", name, m.Config.Timestamp))

	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}
	return filename, nil
}

// LoadManifest reads a manifest written by SaveToYAML.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
