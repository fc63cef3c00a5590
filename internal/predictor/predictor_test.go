package predictor

import (
	"os"
	"path/filepath"
	"testing"
)

// A forest of three stumps: two vote Hit for long runtimes, one always
// votes Flop.
const testModel = `{
  "features": ["Runtime", "Meta_score", "Released_Year", "Genre_Drama", "Genre_Comedy"],
  "trees": [
    {"nodes": [
      {"feature": 0, "threshold": 100, "left": 1, "right": 2},
      {"leaf": true, "class": "Flop"},
      {"leaf": true, "class": "Hit"}
    ]},
    {"nodes": [
      {"feature": 0, "threshold": 90, "left": 1, "right": 2},
      {"leaf": true, "class": "Average"},
      {"leaf": true, "class": "Hit"}
    ]},
    {"nodes": [
      {"leaf": true, "class": "Flop"}
    ]}
  ]
}`

const testEncoder = `{"categories": ["Drama", "Comedy"]}`

func writeArtifacts(t *testing.T, model, encoder string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	encoderPath := filepath.Join(dir, "encoder.json")
	if err := os.WriteFile(modelPath, []byte(model), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(encoderPath, []byte(encoder), 0o644); err != nil {
		t.Fatal(err)
	}
	return modelPath, encoderPath
}

func TestLoad_MissingArtifacts(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "absent.json"), filepath.Join(dir, "absent2.json")); err == nil {
		t.Fatal("expected an error for missing artifacts")
	}
}

func TestLoad_EmptyForest(t *testing.T) {
	modelPath, encoderPath := writeArtifacts(t, `{"features": [], "trees": []}`, testEncoder)
	if _, err := Load(modelPath, encoderPath); err == nil {
		t.Fatal("expected an error for a model with no trees")
	}
}

func TestPredict_MajorityVote(t *testing.T) {
	p, err := Load(writeArtifacts(t, testModel, testEncoder))
	if err != nil {
		t.Fatal(err)
	}

	// Runtime 120: trees vote Hit, Hit, Flop.
	got, err := p.Predict(120, 75, 2000, "Drama")
	if err != nil {
		t.Fatal(err)
	}
	if got != SuccessHit {
		t.Fatalf("expected Hit, got %q", got)
	}

	// Runtime 80: trees vote Flop, Average, Flop.
	got, err = p.Predict(80, 75, 2000, "Drama")
	if err != nil {
		t.Fatal(err)
	}
	if got != SuccessFlop {
		t.Fatalf("expected Flop, got %q", got)
	}
}

func TestPredict_UnknownGenreEncodesAllZeros(t *testing.T) {
	// A stump splitting on the Drama slot: known Drama goes right (Hit),
	// an unknown genre leaves the slot zero and goes left (Flop).
	model := `{
	  "features": ["Runtime", "Meta_score", "Released_Year", "Genre_Drama", "Genre_Comedy"],
	  "trees": [
	    {"nodes": [
	      {"feature": 3, "threshold": 0.5, "left": 1, "right": 2},
	      {"leaf": true, "class": "Flop"},
	      {"leaf": true, "class": "Hit"}
	    ]}
	  ]
	}`
	p, err := Load(writeArtifacts(t, model, testEncoder))
	if err != nil {
		t.Fatal(err)
	}

	got, err := p.Predict(100, 75, 2000, "Drama")
	if err != nil || got != SuccessHit {
		t.Fatalf("expected Hit for Drama, got %q err=%v", got, err)
	}

	got, err = p.Predict(100, 75, 2000, "Documentary")
	if err != nil || got != SuccessFlop {
		t.Fatalf("expected Flop for an unknown genre, got %q err=%v", got, err)
	}
}

func TestPredict_MalformedTree(t *testing.T) {
	// A two-node cycle never reaches a leaf.
	model := `{
	  "features": ["Runtime"],
	  "trees": [
	    {"nodes": [
	      {"feature": 0, "threshold": 100, "left": 1, "right": 1},
	      {"feature": 0, "threshold": 100, "left": 0, "right": 0}
	    ]}
	  ]
	}`
	p, err := Load(writeArtifacts(t, model, testEncoder))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Predict(100, 75, 2000, "Drama"); err == nil {
		t.Fatal("expected an error for a tree with no reachable leaf")
	}
}
