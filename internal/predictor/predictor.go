// Package predictor evaluates the offline-trained success classifier: a
// random forest over runtime, meta score, release year and a one-hot
// encoded primary genre, serialized to JSON by the training routine.
package predictor

import (
	"encoding/json"
	"fmt"
	"os"
)

// Success categories emitted by the classifier.
const (
	SuccessHit     = "Hit"
	SuccessFlop    = "Flop"
	SuccessAverage = "Average"
)

// Node is one node of a binary decision tree. Leaf nodes carry Class;
// internal nodes split on Feature <= Threshold, going Left when true.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Class     string  `json:"class,omitempty"`
}

// Tree is one decision tree; nodes[0] is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// model is the serialized forest. Features lists the column order the
// trees were trained on: the numeric features followed by Genre_* columns.
type model struct {
	Features []string `json:"features"`
	Trees    []Tree   `json:"trees"`
}

// encoder is the serialized categorical encoder: the ordered genre
// categories seen at training time. Unknown genres encode as all zeros.
type encoder struct {
	Categories []string `json:"categories"`
}

// Predictor holds the loaded model and encoder.
type Predictor struct {
	model   model
	encoder encoder
}

// Load reads both artifacts. A missing or unreadable artifact is an error
// for the caller to surface to the user; it must not crash the service.
func Load(modelPath, encoderPath string) (*Predictor, error) {
	p := &Predictor{}

	data, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	if err := json.Unmarshal(data, &p.model); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}
	if len(p.model.Trees) == 0 {
		return nil, fmt.Errorf("model artifact %s contains no trees", modelPath)
	}

	data, err = os.ReadFile(encoderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read encoder artifact: %w", err)
	}
	if err := json.Unmarshal(data, &p.encoder); err != nil {
		return nil, fmt.Errorf("failed to decode encoder artifact: %w", err)
	}

	return p, nil
}

// Predict classifies one movie as Hit, Flop or Average by majority vote
// over the forest.
func (p *Predictor) Predict(runtimeMinutes, metaScore float64, releasedYear int, primaryGenre string) (string, error) {
	features := p.encode(runtimeMinutes, metaScore, releasedYear, primaryGenre)

	votes := make(map[string]int)
	winner := ""
	for _, tree := range p.model.Trees {
		class, err := evaluate(tree, features)
		if err != nil {
			return "", err
		}
		votes[class]++
		if winner == "" || votes[class] > votes[winner] {
			winner = class
		}
	}
	return winner, nil
}

// encode builds the feature vector: runtime, meta score, year, then one
// slot per genre category (1 for the matching category, all zeros when the
// genre was never seen at training time).
func (p *Predictor) encode(runtimeMinutes, metaScore float64, releasedYear int, primaryGenre string) []float64 {
	features := make([]float64, 3+len(p.encoder.Categories))
	features[0] = runtimeMinutes
	features[1] = metaScore
	features[2] = float64(releasedYear)
	for i, category := range p.encoder.Categories {
		if category == primaryGenre {
			features[3+i] = 1
		}
	}
	return features
}

func evaluate(tree Tree, features []float64) (string, error) {
	idx := 0
	for steps := 0; steps <= len(tree.Nodes); steps++ {
		if idx < 0 || idx >= len(tree.Nodes) {
			return "", fmt.Errorf("malformed tree: node index %d out of range", idx)
		}
		node := tree.Nodes[idx]
		if node.Leaf {
			return node.Class, nil
		}
		if node.Feature < 0 || node.Feature >= len(features) {
			return "", fmt.Errorf("malformed tree: feature index %d out of range", node.Feature)
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
	return "", fmt.Errorf("malformed tree: no leaf reached")
}
