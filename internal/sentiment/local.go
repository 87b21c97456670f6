package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

// vectorizer is a fitted TF-IDF vectorizer exported by the training
// pipeline as JSON: token vocabulary, per-feature idf weights.
type vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	Lowercase  bool           `json:"lowercase"`
}

// linearModel is a fitted linear classifier exported by the training
// pipeline. Binary models carry a single coefficient row and two classes;
// multiclass models carry one row per class.
type linearModel struct {
	Classes   []int       `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// Tokens of two or more word characters, matching the vectorizer's
// training-time token pattern.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// LocalClassifier scores reviews against model artifacts loaded at
// startup. Classification is deterministic for a given artifact pair.
type LocalClassifier struct {
	vec   *vectorizer
	model *linearModel
}

func NewLocal(modelPath, vectorizerPath string) (*LocalClassifier, error) {
	vec := &vectorizer{}
	if err := loadArtifact(vectorizerPath, vec); err != nil {
		return nil, fmt.Errorf("load vectorizer: %w", err)
	}
	model := &linearModel{}
	if err := loadArtifact(modelPath, model); err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	for tok, idx := range vec.Vocabulary {
		if idx < 0 || idx >= len(vec.IDF) {
			return nil, fmt.Errorf("vectorizer artifact: token %q has index %d outside idf range %d", tok, idx, len(vec.IDF))
		}
	}
	if len(model.Coef) == 0 || len(model.Coef) != len(model.Intercept) {
		return nil, fmt.Errorf("model artifact: %d coefficient rows for %d intercepts", len(model.Coef), len(model.Intercept))
	}
	if len(model.Coef) == 1 && len(model.Classes) != 2 {
		return nil, fmt.Errorf("model artifact: binary model expects 2 classes, got %d", len(model.Classes))
	}
	if len(model.Coef) > 1 && len(model.Classes) != len(model.Coef) {
		return nil, fmt.Errorf("model artifact: %d classes for %d coefficient rows", len(model.Classes), len(model.Coef))
	}
	for i, row := range model.Coef {
		if len(row) != len(vec.IDF) {
			return nil, fmt.Errorf("model artifact: coefficient row %d has %d features, vectorizer has %d", i, len(row), len(vec.IDF))
		}
	}

	return &LocalClassifier{vec: vec, model: model}, nil
}

func loadArtifact(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *LocalClassifier) Classify(_ context.Context, text string) (Label, error) {
	features := c.vec.transform(text)
	return LabelFor(c.model.predict(features)), nil
}

// transform maps a text to its sparse l2-normalized tf-idf vector.
func (v *vectorizer) transform(text string) map[int]float64 {
	if v.Lowercase {
		text = strings.ToLower(text)
	}
	features := make(map[int]float64)
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		if idx, ok := v.Vocabulary[tok]; ok {
			features[idx]++
		}
	}
	var norm float64
	for idx := range features {
		features[idx] *= v.IDF[idx]
		norm += features[idx] * features[idx]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range features {
			features[idx] /= norm
		}
	}
	return features
}

func (m *linearModel) predict(features map[int]float64) int {
	scores := make([]float64, len(m.Coef))
	for i, row := range m.Coef {
		score := m.Intercept[i]
		for idx, val := range features {
			score += row[idx] * val
		}
		scores[i] = score
	}

	// Binary model: one decision value, positive picks the second class.
	if len(scores) == 1 {
		if scores[0] > 0 {
			return m.Classes[1]
		}
		return m.Classes[0]
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return m.Classes[best]
}
