package sentiment

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeArtifact(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestClassifier(t *testing.T) *LocalClassifier {
	t.Helper()
	dir := t.TempDir()
	vecPath := writeArtifact(t, dir, "tfidf_vectorizer.json",
		`{"vocabulary":{"excellent":0,"mauvais":1},"idf":[1.2,1.5],"lowercase":true}`)
	modelPath := writeArtifact(t, dir, "sentiment_model.json",
		`{"classes":[-1,0,1],"coef":[[0,2],[0,0],[2,0]],"intercept":[0,0.1,0]}`)
	c, err := NewLocal(modelPath, vecPath)
	if err != nil {
		t.Fatalf("new local classifier: %v", err)
	}
	return c
}

func TestLocalClassify(t *testing.T) {
	c := newTestClassifier(t)
	cases := map[string]Label{
		"Excellent produit":         LabelPositive,
		"EXCELLENT":                 LabelPositive, // lowercased before lookup
		"Mauvais, vraiment mauvais": LabelNegative,
		"rien à signaler":           LabelNeutral, // no known tokens, intercept wins
	}
	for text, want := range cases {
		got, err := c.Classify(context.Background(), text)
		if err != nil {
			t.Fatalf("classify %q: %v", text, err)
		}
		if got != want {
			t.Fatalf("classify %q: got %s, want %s", text, got, want)
		}
	}
}

func TestLocalClassifyDeterministic(t *testing.T) {
	c := newTestClassifier(t)
	first, err := c.Classify(context.Background(), "excellent mais mauvais service")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := c.Classify(context.Background(), "excellent mais mauvais service")
		if err != nil {
			t.Fatalf("classify run %d: %v", i, err)
		}
		if got != first {
			t.Fatalf("run %d: got %s, first run gave %s", i, got, first)
		}
	}
}

func TestLocalBinaryModel(t *testing.T) {
	dir := t.TempDir()
	vecPath := writeArtifact(t, dir, "vec.json",
		`{"vocabulary":{"excellent":0,"mauvais":1},"idf":[1,1],"lowercase":true}`)
	modelPath := writeArtifact(t, dir, "model.json",
		`{"classes":[-1,1],"coef":[[2,-2]],"intercept":[0]}`)
	c, err := NewLocal(modelPath, vecPath)
	if err != nil {
		t.Fatalf("new local classifier: %v", err)
	}

	if got, _ := c.Classify(context.Background(), "excellent"); got != LabelPositive {
		t.Fatalf("positive decision: got %s", got)
	}
	if got, _ := c.Classify(context.Background(), "mauvais"); got != LabelNegative {
		t.Fatalf("negative decision: got %s", got)
	}
}

func TestLocalMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	vecPath := writeArtifact(t, dir, "vec.json",
		`{"vocabulary":{},"idf":[],"lowercase":true}`)

	if _, err := NewLocal(filepath.Join(dir, "absent.json"), vecPath); err == nil {
		t.Fatalf("expected error for missing model artifact")
	}
	if _, err := NewLocal(vecPath, filepath.Join(dir, "absent.json")); err == nil {
		t.Fatalf("expected error for missing vectorizer artifact")
	}
}

func TestLocalRejectsInconsistentArtifacts(t *testing.T) {
	dir := t.TempDir()
	vecPath := writeArtifact(t, dir, "vec.json",
		`{"vocabulary":{"excellent":0,"mauvais":1},"idf":[1,1],"lowercase":true}`)

	bad := map[string]string{
		"row length":  `{"classes":[-1,0,1],"coef":[[1],[0],[0]],"intercept":[0,0,0]}`,
		"class count": `{"classes":[-1,1],"coef":[[1,0],[0,1],[0,0]],"intercept":[0,0,0]}`,
		"no rows":     `{"classes":[],"coef":[],"intercept":[]}`,
	}
	for name, content := range bad {
		modelPath := writeArtifact(t, dir, "model.json", content)
		if _, err := NewLocal(modelPath, vecPath); err == nil {
			t.Fatalf("%s: expected artifact validation error", name)
		}
	}
}
