package sentiment

import (
	"context"
	"fmt"
)

// Label is a sentiment value as shown to users and stored on disk.
// The French strings are part of the external contract of the history file.
type Label string

const (
	LabelPositive Label = "Positif"
	LabelNegative Label = "Négatif"
	LabelNeutral  Label = "Neutre"
)

// FilterAll is the dashboard wildcard; it is never a classification result.
const FilterAll = "Tous"

// Labels lists all classification results in display order.
func Labels() []Label {
	return []Label{LabelPositive, LabelNegative, LabelNeutral}
}

func (l Label) Valid() bool {
	switch l {
	case LabelPositive, LabelNegative, LabelNeutral:
		return true
	}
	return false
}

// LabelFor maps a raw classifier class to a label. The mapping is total:
// any class outside {1, -1} collapses to Neutre.
func LabelFor(class int) Label {
	switch class {
	case 1:
		return LabelPositive
	case -1:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

type Classifier interface {
	Classify(ctx context.Context, text string) (Label, error)
}

// ClassificationError wraps any failure during vectorization or prediction.
// The cause message is surfaced to the submitting user.
type ClassificationError struct {
	Cause error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed: %v", e.Cause)
}

func (e *ClassificationError) Unwrap() error { return e.Cause }
