// Package model holds the classifier and scaler implementations that a
// trained heart-disease model can be exported to, plus a client for a
// remote inference sidecar.
package model

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrProbabilityUnsupported is returned by models that only emit a label.
	ErrProbabilityUnsupported = errors.New("model does not support probability estimates")
	ErrShapeMismatch          = errors.New("feature shape mismatch")
)

// Classifier assigns a binary label to one feature row.
type Classifier interface {
	Predict(ctx context.Context, row []float64) (int, error)
}

// ProbabilisticClassifier reports class probabilities indexed by label:
// element 0 is P(label 0), element 1 is P(label 1).
type ProbabilisticClassifier interface {
	PredictProba(ctx context.Context, row []float64) ([]float64, error)
}

// ScoringClassifier returns the label and the label-ordered probabilities
// from a single evaluation. Probabilities are nil when the model has none.
type ScoringClassifier interface {
	PredictWithProba(ctx context.Context, row []float64) (int, []float64, error)
}

// Scaler rescales a row before it reaches the classifier.
type Scaler interface {
	Transform(row []float64) ([]float64, error)
}

// Kind names the estimator type stored in an artifact.
type Kind string

const (
	KindLogisticRegression Kind = "logistic_regression"
	KindLinearSVC          Kind = "linear_svc"
	KindRandomForest       Kind = "random_forest"
	KindStandardScaler     Kind = "standard_scaler"
	KindRemote             Kind = "remote"
)

// byLabel reorders probabilities given in class order into label order.
func byLabel(classes [2]int, proba []float64) []float64 {
	if classes[0] == 1 {
		return []float64{proba[1], proba[0]}
	}
	return proba
}

func checkWidth(row []float64, want int) error {
	if len(row) != want {
		return fmt.Errorf("%w: got %d features, model expects %d", ErrShapeMismatch, len(row), want)
	}
	return nil
}
