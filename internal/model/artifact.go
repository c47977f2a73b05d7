package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var ErrInvalidArtifact = errors.New("invalid artifact")

// Artifact is the JSON document a trained estimator is exported to.
type Artifact struct {
	Kind         Kind      `json:"kind"`
	FeatureNames []string  `json:"feature_names,omitempty"`
	Classes      []int     `json:"classes,omitempty"`
	Coef         []float64 `json:"coef,omitempty"`
	Intercept    float64   `json:"intercept,omitempty"`
	Trees        []Tree    `json:"trees,omitempty"`
	Mean         []float64 `json:"mean,omitempty"`
	Scale        []float64 `json:"scale,omitempty"`
}

// Schema is the feature layout every artifact must agree with.
type Schema struct {
	Columns []string
}

// ParseArtifact decodes and checks an artifact against the schema.
func ParseArtifact(data []byte, schema Schema) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if a.FeatureNames != nil && !slices.Equal(a.FeatureNames, schema.Columns) {
		return nil, fmt.Errorf("%w: feature names %v do not match expected %v", ErrInvalidArtifact, a.FeatureNames, schema.Columns)
	}
	return &a, nil
}

// Classifier builds the classifier described by the artifact.
func (a *Artifact) Classifier(schema Schema) (Classifier, error) {
	width := len(schema.Columns)
	classes, err := a.classes()
	if err != nil {
		return nil, err
	}

	switch a.Kind {
	case KindLogisticRegression, KindLinearSVC:
		if len(a.Coef) != width {
			return nil, fmt.Errorf("%w: %s has %d coefficients, expected %d", ErrInvalidArtifact, a.Kind, len(a.Coef), width)
		}
		if a.Kind == KindLinearSVC {
			return &LinearSVC{Coef: a.Coef, Intercept: a.Intercept, Classes: classes}, nil
		}
		return &LogisticRegression{Coef: a.Coef, Intercept: a.Intercept, Classes: classes}, nil

	case KindRandomForest:
		if len(a.Trees) == 0 {
			return nil, fmt.Errorf("%w: random forest has no trees", ErrInvalidArtifact)
		}
		for i := range a.Trees {
			if err := a.Trees[i].validate(width); err != nil {
				return nil, fmt.Errorf("%w: tree %d: %v", ErrInvalidArtifact, i, err)
			}
		}
		return &RandomForest{Trees: a.Trees, Classes: classes, NFeatures: width}, nil

	case "":
		return nil, fmt.Errorf("%w: missing kind", ErrInvalidArtifact)
	default:
		return nil, fmt.Errorf("%w: %q is not a classifier", ErrInvalidArtifact, a.Kind)
	}
}

// Scaler builds the scaler described by the artifact.
func (a *Artifact) Scaler(schema Schema) (Scaler, error) {
	if a.Kind != KindStandardScaler {
		return nil, fmt.Errorf("%w: %q is not a scaler", ErrInvalidArtifact, a.Kind)
	}
	width := len(schema.Columns)
	if len(a.Mean) != width || len(a.Scale) != width {
		return nil, fmt.Errorf("%w: scaler has %d means and %d scales, expected %d", ErrInvalidArtifact, len(a.Mean), len(a.Scale), width)
	}

	scale := make([]float64, width)
	for i, s := range a.Scale {
		if s == 0 {
			s = 1
		}
		scale[i] = s
	}
	return &StandardScaler{Mean: a.Mean, Scale: scale}, nil
}

func (a *Artifact) classes() ([2]int, error) {
	if a.Classes == nil {
		return [2]int{0, 1}, nil
	}
	if len(a.Classes) != 2 {
		return [2]int{}, fmt.Errorf("%w: expected 2 classes, got %d", ErrInvalidArtifact, len(a.Classes))
	}
	for _, c := range a.Classes {
		if c != 0 && c != 1 {
			return [2]int{}, fmt.Errorf("%w: class label %d is not binary", ErrInvalidArtifact, c)
		}
	}
	if a.Classes[0] == a.Classes[1] {
		return [2]int{}, fmt.Errorf("%w: duplicate class labels", ErrInvalidArtifact)
	}
	return [2]int{a.Classes[0], a.Classes[1]}, nil
}
