// Package testutil holds mocks and fixtures shared by package tests.
package testutil

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/model"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/patient"
)

// MockClassifier implements model.Classifier and model.ProbabilisticClassifier.
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Predict(ctx context.Context, row []float64) (int, error) {
	args := m.Called(ctx, row)
	return args.Int(0), args.Error(1)
}

func (m *MockClassifier) PredictProba(ctx context.Context, row []float64) ([]float64, error) {
	args := m.Called(ctx, row)
	if p := args.Get(0); p != nil {
		return p.([]float64), args.Error(1)
	}
	return nil, args.Error(1)
}

// LabelOnlyClassifier implements only model.Classifier.
type LabelOnlyClassifier struct {
	Label int
}

func (c LabelOnlyClassifier) Predict(context.Context, []float64) (int, error) {
	return c.Label, nil
}

type MockScaler struct {
	mock.Mock
}

func (m *MockScaler) Transform(row []float64) ([]float64, error) {
	args := m.Called(row)
	if out := args.Get(0); out != nil {
		return out.([]float64), args.Error(1)
	}
	return nil, args.Error(1)
}

// LogisticArtifact returns a logistic model that fires on age alone:
// label 1 once Age exceeds 50.
func LogisticArtifact() model.Artifact {
	coef := make([]float64, patient.NumFeatures)
	coef[0] = 1
	return model.Artifact{
		Kind:         model.KindLogisticRegression,
		FeatureNames: patient.ColumnNames(),
		Classes:      []int{0, 1},
		Coef:         coef,
		Intercept:    -50,
	}
}

// IdentityScalerArtifact returns a scaler that leaves rows unchanged.
func IdentityScalerArtifact() model.Artifact {
	mean := make([]float64, patient.NumFeatures)
	scale := make([]float64, patient.NumFeatures)
	for i := range scale {
		scale[i] = 1
	}
	return model.Artifact{Kind: model.KindStandardScaler, FeatureNames: patient.ColumnNames(), Mean: mean, Scale: scale}
}

// WriteArtifact writes a as JSON into dir and returns its file name.
func WriteArtifact(t *testing.T, dir, name string, a model.Artifact) string {
	t.Helper()
	data, err := json.Marshal(a)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	return name
}
