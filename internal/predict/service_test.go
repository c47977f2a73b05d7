package predict

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/artifact"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/model"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/patient"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/testutil"
)

var defaultRow = []float64{45, 1, 120, 200, 25.0, 150, 100, 3.0, 10.0, 0, 0, 0, 0}

func TestPredictHighRiskWithConfidence(t *testing.T) {
	clf := new(testutil.MockClassifier)
	clf.On("Predict", mock.Anything, defaultRow).Return(1, nil)
	clf.On("PredictProba", mock.Anything, defaultRow).Return([]float64{0.1675, 0.8325}, nil)

	svc := NewService(&artifact.Resources{Model: clf})
	p, err := svc.Predict(context.Background(), patient.DefaultForm())
	require.NoError(t, err)

	assert.Equal(t, 1, p.Label)
	require.NotNil(t, p.Confidence)
	assert.InDelta(t, 83.25, *p.Confidence, 1e-9)
	clf.AssertExpectations(t)

	out := Present(p, true)
	assert.Equal(t, RiskHigh, out.Risk)
	assert.Equal(t, HighRiskMessage, out.Message)
	assert.Equal(t, "83.25%", out.ConfidenceText())
	require.NotNil(t, out.Progress)
	assert.Equal(t, 83, *out.Progress)
}

func TestPredictSwallowsProbabilityFailure(t *testing.T) {
	clf := new(testutil.MockClassifier)
	clf.On("Predict", mock.Anything, mock.Anything).Return(0, nil)
	clf.On("PredictProba", mock.Anything, mock.Anything).Return(nil, errors.New("predict_proba is not available"))

	p, err := NewService(&artifact.Resources{Model: clf}).Predict(context.Background(), patient.DefaultForm())
	require.NoError(t, err)
	assert.Nil(t, p.Confidence)

	out := Present(p, true)
	assert.Equal(t, RiskLow, out.Risk)
	assert.Equal(t, LowRiskMessage, out.Message)
	assert.Nil(t, out.Confidence)
	assert.Nil(t, out.Progress)
	assert.Empty(t, out.ConfidenceText())
}

func TestPredictIgnoresMalformedProbabilities(t *testing.T) {
	clf := new(testutil.MockClassifier)
	clf.On("Predict", mock.Anything, mock.Anything).Return(1, nil)
	clf.On("PredictProba", mock.Anything, mock.Anything).Return([]float64{0.3, 0.3, 0.4}, nil)

	p, err := NewService(&artifact.Resources{Model: clf}).Predict(context.Background(), patient.DefaultForm())
	require.NoError(t, err)
	assert.Nil(t, p.Confidence)
}

func TestPredictLabelOnlyModel(t *testing.T) {
	p, err := NewService(&artifact.Resources{Model: testutil.LabelOnlyClassifier{Label: 1}}).Predict(context.Background(), patient.DefaultForm())
	require.NoError(t, err)
	assert.Equal(t, 1, p.Label)
	assert.Nil(t, p.Confidence)
}

func TestPredictAppliesScaler(t *testing.T) {
	scaled := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	scaler := new(testutil.MockScaler)
	scaler.On("Transform", defaultRow).Return(scaled, nil)

	clf := new(testutil.MockClassifier)
	clf.On("Predict", mock.Anything, scaled).Return(0, nil)
	clf.On("PredictProba", mock.Anything, scaled).Return([]float64{0.9, 0.1}, nil)

	p, err := NewService(&artifact.Resources{Model: clf, Scaler: scaler}).Predict(context.Background(), patient.DefaultForm())
	require.NoError(t, err)

	assert.Equal(t, patient.Row{45, 1, 120, 200, 25.0, 150, 100, 3.0, 10.0, 0, 0, 0, 0}, p.Row)
	scaler.AssertExpectations(t)
	clf.AssertExpectations(t)
}

func TestPredictScalerShapeMismatch(t *testing.T) {
	scaler := &model.StandardScaler{Mean: []float64{0}, Scale: []float64{1}}
	clf := new(testutil.MockClassifier)

	_, err := NewService(&artifact.Resources{Model: clf, Scaler: scaler}).Predict(context.Background(), patient.DefaultForm())
	assert.ErrorIs(t, err, model.ErrShapeMismatch)
	clf.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
}

func TestPredictRejectsInvalidForm(t *testing.T) {
	clf := new(testutil.MockClassifier)
	f := patient.DefaultForm()
	f.Age = 150

	_, err := NewService(&artifact.Resources{Model: clf}).Predict(context.Background(), f)
	var verr *patient.ValidationError
	assert.ErrorAs(t, err, &verr)
	clf.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
}

func TestPredictModelFailure(t *testing.T) {
	clf := new(testutil.MockClassifier)
	clf.On("Predict", mock.Anything, mock.Anything).Return(0, errors.New("boom"))

	_, err := NewService(&artifact.Resources{Model: clf}).Predict(context.Background(), patient.DefaultForm())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestPredictUnexpectedLabel(t *testing.T) {
	_, err := NewService(&artifact.Resources{Model: testutil.LabelOnlyClassifier{Label: 2}}).Predict(context.Background(), patient.DefaultForm())
	assert.Error(t, err)
}

func TestPredictWithLoadedArtifacts(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteArtifact(t, dir, "model.json", testutil.LogisticArtifact())
	testutil.WriteArtifact(t, dir, "scaler.json", testutil.IdentityScalerArtifact())

	res, err := artifact.NewLoader(artifact.FileSource{Dir: dir}, artifact.Options{ModelName: "model.json", ScalerName: "scaler.json"}).Load(context.Background())
	require.NoError(t, err)
	svc := NewService(res)

	older := patient.DefaultForm()
	older.Age = 70
	p, err := svc.Predict(context.Background(), older)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Label)
	require.NotNil(t, p.Confidence)
	assert.Greater(t, *p.Confidence, 99.0)

	p, err = svc.Predict(context.Background(), patient.DefaultForm())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Label)
}

// scoringModel answers label and probabilities together and fails the test
// if the separate methods are used.
type scoringModel struct {
	t     *testing.T
	label int
	proba []float64
	calls int
}

func (m *scoringModel) Predict(context.Context, []float64) (int, error) {
	m.t.Error("Predict called on a scoring classifier")
	return 0, nil
}

func (m *scoringModel) PredictWithProba(context.Context, []float64) (int, []float64, error) {
	m.calls++
	return m.label, m.proba, nil
}

func TestPredictUsesSingleScoringCall(t *testing.T) {
	m := &scoringModel{t: t, label: 1, proba: []float64{0.4, 0.6}}

	p, err := NewService(&artifact.Resources{Model: m}).Predict(context.Background(), patient.DefaultForm())
	require.NoError(t, err)
	assert.Equal(t, 1, m.calls)
	assert.Equal(t, 1, p.Label)
	require.NotNil(t, p.Confidence)
	assert.InDelta(t, 60.0, *p.Confidence, 1e-9)
}

func TestPredictScoringWithoutProbabilities(t *testing.T) {
	m := &scoringModel{t: t, label: 0}

	p, err := NewService(&artifact.Resources{Model: m}).Predict(context.Background(), patient.DefaultForm())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Label)
	assert.Nil(t, p.Confidence)
}
