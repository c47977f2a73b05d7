// Package predict runs one patient form through the loaded model and turns
// the label into what the user sees.
package predict

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/artifact"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/model"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/patient"
)

// Prediction is the raw outcome for one form.
type Prediction struct {
	Row   patient.Row
	Label int
	// Confidence is P(label 1) in percent, nil when the model could not
	// provide it.
	Confidence *float64
}

type Service struct {
	res *artifact.Resources
}

func NewService(res *artifact.Resources) *Service {
	return &Service{res: res}
}

func (s *Service) Info() artifact.Info {
	return s.res.Info
}

// Predict encodes the form, scales it when a scaler is loaded and asks the
// model for a label and, if it can, a probability.
func (s *Service) Predict(ctx context.Context, form patient.Form) (*Prediction, error) {
	row, err := patient.Encode(form)
	if err != nil {
		return nil, err
	}

	features := row.Slice()
	if s.res.Scaler != nil {
		features, err = s.res.Scaler.Transform(features)
		if err != nil {
			return nil, fmt.Errorf("scale features: %w", err)
		}
	}

	label, proba, err := s.classify(ctx, features)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	if label != 0 && label != 1 {
		return nil, fmt.Errorf("predict: unexpected label %d", label)
	}

	return &Prediction{
		Row:        row,
		Label:      label,
		Confidence: confidence(proba),
	}, nil
}

// classify asks the model for a label and, if it can, probabilities. A
// probability failure is logged and leaves proba nil.
func (s *Service) classify(ctx context.Context, features []float64) (int, []float64, error) {
	if sc, ok := s.res.Model.(model.ScoringClassifier); ok {
		return sc.PredictWithProba(ctx, features)
	}

	label, err := s.res.Model.Predict(ctx, features)
	if err != nil {
		return 0, nil, err
	}

	pc, ok := s.res.Model.(model.ProbabilisticClassifier)
	if !ok {
		return label, nil, nil
	}
	proba, err := pc.PredictProba(ctx, features)
	if err != nil {
		log.WithError(err).Debug("confidence unavailable")
		return label, nil, nil
	}
	return label, proba, nil
}

// confidence never fails: any problem just means no confidence is shown.
func confidence(proba []float64) *float64 {
	if proba == nil {
		return nil
	}
	if len(proba) != 2 || proba[1] < 0 || proba[1] > 1 {
		log.WithField("proba", proba).Debug("confidence unavailable: malformed probabilities")
		return nil
	}

	pct := proba[1] * 100
	return &pct
}
