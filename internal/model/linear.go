package model

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogisticRegression is a fitted binary logistic model.
type LogisticRegression struct {
	Coef      []float64
	Intercept float64
	Classes   [2]int
}

func (m *LogisticRegression) decision(row []float64) (float64, error) {
	if err := checkWidth(row, len(m.Coef)); err != nil {
		return 0, err
	}
	return floats.Dot(m.Coef, row) + m.Intercept, nil
}

func (m *LogisticRegression) Predict(_ context.Context, row []float64) (int, error) {
	z, err := m.decision(row)
	if err != nil {
		return 0, err
	}
	if z > 0 {
		return m.Classes[1], nil
	}
	return m.Classes[0], nil
}

func (m *LogisticRegression) PredictProba(_ context.Context, row []float64) ([]float64, error) {
	z, err := m.decision(row)
	if err != nil {
		return nil, err
	}
	p := 1 / (1 + math.Exp(-z))
	return byLabel(m.Classes, []float64{1 - p, p}), nil
}

// LinearSVC is a linear support vector classifier. It has no calibrated
// probabilities.
type LinearSVC struct {
	Coef      []float64
	Intercept float64
	Classes   [2]int
}

func (m *LinearSVC) Predict(_ context.Context, row []float64) (int, error) {
	if err := checkWidth(row, len(m.Coef)); err != nil {
		return 0, err
	}
	if floats.Dot(m.Coef, row)+m.Intercept > 0 {
		return m.Classes[1], nil
	}
	return m.Classes[0], nil
}

func (m *LinearSVC) PredictProba(context.Context, []float64) ([]float64, error) {
	return nil, ErrProbabilityUnsupported
}

// StandardScaler centers and scales each column.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

func (s *StandardScaler) Transform(row []float64) ([]float64, error) {
	if err := checkWidth(row, len(s.Mean)); err != nil {
		return nil, err
	}
	out := make([]float64, len(row))
	floats.SubTo(out, row, s.Mean)
	floats.Div(out, s.Scale)
	return out, nil
}
