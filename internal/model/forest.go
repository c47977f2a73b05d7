package model

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Tree is one fitted decision tree in flat array form. Node i is a leaf when
// ChildrenLeft[i] is -1; otherwise samples with row[Feature[i]] <= Threshold[i]
// go left.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

func (t *Tree) validate(width int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("empty tree")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("tree arrays have inconsistent lengths")
	}
	for i := 0; i < n; i++ {
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l == -1 {
			if len(t.Value[i]) != 2 {
				return fmt.Errorf("leaf %d: expected 2 class values, got %d", i, len(t.Value[i]))
			}
			continue
		}
		// children always come after their parent in fitted trees
		if l <= i || r <= i || l >= n || r >= n {
			return fmt.Errorf("node %d: child index out of range", i)
		}
		if f := t.Feature[i]; f < 0 || f >= width {
			return fmt.Errorf("node %d: feature %d out of range", i, f)
		}
	}
	return nil
}

// leaf returns the normalized class distribution of the leaf row falls into.
func (t *Tree) leaf(row []float64) []float64 {
	node := 0
	for t.ChildrenLeft[node] != -1 {
		if row[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	dist := make([]float64, 2)
	copy(dist, t.Value[node])
	if sum := floats.Sum(dist); sum > 0 {
		floats.Scale(1/sum, dist)
	}
	return dist
}

// RandomForest averages the leaf distributions of its trees.
type RandomForest struct {
	Trees     []Tree
	Classes   [2]int
	NFeatures int
}

func (m *RandomForest) classProba(row []float64) ([]float64, error) {
	if err := checkWidth(row, m.NFeatures); err != nil {
		return nil, err
	}
	proba := make([]float64, 2)
	for i := range m.Trees {
		floats.Add(proba, m.Trees[i].leaf(row))
	}
	floats.Scale(1/float64(len(m.Trees)), proba)
	return proba, nil
}

// PredictProba returns the averaged distribution in label order.
func (m *RandomForest) PredictProba(_ context.Context, row []float64) ([]float64, error) {
	proba, err := m.classProba(row)
	if err != nil {
		return nil, err
	}
	return byLabel(m.Classes, proba), nil
}

func (m *RandomForest) Predict(_ context.Context, row []float64) (int, error) {
	proba, err := m.classProba(row)
	if err != nil {
		return 0, err
	}
	// ties go to the first class
	if proba[1] > proba[0] {
		return m.Classes[1], nil
	}
	return m.Classes[0], nil
}
