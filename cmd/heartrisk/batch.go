package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/montanaflynn/stats"
	"github.com/xuri/excelize/v2"

	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/patient"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/predict"
)

type batchSummary struct {
	Scored           int
	Skipped          int
	HighRisk         int
	MeanConfidence   float64
	MedianConfidence float64
	WithConfidence   int
}

func readSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// runBatch scores every data row below the header. A row that cannot be
// parsed or fails validation is reported and skipped; any other prediction
// error stops the batch.
func runBatch(ctx context.Context, w io.Writer, svc predictor, rows [][]string, show bool) (*batchSummary, error) {
	if len(rows) == 0 {
		return nil, errors.New("sheet is empty")
	}

	columns := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		field, ok := patient.LookupField(h)
		if !ok {
			return nil, fmt.Errorf("column %d: unknown field %q", i+1, h)
		}
		columns[i] = field.Key
	}

	sum := &batchSummary{}
	var confidences stats.Float64Data

	for n, cells := range rows[1:] {
		line := n + 2 // spreadsheet row number
		if isBlank(cells) {
			continue
		}

		form := patient.DefaultForm()
		var setErr error
		for i, cell := range cells {
			if i >= len(columns) || cell == "" {
				continue
			}
			if err := form.Set(columns[i], cell); err != nil {
				setErr = err
				break
			}
		}
		if setErr != nil {
			sum.Skipped++
			fmt.Fprintf(w, "row %d: skipped: %v\n", line, setErr)
			continue
		}

		p, err := svc.Predict(ctx, form)
		var verr *patient.ValidationError
		if errors.As(err, &verr) {
			sum.Skipped++
			fmt.Fprintf(w, "row %d: skipped: %v\n", line, verr)
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("row %d: %w", line, err)
		}

		outcome := predict.Present(p, show)
		sum.Scored++
		if outcome.Risk == predict.RiskHigh {
			sum.HighRisk++
		}
		if outcome.Confidence != nil {
			confidences = append(confidences, *outcome.Confidence)
		}
		fmt.Fprintf(w, "row %d: %s\n", line, formatOutcome(outcome))
	}

	sum.WithConfidence = len(confidences)
	if len(confidences) > 0 {
		sum.MeanConfidence, _ = stats.Mean(confidences)
		sum.MedianConfidence, _ = stats.Median(confidences)
	}

	fmt.Fprintf(w, "scored %d, skipped %d, high risk %d\n", sum.Scored, sum.Skipped, sum.HighRisk)
	if sum.WithConfidence > 0 {
		fmt.Fprintf(w, "confidence mean %.2f%%, median %.2f%%\n", sum.MeanConfidence, sum.MedianConfidence)
	}
	return sum, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
