package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/app"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/config"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/logger"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/patient"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/predict"
)

type predictor interface {
	Predict(ctx context.Context, form patient.Form) (*predict.Prediction, error)
}

// openService is replaced in tests.
var openService = func(ctx context.Context) (predictor, bool, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, false, nil, fmt.Errorf("config: %w", err)
	}
	logger.Init(cfg.Logger)

	a, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, false, nil, err
	}
	return predict.NewService(a.Resources), cfg.Display.ShowConfidence, a.Close, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "heartrisk",
		Short:         "Heart disease risk predictions from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newColumnsCmd(),
		newPredictCmd(),
		newBatchCmd(),
	)
	return rootCmd
}

func newColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "Print the feature column order the model expects",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for i, c := range patient.Columns {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", i, c)
			}
		},
	}
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func newPredictCmd() *cobra.Command {
	defaults := patient.DefaultForm()
	values := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict heart disease risk for one patient",
		Long: `Predict heart disease risk for one patient. Every field defaults to the
value the web form starts with.

Example: heartrisk predict --age 61 --gender Female --smoking Yes --bmi 31.2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := patient.DefaultForm()
			for key, v := range values {
				if err := form.Set(key, *v); err != nil {
					return err
				}
			}

			svc, show, closeFn, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			return runPredict(cmd.Context(), cmd.OutOrStdout(), svc, form, show)
		},
	}

	for _, f := range patient.Fields() {
		values[f.Key] = cmd.Flags().String(flagName(f.Key), defaults.Value(f.Key), f.Label)
	}
	return cmd
}

func runPredict(ctx context.Context, w io.Writer, svc predictor, form patient.Form, show bool) error {
	p, err := svc.Predict(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, formatOutcome(predict.Present(p, show)))
	return nil
}

func formatOutcome(o predict.Outcome) string {
	line := fmt.Sprintf("%s: %s", o.Title, o.Message)
	if c := o.ConfidenceText(); c != "" {
		line += fmt.Sprintf(" (confidence %s)", c)
	}
	return line
}

func newBatchCmd() *cobra.Command {
	var input, sheet string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Predict every patient row of an Excel sheet",
		Long: `Predict every patient row of an Excel sheet. The first row is a header
naming fields by key (blood_pressure) or label (Blood Pressure (mm Hg));
missing columns take the form defaults. Rows are scored independently and
invalid rows are reported and skipped.

Example: heartrisk batch --input patients.xlsx --sheet Clinic`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readSheet(input, sheet)
			if err != nil {
				return err
			}

			svc, show, closeFn, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			_, err = runBatch(cmd.Context(), cmd.OutOrStdout(), svc, rows, show)
			return err
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Path to an .xlsx workbook")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (defaults to the first sheet)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
