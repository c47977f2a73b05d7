package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RemoteClassifier forwards rows to an inference sidecar that hosts the
// original estimator.
type RemoteClassifier struct {
	baseURL    string
	httpClient *http.Client
}

type remoteRequest struct {
	Features [][]float64 `json:"features"`
}

type remoteResponse struct {
	Predictions   []int       `json:"predictions"`
	Probabilities [][]float64 `json:"probabilities"`
}

func NewRemoteClassifier(baseURL string, timeout time.Duration) *RemoteClassifier {
	return &RemoteClassifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (rc *RemoteClassifier) Predict(ctx context.Context, row []float64) (int, error) {
	resp, err := rc.call(ctx, row)
	if err != nil {
		return 0, err
	}
	if len(resp.Predictions) != 1 {
		return 0, fmt.Errorf("remote model returned %d predictions for 1 row", len(resp.Predictions))
	}
	return resp.Predictions[0], nil
}

func (rc *RemoteClassifier) PredictProba(ctx context.Context, row []float64) ([]float64, error) {
	resp, err := rc.call(ctx, row)
	if err != nil {
		return nil, err
	}
	if len(resp.Probabilities) == 0 {
		return nil, ErrProbabilityUnsupported
	}
	return resp.Probabilities[0], nil
}

// PredictWithProba reads the label and probabilities from one sidecar call.
func (rc *RemoteClassifier) PredictWithProba(ctx context.Context, row []float64) (int, []float64, error) {
	resp, err := rc.call(ctx, row)
	if err != nil {
		return 0, nil, err
	}
	if len(resp.Predictions) != 1 {
		return 0, nil, fmt.Errorf("remote model returned %d predictions for 1 row", len(resp.Predictions))
	}
	var proba []float64
	if len(resp.Probabilities) > 0 {
		proba = resp.Probabilities[0]
	}
	return resp.Predictions[0], proba, nil
}

// Ping checks that the sidecar answers its health endpoint.
func (rc *RemoteClassifier) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rc.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := rc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("remote model health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remote model unhealthy: %d", resp.StatusCode)
	}
	return nil
}

func (rc *RemoteClassifier) call(ctx context.Context, row []float64) (*remoteResponse, error) {
	body, err := json.Marshal(remoteRequest{Features: [][]float64{row}})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rc.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := rc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call remote model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("remote model returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode remote response: %w", err)
	}
	return &out, nil
}
