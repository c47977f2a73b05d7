package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresentLabels(t *testing.T) {
	conf := 42.5
	tests := []struct {
		name       string
		prediction Prediction
		show       bool
		risk       Risk
		message    string
		confidence string
	}{
		{name: "high with confidence", prediction: Prediction{Label: 1, Confidence: &conf}, show: true, risk: RiskHigh, message: HighRiskMessage, confidence: "42.50%"},
		{name: "high hidden confidence", prediction: Prediction{Label: 1, Confidence: &conf}, show: false, risk: RiskHigh, message: HighRiskMessage},
		{name: "high no confidence", prediction: Prediction{Label: 1}, show: true, risk: RiskHigh, message: HighRiskMessage},
		{name: "low with confidence", prediction: Prediction{Label: 0, Confidence: &conf}, show: true, risk: RiskLow, message: LowRiskMessage, confidence: "42.50%"},
		{name: "low no confidence", prediction: Prediction{Label: 0}, show: true, risk: RiskLow, message: LowRiskMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Present(&tt.prediction, tt.show)
			assert.Equal(t, tt.risk, out.Risk)
			assert.Equal(t, tt.message, out.Message)
			assert.Equal(t, tt.confidence, out.ConfidenceText())
			if tt.risk == RiskHigh {
				assert.NotEqual(t, LowRiskMessage, out.Message)
			}
		})
	}
}

func TestPresentProgressTruncates(t *testing.T) {
	conf := 99.99
	out := Present(&Prediction{Label: 1, Confidence: &conf}, true)
	assert.Equal(t, 99, *out.Progress)
}
