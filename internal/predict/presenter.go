package predict

import "fmt"

type Risk string

const (
	RiskHigh Risk = "high"
	RiskLow  Risk = "low"
)

const (
	HighRiskTitle   = "High Risk"
	HighRiskMessage = "The model predicts that this person may have heart disease."
	LowRiskTitle    = "Low Risk"
	LowRiskMessage  = "The model predicts no significant heart disease risk detected."
)

// Outcome is what the user is shown for one prediction.
type Outcome struct {
	Risk       Risk     `json:"risk"`
	Label      int      `json:"label"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	Confidence *float64 `json:"confidence,omitempty"`
	Progress   *int     `json:"progress,omitempty"`
}

// ConfidenceText renders the confidence as "83.25%", or "" when absent.
func (o Outcome) ConfidenceText() string {
	if o.Confidence == nil {
		return ""
	}
	return fmt.Sprintf("%.2f%%", *o.Confidence)
}

// Present maps a prediction to one of the two outcomes. The confidence is
// attached only when the model provided one and showConfidence is set.
func Present(p *Prediction, showConfidence bool) Outcome {
	out := Outcome{Risk: RiskLow, Label: p.Label, Title: LowRiskTitle, Message: LowRiskMessage}
	if p.Label == 1 {
		out.Risk, out.Title, out.Message = RiskHigh, HighRiskTitle, HighRiskMessage
	}

	if showConfidence && p.Confidence != nil {
		c := *p.Confidence
		progress := int(c)
		out.Confidence = &c
		out.Progress = &progress
	}
	return out
}
