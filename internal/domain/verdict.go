package domain

// Prediction labels returned by the scoring service.
const (
	PredictionRisky = "risky"
	PredictionSafe  = "normal"
)

// ScoreRequest is the payload of one scoring call. The command text travels
// unmodified; only allow-list matching lower-cases the verb.
type ScoreRequest struct {
	Command  string `json:"command"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Verdict is the scoring service's answer for one evaluated command. It is
// never cached; callers always see the most recent response.
type Verdict struct {
	Command          string  `json:"command"`
	Prediction       string  `json:"prediction"`
	RiskScore        int     `json:"risk_score"`
	AverageRiskScore float64 `json:"average_risk_score"`
	WeeklyTotalRisk  int     `json:"weekly_total_risk"`
}

// Risky reports whether the service flagged the command.
func (v Verdict) Risky() bool { return v.Prediction == PredictionRisky }

// EvaluationSource records how a safety decision was reached.
type EvaluationSource string

const (
	SourceOffline   EvaluationSource = "offline"    // server known offline, fail-open
	SourceAllowList EvaluationSource = "allow_list" // verb matched without a remote call
	SourceRemote    EvaluationSource = "remote"     // scored by the service
	SourceFailOpen  EvaluationSource = "fail_open"  // scoring call failed, fail-open
)

// Evaluation is the classifier's decision for one submitted command.
// Verdict is nil unless Source is SourceRemote.
type Evaluation struct {
	Safe    bool
	Source  EvaluationSource
	Verdict *Verdict
	Err     error
}
