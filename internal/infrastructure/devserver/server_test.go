package devserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/infrastructure/scoring"
)

func newTestServer(t *testing.T) (*Server, *scoring.Client) {
	t.Helper()
	server := New()
	server.now = func() time.Time {
		return time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	}
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return server, scoring.NewClient(ts.URL, time.Second)
}

func TestPingAgainstDevServer(t *testing.T) {
	_, client := newTestServer(t)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping error: %v", err)
	}
}

func TestPredictSafeCommand(t *testing.T) {
	_, client := newTestServer(t)

	verdict, err := client.Predict(context.Background(), domain.ScoreRequest{
		Command:  "cat notes.txt",
		Username: "alice",
		Role:     "user",
	})
	if err != nil {
		t.Fatalf("Predict error: %v", err)
	}
	if verdict.Prediction != domain.PredictionSafe {
		t.Fatalf("prediction = %q", verdict.Prediction)
	}
	if verdict.RiskScore != 1 {
		t.Fatalf("risk score = %d, want 1", verdict.RiskScore)
	}
}

func TestPredictRiskyCommandFlagsAndScores(t *testing.T) {
	_, client := newTestServer(t)

	verdict, err := client.Predict(context.Background(), domain.ScoreRequest{
		Command:  "sudo rm -rf /",
		Username: "mallory",
		Role:     "user",
	})
	if err != nil {
		t.Fatalf("Predict error: %v", err)
	}
	if verdict.Prediction != domain.PredictionRisky {
		t.Fatalf("prediction = %q", verdict.Prediction)
	}
	if verdict.RiskScore != 9 {
		t.Fatalf("risk score = %d, want 9", verdict.RiskScore)
	}
	if verdict.AverageRiskScore != 9 {
		t.Fatalf("daily avg = %v, want 9", verdict.AverageRiskScore)
	}
}

func TestIncidentRequiresRiskyAndLimitExceeded(t *testing.T) {
	_, client := newTestServer(t)

	// first risky command: daily avg 9 > 7, so an incident is logged
	if _, err := client.Predict(context.Background(), domain.ScoreRequest{
		Command:  "rm -rf /",
		Username: "mallory",
	}); err != nil {
		t.Fatalf("Predict error: %v", err)
	}

	incidents, err := client.Incidents(context.Background())
	if err != nil {
		t.Fatalf("Incidents error: %v", err)
	}
	if len(incidents) != 1 {
		t.Fatalf("got %d incidents, want 1", len(incidents))
	}
	if incidents[0].ID != 1 || !incidents[0].LimitExceeded {
		t.Fatalf("incident = %+v", incidents[0])
	}

	// a pile of safe commands drags the daily average under the limit;
	// the next risky command is flagged but not logged
	for i := 0; i < 20; i++ {
		if _, err := client.Predict(context.Background(), domain.ScoreRequest{
			Command:  "ls",
			Username: "bob",
		}); err != nil {
			t.Fatalf("Predict error: %v", err)
		}
	}
	verdict, err := client.Predict(context.Background(), domain.ScoreRequest{
		Command:  "chmod 777 /etc",
		Username: "bob",
	})
	if err != nil {
		t.Fatalf("Predict error: %v", err)
	}
	if verdict.Prediction != domain.PredictionRisky {
		t.Fatalf("prediction = %q", verdict.Prediction)
	}

	incidents, err = client.Incidents(context.Background())
	if err != nil {
		t.Fatalf("Incidents error: %v", err)
	}
	if len(incidents) != 1 {
		t.Fatalf("below-limit risky command logged an incident: %d", len(incidents))
	}
}

func TestNotificationsNewestFirst(t *testing.T) {
	_, client := newTestServer(t)

	for _, cmd := range []string{"rm -rf /", "dd if=/dev/zero of=/dev/sda"} {
		if _, err := client.Predict(context.Background(), domain.ScoreRequest{
			Command:  cmd,
			Username: "mallory",
		}); err != nil {
			t.Fatalf("Predict error: %v", err)
		}
	}

	incidents, err := client.Incidents(context.Background())
	if err != nil {
		t.Fatalf("Incidents error: %v", err)
	}
	if len(incidents) != 2 {
		t.Fatalf("got %d incidents, want 2", len(incidents))
	}
	if incidents[0].ID != 2 || incidents[1].ID != 1 {
		t.Fatalf("feed not newest first: %+v", incidents)
	}
}

func TestUserCommandsHistory(t *testing.T) {
	_, client := newTestServer(t)

	if _, err := client.Predict(context.Background(), domain.ScoreRequest{
		Command:  "rm -rf /",
		Username: "mallory",
	}); err != nil {
		t.Fatalf("Predict error: %v", err)
	}

	history, err := client.UserCommands(context.Background(), "mallory")
	if err != nil {
		t.Fatalf("UserCommands error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("got %d history entries, want 1", len(history))
	}
	if history[0].Command != "rm -rf /" || history[0].Score != 9 {
		t.Fatalf("history = %+v", history[0])
	}
	if history[0].Time != "2025-01-20 10:00:00" {
		t.Fatalf("time = %q", history[0].Time)
	}

	empty, err := client.UserCommands(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("UserCommands error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("unknown user has history: %+v", empty)
	}
}

func TestScoreCommandHighestPatternWins(t *testing.T) {
	score, risky := scoreCommand("echo hi && rm -rf / && :(){ :|:& };:")
	if !risky || score != 10 {
		t.Fatalf("score = %d risky = %v, want 10 true", score, risky)
	}

	score, risky = scoreCommand("ls -la")
	if risky || score != 1 {
		t.Fatalf("score = %d risky = %v, want 1 false", score, risky)
	}
}
