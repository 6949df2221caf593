// Package devserver is a local stand-in for the remote scoring service so
// the client can be demoed and integration-tested without it. It mirrors
// the service's API surface with a keyword heuristic; the real ML model is
// out of scope.
package devserver

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/doeshing/pamash/internal/domain"
)

type historyEntry struct {
	Command string
	Score   int
	Time    time.Time
}

// Server holds the in-memory incident store and per-user score history.
type Server struct {
	mu        sync.Mutex
	incidents []domain.Incident
	history   map[string][]historyEntry
	now       func() time.Time
}

// New builds an empty dev server.
func New() *Server {
	return &Server{
		history: map[string][]historyEntry{},
		now:     time.Now,
	}
}

// Router returns the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/predict", s.handlePredict).Methods(http.MethodPost)
	r.HandleFunc("/notifications", s.handleNotifications).Methods(http.MethodGet)
	r.HandleFunc("/user_commands/{username}", s.handleUserCommands).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "online", "system": "PAMA Security Node (dev)"})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req domain.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	score, risky := scoreCommand(req.Command)
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.history[req.Username] = append(s.history[req.Username], historyEntry{
		Command: req.Command,
		Score:   score,
		Time:    now,
	})

	dailyAvg, weeklyTotal := s.aggregate(req.Username, now)
	limitExceeded := dailyAvg > 7 || weeklyTotal >= 80

	prediction := domain.PredictionSafe
	if risky {
		prediction = domain.PredictionRisky
		if limitExceeded {
			s.incidents = append(s.incidents, domain.Incident{
				ID:            int64(len(s.incidents) + 1),
				Timestamp:     now.Format("15:04:05"),
				User:          req.Username,
				Command:       req.Command,
				DailyAvg:      round2(dailyAvg),
				WeeklyTotal:   weeklyTotal,
				LimitExceeded: true,
			})
		}
	}

	writeJSON(w, domain.Verdict{
		Command:          req.Command,
		Prediction:       prediction,
		RiskScore:        score,
		AverageRiskScore: round2(dailyAvg),
		WeeklyTotalRisk:  weeklyTotal,
	})
}

func (s *Server) handleNotifications(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// feed is newest first
	reversed := make([]domain.Incident, 0, len(s.incidents))
	for i := len(s.incidents) - 1; i >= 0; i-- {
		reversed = append(reversed, s.incidents[i])
	}
	writeJSON(w, reversed)
}

func (s *Server) handleUserCommands(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.history[username]
	out := make([]domain.UserCommand, 0, len(entries))
	for _, entry := range entries {
		out = append(out, domain.UserCommand{
			Time:    entry.Time.Format("2006-01-02 15:04:05"),
			Command: entry.Command,
			Score:   entry.Score,
		})
	}
	writeJSON(w, out)
}

// aggregate computes today's average and the last seven days' total for one
// user. Caller holds the lock.
func (s *Server) aggregate(username string, now time.Time) (float64, int) {
	var todaySum, todayCount int
	var weeklyTotal int
	weekStart := now.AddDate(0, 0, -7)

	for _, entry := range s.history[username] {
		if sameDay(entry.Time, now) {
			todaySum += entry.Score
			todayCount++
		}
		if !entry.Time.Before(weekStart) {
			weeklyTotal += entry.Score
		}
	}

	dailyAvg := 0.0
	if todayCount > 0 {
		dailyAvg = float64(todaySum) / float64(todayCount)
	}
	return dailyAvg, weeklyTotal
}

var riskyPatterns = map[string]int{
	"rm -rf":     9,
	"dd if=":     9,
	"mkfs":       9,
	"format":     8,
	":(){":       10,
	"chmod 777":  6,
	"shutdown":   7,
	"drop table": 8,
	"| sudo":     8,
	"del /":      8,
}

// scoreCommand is the dev heuristic: highest matching pattern wins, plain
// commands score 1.
func scoreCommand(command string) (int, bool) {
	lowered := strings.ToLower(command)
	best := 0
	for pattern, score := range riskyPatterns {
		if strings.Contains(lowered, pattern) && score > best {
			best = score
		}
	}
	if best == 0 {
		return 1, false
	}
	return best, true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("content-type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
