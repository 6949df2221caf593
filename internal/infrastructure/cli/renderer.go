package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	humanize "github.com/dustin/go-humanize"

	"github.com/doeshing/pamash/internal/application/session"
	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/infrastructure/notify"
)

var (
	echoStyle    = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	safeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)
	toastTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// ansiClear wipes the screen and homes the cursor.
const ansiClear = "\033[2J\033[H"

// WriteLine renders one terminal output line.
func WriteLine(w io.Writer, line domain.OutputLine) {
	switch line.Kind {
	case domain.LineClear:
		fmt.Fprint(w, ansiClear)
	case domain.LineEcho:
		fmt.Fprintln(w, echoStyle.Render(line.Text))
	case domain.LineSuccess:
		fmt.Fprintln(w, successStyle.Render(line.Text))
	case domain.LineError:
		fmt.Fprintln(w, errorStyle.Render(line.Text))
	default:
		fmt.Fprintln(w, line.Text)
	}
}

// WriteLines renders a batch in order.
func WriteLines(w io.Writer, lines []domain.OutputLine) {
	for _, line := range lines {
		WriteLine(w, line)
	}
}

// RenderToast draws a transient alert box.
func RenderToast(w io.Writer, toast notify.Toast) {
	body := toastTitleStyle.Render(toast.Title) + "\n" + toast.Message
	fmt.Fprintln(w, toastStyle.Render(body))
}

// RenderPrompt builds the shell prompt, prefixing the unread badge for
// admins with pending notifications.
func RenderPrompt(sess domain.Session) string {
	prompt := session.Prompt(sess)
	if sess.UnreadCount > 0 {
		return badgeStyle.Render(fmt.Sprintf("[%d]", sess.UnreadCount)) + " " + prompt
	}
	return prompt
}

// RenderLedger shows the session risk figures with the danger/safe
// threshold styling.
func RenderLedger(w io.Writer, ledger domain.RiskLedger) {
	daily := strconv.FormatFloat(ledger.DailyAvg, 'f', 2, 64)
	weekly := strconv.Itoa(ledger.WeeklyTotal)
	fmt.Fprintf(w, "Daily Avg Risk: %s   Weekly Total: %s\n",
		riskValue(daily, ledger.DailyDanger()),
		riskValue(weekly, ledger.WeeklyDanger()),
	)
}

func riskValue(value string, danger bool) string {
	if danger {
		return dangerStyle.Render(value)
	}
	return safeStyle.Render(value)
}

// RenderIncidentLog prints the admin incident table plus the drill-down
// histories of users whose limit was exceeded.
func RenderIncidentLog(w io.Writer, log session.IncidentLog) {
	if len(log.Incidents) == 0 {
		fmt.Fprintln(w, "No incidents reported.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tUSER\tCOMMAND\tDAILY AVG\tWEEKLY\tSTATUS")
	for _, inc := range log.Incidents {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			inc.Timestamp,
			inc.User,
			inc.Command,
			dangerStyle.Render(strconv.FormatFloat(inc.DailyAvg, 'f', 2, 64)),
			inc.WeeklyTotal,
			dangerStyle.Render("RISKY"),
		)
	}
	tw.Flush()

	for user, history := range log.UserHistories {
		fmt.Fprintf(w, "\nCommand history for %s (limit exceeded):\n", user)
		htw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(htw, "TIME\tCOMMAND\tSCORE")
		for _, cmd := range history {
			score := strconv.Itoa(cmd.Score)
			if cmd.Score > domain.UserCommandHighlightScore {
				score = dangerStyle.Render(score)
			}
			fmt.Fprintf(htw, "%s\t%s\t%s\n", cmd.Time, cmd.Command, score)
		}
		htw.Flush()
	}
}

// RenderAuditEntries prints the local audit trail with relative times.
func RenderAuditEntries(w io.Writer, entries []domain.AuditEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No audit entries recorded yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tKIND\tUSER\tCOMMAND\tDETAIL")
	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			humanize.Time(entry.Timestamp),
			entry.Kind,
			entry.User,
			entry.Command,
			entry.Detail,
		)
	}
	tw.Flush()
}

// RenderHealthReport prints status checks.
func RenderHealthReport(w io.Writer, report domain.HealthReport) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, check := range report.Checks {
		status := string(check.Status)
		switch check.Status {
		case domain.HealthOK:
			status = successStyle.Render(status)
		case domain.HealthError:
			status = errorStyle.Render(status)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", status, check.Name, check.Details)
	}
	tw.Flush()
}
