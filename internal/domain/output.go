package domain

// LineKind mirrors the output classes of the terminal: command echo,
// neutral system text, success and error lines.
type LineKind string

const (
	LineEcho    LineKind = "echo"
	LineSystem  LineKind = "system"
	LineSuccess LineKind = "success"
	LineError   LineKind = "error"
	// LineClear instructs the renderer to wipe the screen; it carries no text.
	LineClear LineKind = "clear"
)

// OutputLine is one rendered terminal line. Rendering is a projection of
// these values; no component writes to the terminal directly.
type OutputLine struct {
	Kind LineKind
	Text string
}

// Echo builds a command-echo line.
func Echo(text string) OutputLine { return OutputLine{Kind: LineEcho, Text: text} }

// System builds a neutral line.
func System(text string) OutputLine { return OutputLine{Kind: LineSystem, Text: text} }

// Success builds a success line.
func Success(text string) OutputLine { return OutputLine{Kind: LineSuccess, Text: text} }

// Error builds an error line.
func Error(text string) OutputLine { return OutputLine{Kind: LineError, Text: text} }
