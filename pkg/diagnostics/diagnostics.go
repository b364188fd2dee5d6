// Package diagnostics collects and prints the errors and warnings produced
// by the semantic analyzer, parser, and interpreter.
package diagnostics

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

// Severity distinguishes a fatal condition from one that is recorded but
// does not stop the pipeline.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Message is one recorded diagnostic.
type Message struct {
	Severity Severity
	Stage    string // "parse", "semantic", "runtime"
	Text     string
	Line     int // 0 if not associated with a source line
}

func (m Message) String() string {
	if m.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", m.Stage, m.Text, m.Line)
	}
	return fmt.Sprintf("%s: %s", m.Stage, m.Text)
}

// Sink accumulates diagnostics for a single compile-and-run pass. The
// semantic analyzer keeps going after recording errors here; hasErrors
// reports whether any SeverityError message was seen (§4.3).
type Sink struct {
	messages  []Message
	hasErrors bool
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Error records a fatal-tier diagnostic without halting the caller.
func (s *Sink) Error(stage string, line int, format string, args ...any) {
	s.record(SeverityError, stage, line, format, args...)
}

// Warning records a non-fatal diagnostic.
func (s *Sink) Warning(stage string, line int, format string, args ...any) {
	s.record(SeverityWarning, stage, line, format, args...)
}

func (s *Sink) record(sev Severity, stage string, line int, format string, args ...any) {
	s.messages = append(s.messages, Message{
		Severity: sev,
		Stage:    stage,
		Text:     fmt.Sprintf(format, args...),
		Line:     line,
	})
	if sev == SeverityError {
		s.hasErrors = true
	}
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	return s.hasErrors
}

// Messages returns every recorded diagnostic in recording order.
func (s *Sink) Messages() []Message {
	return s.messages
}

// PrintAll writes every recorded diagnostic to stderr, styled by severity.
func (s *Sink) PrintAll() {
	for _, m := range s.messages {
		printOne(m)
	}
}

func printOne(m Message) {
	tag := fmt.Sprintf("%s Error", stageLabel(m.Stage))
	style := pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	color := pterm.FgRed
	if m.Severity == SeverityWarning {
		tag = fmt.Sprintf("%s Warning", stageLabel(m.Stage))
		style = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
		color = pterm.FgYellow
	}
	fmt.Fprintln(os.Stderr, style.Sprint(tag))
	if m.Line > 0 {
		fmt.Fprintln(os.Stderr, color.Sprintf(" line %d: %s", m.Line, m.Text))
	} else {
		fmt.Fprintln(os.Stderr, color.Sprintf(" %s", m.Text))
	}
}

func stageLabel(stage string) string {
	switch stage {
	case "parse":
		return "Parse"
	case "semantic":
		return "Semantic"
	case "runtime":
		return "Runtime"
	}
	return "Compiler"
}

// FatalRuntime prints a single fatal runtime error the way the interpreter
// reports an unrecoverable condition (division by zero, etc.) and returns
// the message so callers can also use it in a non-zero exit path.
func FatalRuntime(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	pterm.NewStyle(pterm.BgRed, pterm.FgWhite).Println("Runtime Error")
	pterm.FgRed.Printfln(" Error: %s", msg)
	return msg
}
