// Package console provides the terminal front end: the prompt carries the
// running display and typed commands drive the stopwatch and voice control.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/core/voice"

	"github.com/chzyer/readline"
)

// Tracker is the stopwatch surface the console drives.
type Tracker interface {
	voice.Controller
	Laps() []stopwatch.Lap
}

// Toggler switches voice control.
type Toggler interface {
	Toggle()
}

// Console handles interactive terminal mode.
type Console struct {
	rl  *readline.Instance
	out io.Writer

	tracker Tracker
	voice   Toggler

	mu          sync.Mutex
	display     string
	voiceActive bool
	voiceLabel  string
}

// New creates a console reading from the terminal.
func New() (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(stopwatch.ZeroDisplay, false),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	console := NewWithWriter(rl.Stdout())
	console.rl = rl
	return console, nil
}

// NewWithWriter creates a console without a terminal that writes to out.
func NewWithWriter(out io.Writer) *Console {
	return &Console{
		out:        out,
		display:    stopwatch.ZeroDisplay,
		voiceLabel: voice.LabelTurnOn,
	}
}

// Bind attaches the stopwatch and voice router the commands act on.
func (console *Console) Bind(tracker Tracker, toggler Toggler) {
	console.tracker = tracker
	console.voice = toggler
}

// Stderr returns a writer that coordinates with the prompt.
func (console *Console) Stderr() io.Writer {
	if console.rl != nil {
		return console.rl.Stderr()
	}
	return console.out
}

// Run reads commands until quit, EOF or ctx is cancelled.
func (console *Console) Run(ctx context.Context) error {
	if console.rl == nil {
		return errors.New("console has no terminal")
	}
	defer console.rl.Close()

	console.printHelp()
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := console.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}
		if !console.Execute(line) {
			return nil
		}
	}
}

// Execute runs one command line. It returns false when the user asked to quit.
func (console *Console) Execute(line string) bool {
	input := strings.ToLower(strings.TrimSpace(line))
	switch input {
	case "":
	case "start", "s":
		console.tracker.Start()
	case "pause", "p":
		console.tracker.Pause()
	case "reset", "r":
		console.tracker.Reset()
	case "lap", "l":
		console.tracker.RecordLap()
	case "laps":
		console.printLaps()
	case "voice", "v":
		console.voice.Toggle()
	case "help", "?":
		console.printHelp()
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(console.out, "Unknown command %q. Type 'help' for commands.\n", input)
	}
	return true
}

// DisplaySink returns the sink that keeps the prompt current.
func (console *Console) DisplaySink() stopwatch.DisplaySink {
	return displaySink{console: console}
}

// LapSink returns the sink printing lap lines.
func (console *Console) LapSink() stopwatch.LapSink {
	return lapSink{console: console}
}

// StatusSink returns the sink printing voice status.
func (console *Console) StatusSink() voice.StatusSink {
	return statusSink{console: console}
}

// VoiceAffordance returns the prompt's voice indicator.
func (console *Console) VoiceAffordance() voice.Affordance {
	return affordance{console: console}
}

// Prompt returns the current prompt text.
func (console *Console) Prompt() string {
	console.mu.Lock()
	defer console.mu.Unlock()
	return prompt(console.display, console.voiceActive)
}

func (console *Console) refreshPrompt() {
	text := console.Prompt()
	if console.rl != nil {
		console.rl.SetPrompt(text)
		console.rl.Refresh()
	}
}

func (console *Console) printLaps() {
	laps := console.tracker.Laps()
	if len(laps) == 0 {
		fmt.Fprintln(console.out, "No laps recorded.")
		return
	}
	for _, lap := range laps {
		fmt.Fprintln(console.out, lap.Label())
	}
}

func (console *Console) printHelp() {
	console.mu.Lock()
	voiceLabel := console.voiceLabel
	console.mu.Unlock()

	fmt.Fprintln(console.out, "Commands:")
	fmt.Fprintln(console.out, "  start (s)   start or resume")
	fmt.Fprintln(console.out, "  pause (p)   pause")
	fmt.Fprintln(console.out, "  reset (r)   reset time and laps")
	fmt.Fprintln(console.out, "  lap (l)     record a lap")
	fmt.Fprintln(console.out, "  laps        list recorded laps")
	fmt.Fprintf(console.out, "  voice (v)   %s\n", voiceLabel)
	fmt.Fprintln(console.out, "  quit (q)    exit")
}

func prompt(display string, voiceActive bool) string {
	if voiceActive {
		return fmt.Sprintf("[%s] stopwatch (voice)> ", display)
	}
	return fmt.Sprintf("[%s] stopwatch> ", display)
}

type displaySink struct {
	console *Console
}

func (sink displaySink) SetText(text string) {
	sink.console.mu.Lock()
	sink.console.display = text
	sink.console.mu.Unlock()
	sink.console.refreshPrompt()
}

type lapSink struct {
	console *Console
}

func (sink lapSink) Append(label string) {
	fmt.Fprintln(sink.console.out, label)
}

func (sink lapSink) Clear() {
	fmt.Fprintln(sink.console.out, "Laps cleared.")
}

type statusSink struct {
	console *Console
}

func (sink statusSink) SetText(text string) {
	fmt.Fprintf(sink.console.out, "voice: %s\n", text)
}

type affordance struct {
	console *Console
}

func (indicator affordance) SetLabel(label string) {
	indicator.console.mu.Lock()
	indicator.console.voiceLabel = label
	indicator.console.mu.Unlock()
}

func (indicator affordance) SetActive(active bool) {
	indicator.console.mu.Lock()
	indicator.console.voiceActive = active
	indicator.console.mu.Unlock()
	indicator.console.refreshPrompt()
}
