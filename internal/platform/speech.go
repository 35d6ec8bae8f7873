package platform

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"stopwatch/internal/core/model"
	"stopwatch/internal/core/voice"

	"go.uber.org/zap"
)

// interimPrefix marks a partial transcript line.
const interimPrefix = "~"

// stopWaitDelay bounds how long Wait blocks on I/O after the recognizer is killed.
const stopWaitDelay = 2 * time.Second

// NewSpeechCapability returns a speech capability backed by an external
// recognizer command that prints one transcript per line on stdout.
// It is unsupported when the command is empty or not found on PATH.
func NewSpeechCapability(command string, logger *zap.Logger) voice.Capability {
	if logger == nil {
		logger = zap.NewNop()
	}
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return unsupportedSpeech{}
	}
	path, err := exec.LookPath(fields[0])
	if err != nil {
		logger.Info("speech command not found", zap.String("command", fields[0]), zap.Error(err))
		return unsupportedSpeech{}
	}
	return &commandSpeech{path: path, args: fields[1:], logger: logger}
}

type unsupportedSpeech struct{}

func (unsupportedSpeech) Supported() bool {
	return false
}

func (unsupportedSpeech) NewSession(model.VoiceConfig, voice.Handlers) (voice.Session, error) {
	return nil, voice.ErrSpeechUnsupported
}

type commandSpeech struct {
	path   string
	args   []string
	logger *zap.Logger
}

func (speech *commandSpeech) Supported() bool {
	return true
}

func (speech *commandSpeech) NewSession(config model.VoiceConfig, handlers voice.Handlers) (voice.Session, error) {
	return &commandSession{speech: speech, config: config, handlers: handlers}, nil
}

type commandSession struct {
	speech   *commandSpeech
	config   model.VoiceConfig
	handlers voice.Handlers

	mu  sync.Mutex
	run *speechRun
}

// speechRun is one recognizer process. A stopped run that is replaced by a
// newer one is detached and never reports to the handlers again.
type speechRun struct {
	cmd      *exec.Cmd
	cancel   context.CancelFunc
	stdout   io.ReadCloser
	stopping bool
}

func (session *commandSession) Start() error {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.run != nil {
		if !session.run.stopping {
			return voice.ErrSessionRunning
		}
		session.run = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, session.speech.path, session.speech.args...)
	cmd.Env = append(os.Environ(),
		"SPEECH_LOCALE="+session.config.Locale,
		"SPEECH_CONTINUOUS="+strconv.FormatBool(session.config.Continuous),
		"SPEECH_INTERIM_RESULTS="+strconv.FormatBool(session.config.InterimResults),
	)
	killProcessGroup(cmd)
	cmd.WaitDelay = stopWaitDelay
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("speech stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start speech command: %w", err)
	}

	run := &speechRun{cmd: cmd, cancel: cancel, stdout: stdout}
	session.run = run
	session.speech.logger.Debug("speech session started", zap.Int("pid", cmd.Process.Pid))

	go session.read(run)
	return nil
}

func (session *commandSession) Stop() error {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.run == nil {
		return nil
	}
	session.stopLocked(session.run)
	return nil
}

func (session *commandSession) stopLocked(run *speechRun) {
	if run.stopping {
		return
	}
	run.stopping = true
	run.cancel()
	_ = run.stdout.Close()
}

// live reports whether run may still deliver results.
func (session *commandSession) live(run *speechRun) bool {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.run == run && !run.stopping
}

func (session *commandSession) read(run *speechRun) {
	scanner := bufio.NewScanner(run.stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		final := !strings.HasPrefix(line, interimPrefix)
		if !final {
			if !session.config.InterimResults {
				continue
			}
			line = strings.TrimSpace(strings.TrimPrefix(line, interimPrefix))
		}
		if !session.live(run) {
			break
		}

		session.emitResult(voice.Result{Transcript: line, Final: final})
		if final && !session.config.Continuous {
			session.mu.Lock()
			session.stopLocked(run)
			session.mu.Unlock()
		}
	}

	waitErr := run.cmd.Wait()

	session.mu.Lock()
	stopping := run.stopping
	current := session.run == run
	if current {
		session.run = nil
	}
	run.cancel()
	session.mu.Unlock()

	if !current {
		session.speech.logger.Debug("detached speech session ended")
		return
	}
	if waitErr != nil && !stopping {
		session.emitError(errorCode(waitErr))
	}
	if session.handlers.OnEnd != nil {
		session.handlers.OnEnd()
	}
}

func (session *commandSession) emitResult(result voice.Result) {
	if session.handlers.OnResult != nil {
		session.handlers.OnResult([]voice.Result{result})
	}
}

func (session *commandSession) emitError(code string) {
	session.speech.logger.Debug("speech session error", zap.String("code", code))
	if session.handlers.OnError != nil {
		session.handlers.OnError(code)
	}
}

func errorCode(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Sprintf("exit-status-%d", exitErr.ExitCode())
	}
	return err.Error()
}
