package process

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/aretw0/mystem/pkg/domain"
	"github.com/aretw0/mystem/pkg/protocol"
)

const (
	// DefaultExecutable is looked up in PATH.
	DefaultExecutable = "mystem"
	// DefaultBufferSize sizes the response reader; a long input produces a very long line.
	DefaultBufferSize = 512 * 1024
	// DefaultGracePeriod is how long Terminate waits after SIGTERM before killing.
	DefaultGracePeriod = 2 * time.Second
)

// ErrMultilineRequest is returned by Exchange for a line containing '\r' or '\n'.
var ErrMultilineRequest = errors.New("request line must not contain newlines")

// Session owns exactly one mystem worker process and its pipes.
//
// Every Exchange first checks, without blocking, whether the worker has
// exited and transparently starts a replacement if so. A Session is not safe
// for concurrent use; callers serialize access or keep one Session per goroutine.
type Session struct {
	executable string
	mode       Mode
	env        []string
	stderr     io.Writer
	bufferSize int
	grace      time.Duration
	logger     *slog.Logger
	hooks      domain.LifecycleHooks

	worker   *worker
	restarts int
}

// Option configures a Session.
type Option func(*Session)

// WithExecutable sets the worker binary (default "mystem").
func WithExecutable(path string) Option {
	return func(s *Session) {
		s.executable = path
	}
}

// WithMode selects the worker argument set.
func WithMode(m Mode) Option {
	return func(s *Session) {
		s.mode = m
	}
}

// WithEnv appends KEY=VALUE entries to the inherited worker environment.
func WithEnv(env ...string) Option {
	return func(s *Session) {
		s.env = append(s.env, env...)
	}
}

// WithStderr forwards the worker's standard error. It is discarded by default.
func WithStderr(w io.Writer) Option {
	return func(s *Session) {
		s.stderr = w
	}
}

// WithBufferSize sets the response reader buffer size.
func WithBufferSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.bufferSize = n
		}
	}
}

// WithGracePeriod sets how long Terminate waits before killing the worker.
func WithGracePeriod(d time.Duration) Option {
	return func(s *Session) {
		s.grace = d
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// NewSession configures a Session without starting the worker.
// The worker is started by Start or lazily by the first Exchange.
func NewSession(opts ...Option) *Session {
	s := &Session{
		executable: DefaultExecutable,
		mode:       ModeWeighted,
		bufferSize: DefaultBufferSize,
		grace:      DefaultGracePeriod,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a Session and starts its worker.
func Open(opts ...Option) (*Session, error) {
	s := NewSession(opts...)
	if err := s.Start(); err != nil {
		return nil, err
	}
	return s, nil
}

// Mode returns the argument set the worker runs with.
func (s *Session) Mode() Mode { return s.mode }

// PID returns the current worker process id, or 0 if none is running.
func (s *Session) PID() int {
	if s.worker == nil {
		return 0
	}
	return s.worker.pid()
}

// Restarts returns how many times a dead worker has been replaced.
func (s *Session) Restarts() int { return s.restarts }

// Exited returns a channel closed when the current worker exits,
// or nil when no worker is running.
func (s *Session) Exited() <-chan struct{} {
	if s.worker == nil {
		return nil
	}
	return s.worker.done
}

// Start spawns the worker unless a live one is already owned.
func (s *Session) Start() error {
	if s.worker != nil && !s.worker.exited() {
		return nil
	}
	return s.EnsureAlive()
}

// EnsureAlive polls the worker's exit status without blocking and replaces
// it when it has exited. A spawn failure is returned as *domain.ProcessSpawnError.
func (s *Session) EnsureAlive() error {
	if s.worker == nil {
		return s.spawn(false)
	}
	if !s.worker.exited() {
		return nil
	}

	old := s.worker
	s.worker = nil
	old.release()
	s.logger.Warn("mystem worker exited, restarting", "pid", old.pid(), "status", old.status())
	s.emitExit(old)
	return s.spawn(true)
}

// Exchange writes line plus a newline to the worker and reads exactly one
// response line, without the trailing newline.
//
// A ctx that is already done returns its error without touching the worker.
// A context without deadline blocks until the worker answers. When ctx is
// done first the worker is killed, since its output stream can no longer be
// matched to requests, and the next call starts a fresh one.
//
// If the worker dies before producing any output for this request (broken
// pipe on write, or EOF before the first byte), it is replaced and the line
// is sent once more. A second failure is returned as *domain.ExchangeError.
func (s *Session) Exchange(ctx context.Context, line string) (string, error) {
	if strings.ContainsAny(line, "\r\n") {
		return "", ErrMultilineRequest
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	for attempt := 0; ; attempt++ {
		if err := s.EnsureAlive(); err != nil {
			return "", err
		}
		res := s.attempt(ctx, line)
		if !res.unanswered || attempt > 0 {
			return res.line, res.err
		}

		s.logger.Warn("mystem worker died before answering, resending", "pid", s.worker.pid(), "err", res.err)
		if err := s.retire(ctx, s.worker); err != nil {
			return "", err
		}
	}
}

func (s *Session) attempt(ctx context.Context, line string) exchangeResult {
	w := s.worker
	start := time.Now()
	results := make(chan exchangeResult, 1)
	go func() {
		results <- w.roundTrip(line)
	}()

	select {
	case res := <-results:
		s.observe(time.Since(start), res.err)
		return res
	case <-ctx.Done():
		s.logger.Warn("mystem exchange abandoned, killing worker", "pid", w.pid(), "err", ctx.Err())
		_ = w.cmd.Process.Kill()
		<-w.done
		s.observe(time.Since(start), ctx.Err())
		return exchangeResult{err: ctx.Err()}
	}
}

// retire waits for a worker that closed its output to exit, killing it after
// the grace period, so that EnsureAlive replaces it.
func (s *Session) retire(ctx context.Context, w *worker) error {
	timer := time.NewTimer(s.grace)
	defer timer.Stop()
	select {
	case <-w.done:
		return nil
	case <-timer.C:
	case <-ctx.Done():
	}
	_ = w.cmd.Process.Kill()
	<-w.done
	return ctx.Err()
}

// Terminate closes the worker's input, sends SIGTERM and waits up to the
// grace period before killing it. It is safe to call more than once; a later
// Exchange starts a new worker.
func (s *Session) Terminate() error {
	w := s.worker
	if w == nil {
		return nil
	}
	s.worker = nil
	defer w.release()

	if w.exited() {
		return nil
	}

	_ = w.stdin.Close()
	err := w.cmd.Process.Signal(syscall.SIGTERM)

	timer := time.NewTimer(s.grace)
	defer timer.Stop()
	select {
	case <-w.done:
	case <-timer.C:
		s.logger.Warn("mystem worker did not exit in time, killing", "pid", w.pid(), "grace", s.grace)
		_ = w.cmd.Process.Kill()
		<-w.done
	}
	s.logger.Debug("mystem worker terminated", "pid", w.pid(), "status", w.status())
	s.emitExit(w)

	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to signal worker %d: %w", w.pid(), err)
	}
	return nil
}

func (s *Session) spawn(restart bool) error {
	cmd := exec.Command(s.executable, s.mode.Args()...)
	if len(s.env) > 0 {
		cmd.Env = append(cmd.Environ(), s.env...)
	}
	cmd.Stderr = s.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &domain.ProcessSpawnError{Executable: s.executable, Err: err}
	}

	// The read end is ours so that Wait never closes it under a pending read.
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		_ = stdin.Close()
		return &domain.ProcessSpawnError{Executable: s.executable, Err: err}
	}
	cmd.Stdout = stdoutW

	if err := cmd.Start(); err != nil {
		_ = stdoutR.Close()
		_ = stdoutW.Close()
		return &domain.ProcessSpawnError{Executable: s.executable, Err: err}
	}
	_ = stdoutW.Close()

	w := &worker{
		cmd:    cmd,
		stdin:  stdin,
		stdout: stdoutR,
		reader: bufio.NewReaderSize(stdoutR, s.bufferSize),
		done:   make(chan struct{}),
	}
	go func() {
		_ = cmd.Wait()
		close(w.done)
	}()

	s.worker = w
	if restart {
		s.restarts++
	}
	s.logger.Debug("mystem worker started", "pid", w.pid(), "mode", s.mode.String(), "restart", restart)
	if s.hooks.OnSpawn != nil {
		s.hooks.OnSpawn(&domain.WorkerEvent{Timestamp: time.Now(), PID: w.pid(), Restart: restart})
	}
	return nil
}

func (s *Session) emitExit(w *worker) {
	if s.hooks.OnExit != nil {
		s.hooks.OnExit(&domain.WorkerEvent{Timestamp: time.Now(), PID: w.pid(), Status: w.status()})
	}
}

func (s *Session) observe(d time.Duration, err error) {
	if s.hooks.OnExchange != nil {
		s.hooks.OnExchange(d, err)
	}
}

type worker struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *os.File
	reader *bufio.Reader
	// done is closed once Wait has returned and cmd.ProcessState is set.
	done chan struct{}
}

type exchangeResult struct {
	line string
	err  error
	// unanswered is set when the worker failed before sending any byte.
	unanswered bool
}

func (w *worker) pid() int { return w.cmd.Process.Pid }

func (w *worker) exited() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

func (w *worker) status() string {
	if !w.exited() || w.cmd.ProcessState == nil {
		return "running"
	}
	return w.cmd.ProcessState.String()
}

func (w *worker) roundTrip(line string) exchangeResult {
	if _, err := w.stdin.Write(protocol.EncodeRequest(line)); err != nil {
		return exchangeResult{
			err:        &domain.ExchangeError{Op: "write", PID: w.pid(), Err: err},
			unanswered: true,
		}
	}
	resp, err := w.reader.ReadString('\n')
	if err != nil {
		return exchangeResult{
			err:        &domain.ExchangeError{Op: "read", PID: w.pid(), Err: err},
			unanswered: resp == "" && errors.Is(err, io.EOF),
		}
	}
	return exchangeResult{line: strings.TrimRight(resp, "\r\n")}
}

func (w *worker) release() {
	_ = w.stdout.Close()
}
