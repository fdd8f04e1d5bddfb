package mystem

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/mystem/pkg/adapters/process"
	"github.com/aretw0/mystem/pkg/domain"
	"github.com/aretw0/mystem/pkg/grammem"
	"github.com/aretw0/mystem/pkg/observability"
	"github.com/aretw0/mystem/pkg/ports"
	"github.com/aretw0/mystem/pkg/protocol"
	"github.com/zeebo/blake3"
)

// Analyzer is the high-level entry point of the library.
// It owns one worker Session and serializes calls to it, so a single
// Analyzer is safe for concurrent use.
type Analyzer struct {
	mu sync.Mutex

	session      *process.Session
	sessionOpts  []process.Option
	executable   string
	mode         process.Mode
	policy       grammem.Policy
	maxInputSize int
	cache        ports.ResponseCache
	metrics      *observability.Metrics
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
}

// Option defines a functional option for configuring the Analyzer.
type Option func(*Analyzer)

// WithExecutable sets the worker binary (default "mystem", looked up in PATH).
func WithExecutable(path string) Option {
	return func(a *Analyzer) {
		a.executable = path
	}
}

// WithMode selects weighted multi-candidate output (default) or
// single-candidate disambiguation.
func WithMode(m process.Mode) Option {
	return func(a *Analyzer) {
		a.mode = m
	}
}

// WithPolicy sets how unknown tag codes are handled (default grammem.PolicyStrict).
func WithPolicy(p grammem.Policy) Option {
	return func(a *Analyzer) {
		a.policy = p
	}
}

// WithMaxInputSize rejects input longer than n bytes with protocol.ErrInputTooLarge.
// Zero falls back to the MYSTEM_MAX_INPUT_SIZE environment variable.
func WithMaxInputSize(n int) Option {
	return func(a *Analyzer) {
		a.maxInputSize = n
	}
}

// WithCache stores raw worker responses keyed by request digest.
func WithCache(c ports.ResponseCache) Option {
	return func(a *Analyzer) {
		a.cache = c
	}
}

// WithMetrics records request, cache and worker metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Analyzer) {
		a.metrics = m
	}
}

// WithLifecycleHooks registers worker observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Analyzer) {
		a.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithSessionOptions passes low-level options (environment, stderr, grace
// period, buffer size) to the worker session.
func WithSessionOptions(opts ...process.Option) Option {
	return func(a *Analyzer) {
		a.sessionOpts = append(a.sessionOpts, opts...)
	}
}

// New configures an Analyzer and starts its worker.
// It fails with *domain.ProcessSpawnError when the worker cannot be started.
func New(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		executable: process.DefaultExecutable,
		mode:       process.ModeWeighted,
		policy:     grammem.PolicyStrict,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}

	sessionOpts := append([]process.Option{
		process.WithExecutable(a.executable),
		process.WithMode(a.mode),
		process.WithLogger(a.logger),
		process.WithLifecycleHooks(observability.Combine(a.metrics.Hooks(), a.hooks)),
	}, a.sessionOpts...)

	session, err := process.Open(sessionOpts...)
	if err != nil {
		return nil, err
	}
	a.session = session

	a.logger.Debug("analyzer ready", "executable", a.executable, "mode", a.mode.String(), "policy", a.policy.String())
	return a, nil
}

// Mode returns the worker mode.
func (a *Analyzer) Mode() process.Mode { return a.mode }

// Policy returns the unknown-code policy.
func (a *Analyzer) Policy() grammem.Policy { return a.policy }

// PID returns the current worker process id, or 0 if none is running.
func (a *Analyzer) PID() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.PID()
}

// Restarts returns how many times a dead worker has been replaced.
func (a *Analyzer) Restarts() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Restarts()
}

// Stemming analyzes text and returns one result per token in worker order.
//
// The text is sanitized first (see protocol.Sanitize). A response line that
// is not a token array yields an empty result and a nil error. Unknown tag
// codes fail the whole call under grammem.PolicyStrict; under
// grammem.PolicyIsolate they are recorded as grammem.Unknown facts and
// candidates with an unknown part of speech are dropped.
func (a *Analyzer) Stemming(ctx context.Context, text string) ([]domain.TokenResult, error) {
	line, err := protocol.SanitizeLimited(text, a.maxInputSize)
	if err != nil {
		a.metrics.ObserveRequest(observability.OutcomeError)
		return nil, err
	}
	if strings.TrimSpace(line) == "" {
		a.metrics.ObserveRequest(observability.OutcomeOK)
		return []domain.TokenResult{}, nil
	}

	key := a.cacheKey(line)
	raw, hit := a.lookup(ctx, key)
	if !hit {
		raw, err = a.exchange(ctx, line)
		if err != nil {
			a.metrics.ObserveRequest(observability.OutcomeError)
			return nil, err
		}
	}

	tokens, err := protocol.DecodeResponse(raw)
	if err != nil {
		a.logger.Warn("discarding malformed worker response", "err", err)
		a.metrics.ObserveRequest(observability.OutcomeDecodeError)
		return []domain.TokenResult{}, nil
	}
	if !hit {
		a.store(ctx, key, raw)
	}

	results, err := a.assemble(tokens)
	if err != nil {
		a.metrics.ObserveRequest(observability.OutcomeGrammemError)
		return nil, err
	}

	if hit {
		a.metrics.ObserveRequest(observability.OutcomeCacheHit)
	} else {
		a.metrics.ObserveRequest(observability.OutcomeOK)
	}
	return results, nil
}

// Terminate stops the worker. The error is informational; a later Stemming
// call starts a new worker.
func (a *Analyzer) Terminate() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Terminate()
}

func (a *Analyzer) exchange(ctx context.Context, line string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	// A caller that gave up while queued must not cost the worker its life.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return a.session.Exchange(ctx, line)
}

func (a *Analyzer) assemble(tokens []protocol.Token) ([]domain.TokenResult, error) {
	results := make([]domain.TokenResult, 0, len(tokens))
	for _, tok := range tokens {
		candidates := make([]domain.Candidate, 0, len(tok.Analysis))
		for _, an := range tok.Analysis {
			g, err := grammem.DecodeWith(an.Gr, a.policy)
			if err != nil {
				var posErr *grammem.PartOfSpeechError
				if a.policy == grammem.PolicyIsolate && errors.As(err, &posErr) {
					a.logger.Warn("dropping candidate with unknown part of speech",
						"token", tok.Text, "lemma", an.Lex, "tag", an.Gr)
					continue
				}
				return nil, fmt.Errorf("token %q: %w", tok.Text, err)
			}
			candidates = append(candidates, domain.Candidate{
				Lemma:   an.Lex,
				Grammem: g,
				Weight:  an.Weight(),
				Quality: an.Qual,
			})
		}
		results = append(results, domain.TokenResult{Text: tok.Text, Candidates: candidates})
	}
	return results, nil
}

func (a *Analyzer) cacheKey(line string) string {
	if a.cache == nil {
		return ""
	}
	sum := blake3.Sum256([]byte(a.mode.String() + "\x00" + line))
	return hex.EncodeToString(sum[:])
}

func (a *Analyzer) lookup(ctx context.Context, key string) (string, bool) {
	if a.cache == nil {
		return "", false
	}
	raw, ok, err := a.cache.Get(ctx, key)
	switch {
	case err != nil:
		a.logger.Warn("response cache lookup failed", "err", err)
		a.metrics.ObserveCache(observability.CacheError)
		return "", false
	case ok:
		a.metrics.ObserveCache(observability.CacheHit)
		return raw, true
	default:
		a.metrics.ObserveCache(observability.CacheMiss)
		return "", false
	}
}

func (a *Analyzer) store(ctx context.Context, key, raw string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Set(ctx, key, raw); err != nil {
		a.logger.Warn("response cache store failed", "err", err)
	}
}
