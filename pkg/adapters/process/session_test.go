package process_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/aretw0/mystem/internal/testutils"
	"github.com/aretw0/mystem/pkg/adapters/process"
	"github.com/aretw0/mystem/pkg/domain"
	"github.com/aretw0/mystem/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitExited(t *testing.T, s *process.Session) {
	t.Helper()
	select {
	case <-s.Exited():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not exit")
	}
}

func TestMode_Args(t *testing.T) {
	assert.Equal(t, []string{"-i", "--format", "json", "--eng-gr", "--weight"}, process.ModeWeighted.Args())
	assert.Equal(t, []string{"-i", "-d", "--format", "json", "--eng-gr"}, process.ModeDisambiguate.Args())

	m, err := process.ParseMode("disambiguate")
	require.NoError(t, err)
	assert.Equal(t, process.ModeDisambiguate, m)

	_, err = process.ParseMode("fast")
	assert.Error(t, err)
}

func TestSession_SpawnFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-mystem")

	_, err := process.Open(process.WithExecutable(missing))
	require.Error(t, err)

	var spawnErr *domain.ProcessSpawnError
	require.True(t, errors.As(err, &spawnErr))
	assert.Equal(t, missing, spawnErr.Executable)
	assert.ErrorIs(t, err, domain.ErrProcessSpawn)

	// Lazily started sessions surface the same error from Exchange.
	s := process.NewSession(process.WithExecutable(missing))
	_, err = s.Exchange(context.Background(), "мама")
	assert.ErrorIs(t, err, domain.ErrProcessSpawn)
	assert.Equal(t, 0, s.PID())
}

func TestSession_Exchange(t *testing.T) {
	exe := testutils.BuildFakeMystem(t)

	s, err := process.Open(process.WithExecutable(exe))
	require.NoError(t, err)
	defer s.Terminate()

	assert.NotZero(t, s.PID())

	line, err := s.Exchange(context.Background(), "мама")
	require.NoError(t, err)
	assert.Equal(t, `[{"analysis":[{"lex":"мама","gr":"S,f,anim=nom,sg"}],"text":"мама"}]`, line)

	// The same worker serves consecutive requests.
	pid := s.PID()
	line, err = s.Exchange(context.Background(), "как")
	require.NoError(t, err)
	tokens, err := protocol.DecodeResponse(line)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Len(t, tokens[0].Analysis, 2)
	assert.Equal(t, pid, s.PID())
	assert.Equal(t, 0, s.Restarts())
}

func TestSession_DisambiguateMode(t *testing.T) {
	exe := testutils.BuildFakeMystem(t)

	s, err := process.Open(process.WithExecutable(exe), process.WithMode(process.ModeDisambiguate))
	require.NoError(t, err)
	defer s.Terminate()

	line, err := s.Exchange(context.Background(), "как")
	require.NoError(t, err)
	tokens, err := protocol.DecodeResponse(line)
	require.NoError(t, err)
	require.Len(t, tokens[0].Analysis, 1)
	assert.Nil(t, tokens[0].Analysis[0].Wt)
}

func TestSession_RejectsMultilineRequest(t *testing.T) {
	s := process.NewSession(process.WithExecutable("unused"))
	_, err := s.Exchange(context.Background(), "a\nb")
	assert.ErrorIs(t, err, process.ErrMultilineRequest)
	assert.Equal(t, 0, s.PID(), "no worker is started for a rejected request")
}

func TestSession_RestartsAfterWorkerExit(t *testing.T) {
	exe := testutils.BuildFakeMystem(t)

	var spawns, exits []*domain.WorkerEvent
	s, err := process.Open(
		process.WithExecutable(exe),
		process.WithEnv("FAKEMYSTEM_EXIT_AFTER=1"),
		process.WithLifecycleHooks(domain.LifecycleHooks{
			OnSpawn: func(e *domain.WorkerEvent) { spawns = append(spawns, e) },
			OnExit:  func(e *domain.WorkerEvent) { exits = append(exits, e) },
		}),
	)
	require.NoError(t, err)
	defer s.Terminate()

	firstPID := s.PID()
	_, err = s.Exchange(context.Background(), "мама")
	require.NoError(t, err)

	// The fixture exits right after its first reply.
	waitExited(t, s)

	line, err := s.Exchange(context.Background(), "мама")
	require.NoError(t, err, "the call after a crash must be served by the new worker")
	assert.Contains(t, line, `"lex":"мама"`)

	assert.Equal(t, 1, s.Restarts())
	assert.NotEqual(t, firstPID, s.PID())

	require.Len(t, spawns, 2)
	assert.False(t, spawns[0].Restart)
	assert.True(t, spawns[1].Restart)
	require.Len(t, exits, 1)
	assert.Equal(t, firstPID, exits[0].PID)
	assert.Contains(t, exits[0].Status, "exit status 3")
}

func TestSession_RestartsAfterExternalKill(t *testing.T) {
	exe := testutils.BuildFakeMystem(t)

	s, err := process.Open(process.WithExecutable(exe))
	require.NoError(t, err)
	defer s.Terminate()

	oldPID := s.PID()
	proc, err := os.FindProcess(oldPID)
	require.NoError(t, err)
	require.NoError(t, proc.Kill())
	waitExited(t, s)

	line, err := s.Exchange(context.Background(), "связался")
	require.NoError(t, err)
	assert.Contains(t, line, "связываться")
	assert.Equal(t, 1, s.Restarts())
	assert.NotEqual(t, oldPID, s.PID())
}

func TestSession_CancelledExchangeKillsWorker(t *testing.T) {
	exe := testutils.BuildFakeMystem(t)

	s, err := process.Open(process.WithExecutable(exe), process.WithEnv("FAKEMYSTEM_HANG=1"))
	require.NoError(t, err)
	defer s.Terminate()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = s.Exchange(ctx, "мама")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)

	// The hung worker is gone; the next call gets a fresh (still hanging) one.
	select {
	case <-s.Exited():
	default:
		t.Fatal("worker should have been killed")
	}

	ctx2, cancel2 := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel2()
	_, err = s.Exchange(ctx2, "мама")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, s.Restarts())
}

func TestSession_CancelledBeforeExchangeSparesWorker(t *testing.T) {
	exe := testutils.BuildFakeMystem(t)

	s, err := process.Open(process.WithExecutable(exe))
	require.NoError(t, err)
	defer s.Terminate()

	pid := s.PID()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Exchange(ctx, "мама")
	assert.ErrorIs(t, err, context.Canceled)
	select {
	case <-s.Exited():
		t.Fatal("a call cancelled up front must not kill the worker")
	default:
	}

	line, err := s.Exchange(context.Background(), "мама")
	require.NoError(t, err)
	assert.Contains(t, line, `"lex":"мама"`)
	assert.Equal(t, pid, s.PID())
	assert.Equal(t, 0, s.Restarts())
}

func TestSession_ResendsWhenWorkerDiesBeforeAnswering(t *testing.T) {
	exe := testutils.BuildFakeMystem(t)

	// Each worker exits right after its reply, so the next request races
	// the exit and may be written to a dying process.
	s, err := process.Open(process.WithExecutable(exe), process.WithEnv("FAKEMYSTEM_EXIT_AFTER=1"))
	require.NoError(t, err)
	defer s.Terminate()

	const calls = 10
	for i := 0; i < calls; i++ {
		line, err := s.Exchange(context.Background(), "мама")
		require.NoError(t, err, "call %d", i)
		assert.Contains(t, line, `"lex":"мама"`)
	}
	assert.Equal(t, calls-1, s.Restarts())
}

func TestSession_ReadFailureWhenWorkerKeepsDying(t *testing.T) {
	exe := testutils.BuildFakeMystem(t)

	// Every worker exits on the request without answering; the resend fails too.
	s, err := process.Open(process.WithExecutable(exe), process.WithEnv("FAKEMYSTEM_DIE=1"))
	require.NoError(t, err)
	defer s.Terminate()

	_, err = s.Exchange(context.Background(), "мама")
	require.Error(t, err)
	var exErr *domain.ExchangeError
	require.True(t, errors.As(err, &exErr))
	assert.ErrorIs(t, err, domain.ErrExchange)
	assert.Equal(t, 1, s.Restarts(), "exactly one resend")
}

func TestSession_Terminate(t *testing.T) {
	exe := testutils.BuildFakeMystem(t)

	s, err := process.Open(process.WithExecutable(exe))
	require.NoError(t, err)

	exited := s.Exited()
	require.NoError(t, s.Terminate())
	select {
	case <-exited:
	default:
		t.Fatal("Terminate must wait for the worker to exit")
	}
	assert.Equal(t, 0, s.PID())

	// Idempotent.
	assert.NoError(t, s.Terminate())

	// A terminated session starts a new worker on demand, not counted as a restart.
	_, err = s.Exchange(context.Background(), "мама")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Restarts())
	assert.NoError(t, s.Terminate())
}

func TestSession_TerminateKillsStubbornWorker(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("SIGTERM is not deliverable on windows")
	}
	exe := testutils.BuildFakeMystem(t)

	s, err := process.Open(
		process.WithExecutable(exe),
		process.WithEnv("FAKEMYSTEM_IGNORE_TERM=1"),
		process.WithGracePeriod(300*time.Millisecond),
	)
	require.NoError(t, err)

	// One round trip guarantees the worker has installed its signal handling.
	_, err = s.Exchange(context.Background(), "мама")
	require.NoError(t, err)

	start := time.Now()
	assert.NoError(t, s.Terminate())
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
	assert.Equal(t, 0, s.PID())
}
