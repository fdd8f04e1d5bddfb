package domain

import "time"

// WorkerEvent describes a worker lifecycle transition.
type WorkerEvent struct {
	Timestamp time.Time `json:"timestamp"`
	PID       int       `json:"pid"`
	// Status is the exit status as reported by the OS; empty on spawn.
	Status string `json:"status,omitempty"`
	// Restart is true when the spawn replaces a worker that exited.
	Restart bool `json:"restart,omitempty"`
}

// LifecycleHooks defines callbacks for session observability.
// Hooks run synchronously on the calling goroutine.
type LifecycleHooks struct {
	OnSpawn func(*WorkerEvent)
	OnExit  func(*WorkerEvent)
	// OnExchange receives the duration of every completed write/read round trip.
	OnExchange func(time.Duration, error)
}
