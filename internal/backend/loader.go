package backend

import (
	"context"
	"log/slog"
	"sync"

	"github.com/arjun-krishnan/sms-txn-parser/constants"
)

// Factory builds a backend once; invoked asynchronously by the loader.
type Factory func(ctx context.Context) (Backend, error)

// StatusCallback receives exactly one readiness transition.
type StatusCallback func(constants.BackendStatus)

// Loader owns the one-time asynchronous initialization of the configured
// backend and its readiness state. Calls made before the backend is ready
// are rejected with ErrNotReady (never queued); at most one status callback
// is pending at a time, and a new registration replaces the old one.
type Loader struct {
	logger  *slog.Logger
	factory Factory

	mu      sync.Mutex
	status  constants.BackendStatus
	backend Backend
	pending StatusCallback
	once    sync.Once
}

func NewLoader(factory Factory, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	status := constants.BackendDownloadable
	if factory == nil {
		status = constants.BackendUnavailable
	}
	return &Loader{logger: logger, factory: factory, status: status}
}

// Start kicks off initialization in the background. Safe to call more than
// once; only the first call does anything.
func (l *Loader) Start(ctx context.Context) {
	if l.factory == nil {
		return
	}
	l.once.Do(func() {
		l.transition(constants.BackendDownloading)
		go func() {
			b, err := l.factory(ctx)
			if err != nil {
				l.logger.Warn("backend.load.failed", "error", err)
				l.transition(constants.BackendUnavailable)
				return
			}
			l.mu.Lock()
			l.backend = b
			l.mu.Unlock()
			l.logger.Info("backend.load.ok", "backend", b.Name())
			l.transition(constants.BackendAvailable)
		}()
	})
}

// Status reports the current readiness state.
func (l *Loader) Status() constants.BackendStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Backend returns the loaded backend, ErrNotReady while loading, or
// ErrUnavailable when nothing is configured or the load failed.
func (l *Loader) Backend() (Backend, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch l.status {
	case constants.BackendAvailable:
		return l.backend, nil
	case constants.BackendUnavailable:
		return nil, ErrUnavailable
	default:
		return nil, ErrNotReady
	}
}

// NotifyStatus registers the single pending callback. If a terminal state
// has already been reached the callback fires immediately; otherwise it
// fires once on the next transition. Registering again replaces any
// callback that has not fired yet.
func (l *Loader) NotifyStatus(cb StatusCallback) {
	if cb == nil {
		return
	}
	l.mu.Lock()
	status := l.status
	terminal := status == constants.BackendAvailable || status == constants.BackendUnavailable
	if !terminal {
		l.pending = cb
	}
	l.mu.Unlock()

	if terminal {
		cb(status)
	}
}

func (l *Loader) transition(next constants.BackendStatus) {
	l.mu.Lock()
	l.status = next
	cb := l.pending
	l.pending = nil
	l.mu.Unlock()

	if cb != nil {
		cb(next)
	}
}
