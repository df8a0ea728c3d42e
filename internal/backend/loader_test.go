package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arjun-krishnan/sms-txn-parser/constants"
)

type stubBackend struct{ name string }

func (s *stubBackend) Name() string { return s.name }
func (s *stubBackend) Infer(context.Context, Request) (*Signal, error) {
	return &Signal{CreditProbability: 1}, nil
}

func waitForStatus(t *testing.T, l *Loader, want constants.BackendStatus) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if l.Status() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("loader never reached %s (stuck at %s)", want, l.Status())
}

func TestLoaderNoFactory(t *testing.T) {
	l := NewLoader(nil, nil)
	if got := l.Status(); got != constants.BackendUnavailable {
		t.Errorf("status: got %s, want %s", got, constants.BackendUnavailable)
	}
	if _, err := l.Backend(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Backend(): got %v, want ErrUnavailable", err)
	}
}

func TestLoaderRejectsBeforeReady(t *testing.T) {
	release := make(chan struct{})
	l := NewLoader(func(context.Context) (Backend, error) {
		<-release
		return &stubBackend{name: "stub"}, nil
	}, nil)

	if got := l.Status(); got != constants.BackendDownloadable {
		t.Errorf("pre-start status: got %s, want %s", got, constants.BackendDownloadable)
	}
	if _, err := l.Backend(); !errors.Is(err, ErrNotReady) {
		t.Errorf("pre-start Backend(): got %v, want ErrNotReady", err)
	}

	l.Start(context.Background())
	if _, err := l.Backend(); !errors.Is(err, ErrNotReady) {
		t.Errorf("loading Backend(): got %v, want ErrNotReady", err)
	}

	close(release)
	waitForStatus(t, l, constants.BackendAvailable)

	b, err := l.Backend()
	if err != nil {
		t.Fatalf("ready Backend(): unexpected error %v", err)
	}
	if b.Name() != "stub" {
		t.Errorf("backend name: got %s, want stub", b.Name())
	}
}

func TestLoaderFailedLoad(t *testing.T) {
	l := NewLoader(func(context.Context) (Backend, error) {
		return nil, errors.New("no such model")
	}, nil)
	l.Start(context.Background())
	waitForStatus(t, l, constants.BackendUnavailable)

	if _, err := l.Backend(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Backend(): got %v, want ErrUnavailable", err)
	}
}

// A second registration replaces the pending callback: only the latest one
// is notified, exactly once, on the readiness transition.
func TestLoaderSinglePendingCallback(t *testing.T) {
	release := make(chan struct{})
	l := NewLoader(func(context.Context) (Backend, error) {
		<-release
		return &stubBackend{name: "stub"}, nil
	}, nil)
	l.Start(context.Background())

	first := make(chan constants.BackendStatus, 2)
	second := make(chan constants.BackendStatus, 2)
	l.NotifyStatus(func(s constants.BackendStatus) { first <- s })
	l.NotifyStatus(func(s constants.BackendStatus) { second <- s })

	close(release)
	waitForStatus(t, l, constants.BackendAvailable)

	select {
	case got := <-second:
		if got != constants.BackendAvailable {
			t.Errorf("callback status: got %s, want %s", got, constants.BackendAvailable)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pending callback never fired")
	}

	select {
	case got := <-first:
		t.Errorf("replaced callback fired with %s; only the latest registration should be notified", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLoaderCallbackAfterTerminalState(t *testing.T) {
	l := NewLoader(func(context.Context) (Backend, error) {
		return &stubBackend{name: "stub"}, nil
	}, nil)
	l.Start(context.Background())
	waitForStatus(t, l, constants.BackendAvailable)

	got := make(chan constants.BackendStatus, 1)
	l.NotifyStatus(func(s constants.BackendStatus) { got <- s })

	select {
	case s := <-got:
		if s != constants.BackendAvailable {
			t.Errorf("got %s, want %s", s, constants.BackendAvailable)
		}
	case <-time.After(time.Second):
		t.Fatal("callback registered after readiness should fire immediately")
	}
}
