package app

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dujiao-next/storefront/internal/config"

	"go.uber.org/zap"
)

type blockingService struct {
	name    string
	started chan struct{}
	stopped atomic.Int32
}

func (s *blockingService) Name() string { return s.name }

func (s *blockingService) Start(ctx context.Context) error {
	close(s.started)
	<-ctx.Done()
	return nil
}

func (s *blockingService) Stop(context.Context) error {
	s.stopped.Add(1)
	return nil
}

type failingService struct{}

func (failingService) Name() string                { return "failing" }
func (failingService) Start(context.Context) error { return errors.New("boom") }
func (failingService) Stop(context.Context) error  { return nil }

func TestRunnerStopsAllServicesOnCancel(t *testing.T) {
	svc := &blockingService{name: "blocking", started: make(chan struct{})}
	cleaned := 0
	runner := NewRunner(svc).WithCleanup(func() error {
		cleaned++
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx, time.Second, zap.NewNop().Sugar()) }()

	<-svc.started
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancel should end runner without error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop")
	}
	if svc.stopped.Load() != 1 {
		t.Fatalf("service should be stopped once, got %d", svc.stopped.Load())
	}
	if cleaned != 1 {
		t.Fatalf("cleanup should run once, got %d", cleaned)
	}
}

func TestRunnerReturnsFirstServiceError(t *testing.T) {
	svc := &blockingService{name: "blocking", started: make(chan struct{})}
	runner := NewRunner(svc, failingService{})
	err := runner.Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
	if svc.stopped.Load() != 1 {
		t.Fatalf("other services should be stopped")
	}
}

type countingLoader struct {
	calls atomic.Int32
	err   error
}

func (l *countingLoader) LoadCatalog(context.Context) error {
	l.calls.Add(1)
	return l.err
}

func TestCatalogRefreshServiceReloadsOnInterval(t *testing.T) {
	loader := &countingLoader{err: errors.New("upstream down")}
	svc := NewCatalogRefreshService(loader, 10*time.Millisecond, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for loader.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("refresh service should exit cleanly, got %v", err)
	}
	if loader.calls.Load() < 2 {
		t.Fatalf("loader should be called repeatedly even after failures, got %d", loader.calls.Load())
	}
}

func TestHTTPServiceUsesStorefrontConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Catalog.Route = "/data/catalog.json"
	cfg.Shell.Dir = t.TempDir()

	svc := NewHTTPService(cfg, http.NotFoundHandler(), zap.NewNop().Sugar())
	if svc.Name() != "storefront_http" {
		t.Fatalf("unexpected service name %q", svc.Name())
	}
	if svc.Addr() != "127.0.0.1:0" {
		t.Fatalf("addr want 127.0.0.1:0 got %q", svc.Addr())
	}
	if svc.catalogRoute != "/data/catalog.json" || svc.shellDir != cfg.Shell.Dir {
		t.Fatalf("service should carry catalog route and shell dir, got %q %q", svc.catalogRoute, svc.shellDir)
	}

	done := make(chan error, 1)
	go func() { done <- svc.Start(context.Background()) }()
	time.Sleep(20 * time.Millisecond)
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start should return nil after stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("http service did not stop")
	}
}
