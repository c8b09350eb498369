package bootstrap_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"go-hris-audit/internal/bootstrap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAuditLogger struct {
	mu      sync.Mutex
	entries []bootstrap.AuditLog
}

func (r *recordingAuditLogger) Log(_ context.Context, entry bootstrap.AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingAuditLogger) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

func TestServeHTTP_ShutsDownOnCancel(t *testing.T) {
	audit := &recordingAuditLogger{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- bootstrap.ServeHTTP(ctx, http.NotFoundHandler(), bootstrap.ServerConfig{
			Name: "test",
			Port: "0",
		}, audit)
	}()

	require.Eventually(t, func() bool {
		return len(audit.actions()) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.Equal(t, []string{bootstrap.ActionServerStart, bootstrap.ActionServerShutdown}, audit.actions())
}

func TestServeHTTP_ListenError(t *testing.T) {
	err := bootstrap.ServeHTTP(context.Background(), http.NotFoundHandler(), bootstrap.ServerConfig{
		Port: "not-a-port",
	}, &recordingAuditLogger{})

	assert.Error(t, err)
}
