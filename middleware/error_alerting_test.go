package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinbot/core"
)

type webhookRecorder struct {
	mu       sync.Mutex
	payloads []map[string]any
}

func (r *webhookRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

func (r *webhookRecorder) first() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payloads[0]
}

func setupAlertTest(t *testing.T) (*ErrorAlertMiddleware, *webhookRecorder) {
	recorder := &webhookRecorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
			recorder.mu.Lock()
			recorder.payloads = append(recorder.payloads, payload)
			recorder.mu.Unlock()
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(server.Close)

	m := NewErrorAlertMiddleware(SlackAlertConfig{
		WebhookURL:  server.URL,
		Environment: "dev",
		AppName:     "pinbot",
		LogsURL:     "https://logs.example.com",
	})
	return m, recorder
}

func TestWrapCommand_Success(t *testing.T) {
	m, recorder := setupAlertTest(t)

	called := false
	m.WrapCommand("pin", func() error {
		called = true
		return nil
	})()

	assert.True(t, called)
	assert.Never(t, func() bool { return recorder.count() > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestWrapCommand_CommandErrorIsNotAlerted(t *testing.T) {
	m, recorder := setupAlertTest(t)

	m.WrapCommand("pin", func() error {
		return core.NewCommandError(core.ErrGuildMismatch, nil)
	})()

	assert.Never(t, func() bool { return recorder.count() > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestWrapCommand_UnexpectedErrorIsAlerted(t *testing.T) {
	m, recorder := setupAlertTest(t)

	m.WrapCommand("pin", func() error {
		return errors.New("gateway exploded")
	})()

	require.Eventually(t, func() bool { return recorder.count() == 1 }, time.Second, 10*time.Millisecond)
	payload := recorder.first()
	assert.Equal(t, "Command: pin: gateway exploded", payload["text"])
	assert.NotEmpty(t, payload["blocks"])
}

func TestWrapCommand_DuplicateErrorsAreDeduplicated(t *testing.T) {
	m, recorder := setupAlertTest(t)

	for i := 0; i < 3; i++ {
		m.WrapCommand("unpin", func() error {
			return errors.New("same failure")
		})()
	}

	require.Eventually(t, func() bool { return recorder.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return recorder.count() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestWrapCommand_RecoversPanic(t *testing.T) {
	m, recorder := setupAlertTest(t)

	assert.NotPanics(t, func() {
		m.WrapCommand("pin", func() error {
			panic("nil map write")
		})()
	})

	require.Eventually(t, func() bool { return recorder.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Contains(t, recorder.first()["text"], "PANIC - nil map write")
}

func TestWrapCommand_AlertsDisabledWithoutWebhook(t *testing.T) {
	m := NewErrorAlertMiddleware(SlackAlertConfig{AppName: "pinbot"})

	assert.NotPanics(t, func() {
		m.WrapCommand("pin", func() error { return errors.New("boom") })()
		m.WrapCommand("pin", func() error { panic("boom") })()
	})
}

func TestHTTPMiddleware_RecoversPanic(t *testing.T) {
	m, _ := setupAlertTest(t)

	handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler bug")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	})
}
