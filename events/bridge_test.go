package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreazagoit/upcominghub-native/auth"
)

// memoryPublisher captures published payloads in order.
type memoryPublisher struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (p *memoryPublisher) Publish(_ context.Context, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return assert.AnError
	}
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *memoryPublisher) Close() error { return nil }

func (p *memoryPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

// identityStub serves just enough of the identity API to walk a session through
// sign-in, refresh and sign-out.
func identityStub(t *testing.T) *httptest.Server {
	t.Helper()
	envelope := func(w http.ResponseWriter, access, refresh string) {
		w.Header().Set("Content-Type", "application/json")
		body, _ := json.Marshal(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"accessToken":  access,
				"refreshToken": refresh,
				"user":         map[string]interface{}{"id": "u1", "email": "demo@upcominghub.com"},
			},
		})
		w.Write(body)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/credentials/login", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, "AT1", "RT1")
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, "AT2", "RT2")
	})
	mux.HandleFunc("/api/auth/credentials/logout", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestBridgePublishesLifecycleEvents(t *testing.T) {
	ctx := context.Background()
	srv := identityStub(t)

	m, err := auth.NewManager(auth.Config{BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	pub := &memoryPublisher{}
	bridge := NewBridge(m.State(), pub)
	defer bridge.Close()

	_, err = m.SignIn(ctx, "demo@upcominghub.com", "demo-password")
	require.NoError(t, err)
	_, err = m.Refresh(ctx)
	require.NoError(t, err)
	m.SignOut(ctx)

	assert.Equal(t, []string{TypeSignedIn, TypeTokenRefreshed, TypeSignedOut}, pub.types())

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Equal(t, "u1", pub.events[0].UserID)
	assert.Equal(t, "u1", pub.events[1].UserID)
	assert.Equal(t, "u1", pub.events[2].UserID, "sign-out names the user that just left")
	for _, ev := range pub.events {
		assert.NotZero(t, ev.At)
	}
}

func TestBridgeCloseDetaches(t *testing.T) {
	ctx := context.Background()
	srv := identityStub(t)

	m, err := auth.NewManager(auth.Config{BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	pub := &memoryPublisher{}
	bridge := NewBridge(m.State(), pub)
	bridge.Close()

	_, err = m.SignIn(ctx, "demo@upcominghub.com", "demo-password")
	require.NoError(t, err)
	assert.Empty(t, pub.types(), "a closed bridge sees no transitions")
}

func TestBridgeSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	srv := identityStub(t)

	m, err := auth.NewManager(auth.Config{BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	pub := &memoryPublisher{fail: true}
	bridge := NewBridge(m.State(), pub)
	defer bridge.Close()

	// A broken broker must not surface into the session flow.
	_, err = m.SignIn(ctx, "demo@upcominghub.com", "demo-password")
	require.NoError(t, err)
	m.SignOut(ctx)
}
