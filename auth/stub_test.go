package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/andreazagoit/upcominghub-native/models"
	"github.com/andreazagoit/upcominghub-native/store"
)

// writeEnvelope writes the identity API's {success, data, message} envelope.
func writeEnvelope(w http.ResponseWriter, status int, success bool, data map[string]interface{}, message string) {
	body := map[string]interface{}{"success": success}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func tokenData(pair models.TokenPair, user *models.User) map[string]interface{} {
	data := map[string]interface{}{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}
	if user != nil {
		data["user"] = user
	}
	return data
}

// newStubServer builds an httptest identity server from per-path handlers.
func newStubServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, handler := range handlers {
		mux.HandleFunc(path, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestManager(t *testing.T, baseURL string, tokens store.TokenStore) *Manager {
	t.Helper()
	m, err := NewManager(Config{BaseURL: baseURL, Timeout: 2 * time.Second}, tokens)
	require.NoError(t, err)
	return m
}

func testUser() *models.User {
	return &models.User{
		ID:    "u1",
		Email: "a@b.com",
		Name:  "A",
		Role:  "user",
		Slug:  "a",
		Type:  "personal",
	}
}
