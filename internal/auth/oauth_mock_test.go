package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"golang.org/x/oauth2"
)

// MockOAuth2Server fakes Google's token and userinfo endpoints so the OAuth
// login flow can run without network access.
type MockOAuth2Server struct {
	Server           *httptest.Server
	Config           *oauth2.Config
	MockInfoEndpoint string

	mu        sync.Mutex
	users     map[string]googleUserInfo // keyed by Google id
	codes     map[string]string         // auth code -> Google id
	exchanged map[string]bool
}

// NewMockOAuth2Server builds a server pre-loaded with the given users.
func NewMockOAuth2Server(users []googleUserInfo) *MockOAuth2Server {
	m := &MockOAuth2Server{
		users:     make(map[string]googleUserInfo),
		codes:     make(map[string]string),
		exchanged: make(map[string]bool),
	}
	for _, u := range users {
		m.users[u.GID] = u
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", m.handleToken)
	mux.HandleFunc("/userinfo", m.handleUserInfo)
	m.Server = httptest.NewServer(mux)

	m.Config = &oauth2.Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  m.Server.URL + "/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  m.Server.URL + "/auth",
			TokenURL: m.Server.URL + "/token",
		},
	}
	m.MockInfoEndpoint = m.Server.URL + "/userinfo"

	return m
}

// GetAuthCode issues an authorization code for a registered user.
func (m *MockOAuth2Server) GetAuthCode(gid string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[gid]; !ok {
		return "", fmt.Errorf("unknown user: %s", gid)
	}
	code := "code_" + gid
	m.codes[code] = gid
	return code, nil
}

// IsUserTokenExchanged reports whether the user's auth code was traded for a token.
func (m *MockOAuth2Server) IsUserTokenExchanged(gid string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exchanged[gid]
}

// Close shuts the underlying test server down.
func (m *MockOAuth2Server) Close() {
	m.Server.Close()
}

func (m *MockOAuth2Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	gid, ok := m.codes[r.FormValue("code")]
	if ok {
		m.exchanged[gid] = true
	}
	m.mu.Unlock()

	if !ok {
		http.Error(w, "invalid_grant", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": "tok_" + gid,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func (m *MockOAuth2Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	gid := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer tok_")

	m.mu.Lock()
	user, ok := m.users[gid]
	m.mu.Unlock()

	if !ok {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
