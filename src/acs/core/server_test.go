package core

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func newTestServer(t *testing.T, perMin int, proxies []string) *Server {
	t.Helper()
	viper.Set("server.rate_limit.enabled", true)
	viper.Set("server.rate_limit.auth_per_min", perMin)
	viper.Set("server.trusted_proxies", proxies)
	t.Cleanup(func() {
		viper.Set("server.rate_limit.auth_per_min", 10)
		viper.Set("server.trusted_proxies", []string{})
	})

	s := NewServer(testApp(t))
	t.Cleanup(s.api.Close)
	return s
}

// loginFrom posts a failing login as if it arrived from remote
func loginFrom(s *Server, remote, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"username":"nobody","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remote
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w.Code
}

func TestServer_ForwardedForIgnoredFromUntrustedPeer(t *testing.T) {
	s := newTestServer(t, 3, []string{})

	limited := 0
	for i := 0; i < 20; i++ {
		if loginFrom(s, "10.0.0.1:40000", fmt.Sprintf("203.0.113.%d", i+1)) == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited != 17 {
		t.Fatalf("got %d throttled requests out of 20, want 17", limited)
	}
}

func TestServer_TrustedProxyForwardsClientIP(t *testing.T) {
	s := newTestServer(t, 3, []string{"10.0.0.1"})

	// Distinct clients behind the proxy each get their own budget.
	for i := 0; i < 5; i++ {
		if code := loginFrom(s, "10.0.0.1:40000", fmt.Sprintf("203.0.113.%d", i+1)); code != http.StatusUnauthorized {
			t.Fatalf("client %d status = %d, want 401", i+1, code)
		}
	}

	var code int
	for i := 0; i < 4; i++ {
		code = loginFrom(s, "10.0.0.1:40000", "203.0.113.99")
	}
	if code != http.StatusTooManyRequests {
		t.Fatalf("fourth request from one client status = %d, want 429", code)
	}
}
