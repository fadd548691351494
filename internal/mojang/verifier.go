package mojang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// hasJoinedURL is Mojang's session-server endpoint confirming a client
// contacted a server under the given serverId.
const hasJoinedURL = "https://sessionserver.mojang.com/session/minecraft/hasJoined"

// ErrSessionVerifyHTTP wraps a non-2xx response from the session server.
type ErrSessionVerifyHTTP struct {
	StatusCode int
	Body       string
}

func (e *ErrSessionVerifyHTTP) Error() string {
	return fmt.Sprintf("mojang: hasJoined returned %d: %s", e.StatusCode, e.Body)
}

// SessionVerifier confirms that username contacted the session server under
// serverHash, returning the authoritative GameProfile on success. Tests
// inject a mock implementation instead of hitting Mojang's real servers.
type SessionVerifier interface {
	Verify(ctx context.Context, username, serverHash string) (*GameProfile, error)
}

// HTTPVerifier is the default SessionVerifier, backed by a real call to
// Mojang's session server.
type HTTPVerifier struct {
	Client *http.Client
}

// NewHTTPVerifier returns a verifier using a client with a bounded request
// timeout; a single hasJoined round trip should never hang a worker
// indefinitely.
func NewHTTPVerifier() *HTTPVerifier {
	return &HTTPVerifier{Client: &http.Client{Timeout: 10 * time.Second}}
}

func (v *HTTPVerifier) Verify(ctx context.Context, username, serverHash string) (*GameProfile, error) {
	u := fmt.Sprintf("%s?username=%s&serverId=%s", hasJoinedURL, url.QueryEscape(username), url.QueryEscape(serverHash))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("mojang: building hasJoined request: %w", err)
	}

	res, err := v.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mojang: hasJoined request: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &ErrSessionVerifyHTTP{StatusCode: res.StatusCode, Body: string(body)}
	}

	var profile GameProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("mojang: decoding hasJoined response: %w", err)
	}

	return &profile, nil
}
