package api

import (
	"net/http"

	"github.com/mcom-mall/mallcli/internal/client/session"
	"github.com/mcom-mall/mallcli/internal/logging"
)

// authTransport is the gateway's interceptor pair, implemented as an
// http.RoundTripper wrapping the base transport.
//
// Outgoing: when the session store holds a token, the request goes out with
// an Authorization bearer header; otherwise it goes out unauthenticated.
//
// Incoming: a 401 response clears the session store and notifies the
// injected onAuthExpired handler. The response is passed through unchanged,
// so callers still see the original failure.
type authTransport struct {
	base          http.RoundTripper
	sessions      session.Store
	onAuthExpired func()
	log           logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if token, _, err := t.sessions.Load(ctx); err != nil {
		t.log.Warn(ctx, "session load failed, sending unauthenticated", "error", err)
	} else if token != "" {
		// Per http.RoundTripper contract the request must not be mutated.
		req = req.Clone(ctx)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if err := t.sessions.Clear(ctx); err != nil {
			t.log.Error(ctx, "clear session after 401", "error", err)
		}
		if t.onAuthExpired != nil {
			t.onAuthExpired()
		}
	}

	return resp, nil
}
