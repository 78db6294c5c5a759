package api

import (
	"net/http"

	"github.com/avelichko/petbook/internal/common"
	"github.com/google/uuid"
)

// bearerTransport attaches the current access token and a fresh request id
// to every outbound request. The token is read per request, so a refresh
// that lands between two calls is picked up without rebuilding the client.
type bearerTransport struct {
	base  http.RoundTripper
	token TokenSource
}

func newBearerTransport(base http.RoundTripper, token TokenSource) *bearerTransport {
	return &bearerTransport{base: base, token: token}
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if tok := t.token(); tok != "" {
		clone.Header.Set("Authorization", "Bearer "+tok)
	}
	clone.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	return t.base.RoundTrip(clone)
}
