package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIP struct {
	ip    string
	err   error
	calls int
}

func (s *stubIP) PublicIP(context.Context, string) (string, error) {
	s.calls++
	return s.ip, s.err
}

type stubFP struct {
	id  string
	err error
}

func (s *stubFP) VisitorID(context.Context, string) (string, error) {
	return s.id, s.err
}

func TestEnhancedResolverComposite(t *testing.T) {
	e := NewEnhancedResolver(&stubIP{ip: "203.0.113.7"}, &stubFP{id: "fp123"})
	res := e.Resolve(context.Background(), "203.0.113.7", "req-1")
	require.True(t, res.Resolved())
	assert.Equal(t, "203.0.113.7-fp123", res.Value)
}

func TestEnhancedResolverFailsClosed(t *testing.T) {
	tests := []struct {
		name      string
		ip        *stubIP
		fp        *stubFP
		requestID string
		want      error
	}{
		{"missing request id", &stubIP{ip: "1.2.3.4"}, &stubFP{id: "x"}, "", ErrNoFingerprint},
		{"ip lookup down", &stubIP{err: errors.New("dial tcp: refused")}, &stubFP{id: "x"}, "r", ErrIPLookup},
		{"fingerprint down", &stubIP{ip: "1.2.3.4"}, &stubFP{err: errors.New("blocked")}, "r", ErrFingerprint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewEnhancedResolver(tt.ip, tt.fp).Resolve(context.Background(), "1.2.3.4", tt.requestID)
			assert.False(t, res.Resolved())
			assert.ErrorIs(t, res.Err, tt.want)
			assert.Empty(t, res.Value)
		})
	}
}

func TestHTTPIPLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/198.51.100.2/json":
			w.Write([]byte(`{"ip":"198.51.100.2","city":"Culiacán"}`))
		case "/json":
			w.Write([]byte(`{"ip":"not-an-ip"}`))
		default:
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}))
	defer srv.Close()

	l := NewHTTPIPLookup(srv.URL+"/", srv.Client())

	ip, err := l.PublicIP(context.Background(), "198.51.100.2")
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.2", ip)

	_, err = l.PublicIP(context.Background(), "")
	assert.Error(t, err)

	_, err = l.PublicIP(context.Background(), "10.0.0.1")
	assert.Error(t, err)
}

func TestHTTPFingerprinter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Auth-API-Key") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if r.URL.Path != "/events/req-42" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"products":{"identification":{"data":{"visitorId":"Xyz789"}}}}`))
	}))
	defer srv.Close()

	f := NewHTTPFingerprinter(srv.URL, "secret", srv.Client())
	id, err := f.VisitorID(context.Background(), "req-42")
	require.NoError(t, err)
	assert.Equal(t, "Xyz789", id)

	_, err = f.VisitorID(context.Background(), "unknown")
	assert.Error(t, err)

	_, err = NewHTTPFingerprinter(srv.URL, "wrong", srv.Client()).VisitorID(context.Background(), "req-42")
	assert.Error(t, err)
}

func TestEnhancedResolverStopsAfterIPFailure(t *testing.T) {
	ip := &stubIP{err: errors.New("timeout")}
	fp := &stubFP{id: "never"}
	res := NewEnhancedResolver(ip, fp).Resolve(context.Background(), "", "req")
	assert.False(t, res.Resolved())
	assert.Equal(t, 1, ip.calls)
}
