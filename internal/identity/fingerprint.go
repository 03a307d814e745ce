package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
)

var (
	ErrNoFingerprint = errors.New("fingerprint request id missing")
	ErrIPLookup      = errors.New("ip lookup failed")
	ErrFingerprint   = errors.New("device fingerprint failed")
)

// Resolution is the outcome of resolving the enhanced fingerprint. A
// failed resolution blocks rating submission.
type Resolution struct {
	Value string
	Err   error
}

func (r Resolution) Resolved() bool {
	return r.Err == nil && r.Value != ""
}

// IPLookup returns the public address of the visitor.
type IPLookup interface {
	PublicIP(ctx context.Context, clientAddr string) (string, error)
}

// DeviceFingerprinter exchanges the request id produced by the browser
// agent for the provider's stable visitor id.
type DeviceFingerprinter interface {
	VisitorID(ctx context.Context, requestID string) (string, error)
}

// EnhancedResolver builds the "<ip>-<fingerprintId>" composite. Nothing is
// persisted; each call asks both providers again.
type EnhancedResolver struct {
	ip IPLookup
	fp DeviceFingerprinter
}

func NewEnhancedResolver(ip IPLookup, fp DeviceFingerprinter) *EnhancedResolver {
	return &EnhancedResolver{ip: ip, fp: fp}
}

func (e *EnhancedResolver) Resolve(ctx context.Context, clientAddr, requestID string) Resolution {
	if strings.TrimSpace(requestID) == "" {
		return Resolution{Err: ErrNoFingerprint}
	}

	ip, err := e.ip.PublicIP(ctx, clientAddr)
	if err != nil {
		return Resolution{Err: fmt.Errorf("%w: %v", ErrIPLookup, err)}
	}

	visitorID, err := e.fp.VisitorID(ctx, requestID)
	if err != nil {
		return Resolution{Err: fmt.Errorf("%w: %v", ErrFingerprint, err)}
	}

	return Resolution{Value: ip + "-" + visitorID}
}

// HTTPIPLookup queries an ipinfo style service: GET {base}/{addr}/json,
// or GET {base}/json when the address is unknown.
type HTTPIPLookup struct {
	baseURL string
	client  *http.Client
}

func NewHTTPIPLookup(baseURL string, client *http.Client) *HTTPIPLookup {
	return &HTTPIPLookup{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (l *HTTPIPLookup) PublicIP(ctx context.Context, clientAddr string) (string, error) {
	endpoint := l.baseURL + "/json"
	if clientAddr != "" {
		endpoint = l.baseURL + "/" + url.PathEscape(clientAddr) + "/json"
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := getJSON(ctx, l.client, endpoint, nil, &body); err != nil {
		return "", err
	}

	ip := net.ParseIP(body.IP)
	if ip == nil {
		return "", fmt.Errorf("invalid ip %q", body.IP)
	}
	return ip.String(), nil
}

// HTTPFingerprinter verifies identification events with the provider's
// server API: GET {base}/events/{requestId}.
type HTTPFingerprinter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPFingerprinter(baseURL, apiKey string, client *http.Client) *HTTPFingerprinter {
	return &HTTPFingerprinter{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, client: client}
}

func (f *HTTPFingerprinter) VisitorID(ctx context.Context, requestID string) (string, error) {
	var body struct {
		Products struct {
			Identification struct {
				Data struct {
					VisitorID string `json:"visitorId"`
				} `json:"data"`
			} `json:"identification"`
		} `json:"products"`
	}

	header := http.Header{}
	header.Set("Auth-API-Key", f.apiKey)
	endpoint := f.baseURL + "/events/" + url.PathEscape(requestID)
	if err := getJSON(ctx, f.client, endpoint, header, &body); err != nil {
		return "", err
	}

	id := body.Products.Identification.Data.VisitorID
	if id == "" {
		return "", errors.New("provider returned no visitor id")
	}
	return id, nil
}

func getJSON(ctx context.Context, client *http.Client, endpoint string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
