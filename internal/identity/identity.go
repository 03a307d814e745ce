// Package identity resolves the anonymous visitor identity that the rating
// API uses as its de-duplication key for ratings and likes.
package identity

import (
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultTokenLength is the length of generated visitor tokens.
	DefaultTokenLength = 16
	// MinTokenLength is the shortest token the resolver will hand out.
	MinTokenLength = 10

	ratedPrefix = "rated-"
	ratedValue  = "true"
)

// Store is the durable client storage holding the visitor token and the
// per-professor rated markers.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Generator produces new visitor tokens.
type Generator func() string

// Resolver hands out the durable visitor token.
type Resolver struct {
	key      string
	generate Generator
}

type Option func(*Resolver)

// WithGenerator replaces the token generator.
func WithGenerator(g Generator) Option {
	return func(r *Resolver) { r.generate = g }
}

// WithTokenLength sets the length of generated tokens. Values below
// MinTokenLength are raised to it.
func WithTokenLength(n int) Option {
	return func(r *Resolver) { r.generate = RandomToken(n) }
}

// NewResolver returns a resolver storing the token under key.
func NewResolver(key string, opts ...Option) *Resolver {
	r := &Resolver{
		key:      key,
		generate: RandomToken(DefaultTokenLength),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key is the storage key holding the visitor token.
func (r *Resolver) Key() string {
	return r.key
}

// Get returns the stored token without creating one. Malformed values are
// treated as absent.
func (r *Resolver) Get(store Store) (string, bool) {
	id, ok := store.Get(r.key)
	if !ok || !Valid(id) {
		return "", false
	}
	return id, true
}

// GetOrCreateLocalID returns the stored token, or generates, stores and
// returns a new one. The store is written at most once per visitor.
func (r *Resolver) GetOrCreateLocalID(store Store) (id string, created bool) {
	if id, ok := r.Get(store); ok {
		return id, false
	}
	id = r.generate()
	store.Set(r.key, id)
	return id, true
}

// MarkRated records that the visitor rated professorID.
func MarkRated(store Store, professorID string) {
	store.Set(RatedKey(professorID), ratedValue)
}

// HasRated reports whether the visitor already rated professorID from this
// browser. The API remains the authority on duplicates.
func HasRated(store Store, professorID string) bool {
	v, ok := store.Get(RatedKey(professorID))
	return ok && v == ratedValue
}

// RatedKey returns the cookie name of the rated marker. IDs made of
// letters, digits, '-', '_' and '.' are used as is; anything else is
// base64url encoded behind a '~' so the name stays a valid cookie token.
func RatedKey(professorID string) string {
	if plainID(professorID) {
		return ratedPrefix + professorID
	}
	return ratedPrefix + "~" + base64.RawURLEncoding.EncodeToString([]byte(professorID))
}

func plainID(id string) bool {
	if id == "" {
		return false
	}
	for _, c := range id {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' || c == '.') {
			return false
		}
	}
	return true
}

// RandomToken returns a generator of n-character lowercase alphanumeric
// tokens built from random UUIDs.
func RandomToken(n int) Generator {
	if n < MinTokenLength {
		n = MinTokenLength
	}
	return func() string {
		var b strings.Builder
		for b.Len() < n {
			b.WriteString(strings.ReplaceAll(uuid.NewString(), "-", ""))
		}
		return b.String()[:n]
	}
}

// Valid reports whether id looks like a token this package generates.
func Valid(id string) bool {
	if len(id) < MinTokenLength || len(id) > 64 {
		return false
	}
	for _, c := range id {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
