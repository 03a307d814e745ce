package identity

import (
	"net/http"
	"time"
)

// cookieMaxAge keeps identity cookies for ten years; visitor tokens never
// expire on their own.
const cookieMaxAge = 10 * 365 * 24 * time.Hour

type CookieOptions struct {
	Domain string
	Secure bool
}

// CookieStore is a Store over the browser's cookie jar for one request.
// Values set during the request are visible to later Gets.
type CookieStore struct {
	r       *http.Request
	w       http.ResponseWriter
	opts    CookieOptions
	pending map[string]string
}

func NewCookieStore(w http.ResponseWriter, r *http.Request, opts CookieOptions) *CookieStore {
	return &CookieStore{r: r, w: w, opts: opts, pending: make(map[string]string)}
}

func (s *CookieStore) Get(key string) (string, bool) {
	if v, ok := s.pending[key]; ok {
		return v, true
	}
	c, err := s.r.Cookie(key)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

func (s *CookieStore) Set(key, value string) {
	s.pending[key] = value
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		Domain:   s.opts.Domain,
		MaxAge:   int(cookieMaxAge / time.Second),
		Secure:   s.opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
