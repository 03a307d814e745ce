package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/profescore/web/internal/identity"
	"github.com/profescore/web/internal/ledger"
)

const (
	visitorIDKey = "visitor_id"
	storeKey     = "identity_store"
)

// Visitor resolves the durable visitor token for every request, issuing one
// on the first visit.
func Visitor(resolver *identity.Resolver, opts identity.CookieOptions, l ledger.Ledger, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := identity.NewCookieStore(c.Writer, c.Request, opts)
		id, created := resolver.GetOrCreateLocalID(store)
		if created {
			if err := l.RecordVisitor(c.Request.Context(), id); err != nil {
				log.Warn("Failed to record visitor", zap.String("visitor_id", id), zap.Error(err))
			}
		}

		c.Set(visitorIDKey, id)
		c.Set(storeKey, store)
		c.Next()
	}
}

// VisitorID returns the token set by Visitor.
func VisitorID(c *gin.Context) string {
	return c.GetString(visitorIDKey)
}

// IdentityStore returns the cookie store set by Visitor.
func IdentityStore(c *gin.Context) identity.Store {
	if v, ok := c.Get(storeKey); ok {
		if s, ok := v.(identity.Store); ok {
			return s
		}
	}
	return nil
}
