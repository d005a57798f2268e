package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/kv"
)

const (
	ClientIDHeader = "X-Client-ID"
	clientIDKey    = "client_id"
	maxClientIDLen = 64
)

// ClientID resolves the caller's device id from the X-Client-ID header so
// each device gets its own saved state. Callers without one share the
// anonymous namespace.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(ClientIDHeader))
		if id == "" || len(id) > maxClientIDLen || strings.ContainsAny(id, ": \t") {
			id = kv.DefaultClientID
		}
		c.Set(clientIDKey, id)
		c.Next()
	}
}

// GetClientID returns the id set by ClientID, or the anonymous id.
func GetClientID(c *gin.Context) string {
	if v, ok := c.Get(clientIDKey); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	return kv.DefaultClientID
}
