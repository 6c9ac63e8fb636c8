package helpers

import (
	"github.com/labstack/echo/v4"
)

type ctxKey string

const (
	keyRequestID ctxKey = "request_id"
	keyClientKey ctxKey = "client_key"
)

func SetRequestID(c echo.Context, id string) { c.Set(string(keyRequestID), id) }
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(string(keyRequestID)).(string)
	return id
}

// SetClientKey overrides the identity used for rate limiting.
func SetClientKey(c echo.Context, key string) { c.Set(string(keyClientKey), key) }

// GetClientKey returns the rate limiting identity, the client IP unless overridden.
func GetClientKey(c echo.Context) string {
	if key, ok := c.Get(string(keyClientKey)).(string); ok && key != "" {
		return key
	}
	return c.RealIP()
}
