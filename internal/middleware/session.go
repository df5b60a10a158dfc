package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/suvrat007/tutora-sub001/pkg/logger"
	"github.com/suvrat007/tutora-sub001/pkg/upstream"
)

// DefaultSession names the console when a request sends no usable header.
const DefaultSession = "default"

// anonymous stands in for the credential of callers without cookies.
const anonymous = "anon"

var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

// Session resolves the console session id and forwards the caller's cookies
// to the institute API through the request context.
//
// The id is "<name>.<credential>". The name comes from the header when it is
// well formed, else DefaultSession. The credential is a digest of the auth
// cookie (or of the whole Cookie header when no auth cookie is configured),
// so two callers only share a console when they share a login.
func Session(header, authCookie string) gin.HandlerFunc {
	if header == "" {
		header = "X-Console-Session"
	}
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.GetHeader(header))
		if !sessionPattern.MatchString(name) {
			name = DefaultSession
		}
		session := name + "." + credential(c, authCookie)
		c.Set(logger.SessionKey, session)

		if cookie := c.GetHeader("Cookie"); cookie != "" {
			c.Request = c.Request.WithContext(upstream.WithCookie(c.Request.Context(), cookie))
		}
		c.Next()
	}
}

func credential(c *gin.Context, authCookie string) string {
	secret := ""
	if authCookie != "" {
		if token, err := c.Cookie(authCookie); err == nil {
			secret = token
		}
	} else {
		secret = c.GetHeader("Cookie")
	}
	if secret == "" {
		return anonymous
	}
	sum := sha256.Sum256([]byte(secret))
	return "c" + hex.EncodeToString(sum[:8])
}

// SessionID returns the id stored by Session.
func SessionID(c *gin.Context) string {
	if session := c.GetString(logger.SessionKey); session != "" {
		return session
	}
	return DefaultSession + "." + anonymous
}
