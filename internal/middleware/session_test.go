package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/suvrat007/tutora-sub001/pkg/upstream"
)

func sessionRouter(t *testing.T) (*gin.Engine, *string, *string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var session, cookie string
	r := gin.New()
	r.Use(Session("X-Console-Session", "token"))
	r.GET("/", func(c *gin.Context) {
		session = SessionID(c)
		cookie = upstream.CookieFrom(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r, &session, &cookie
}

func serveSession(r *gin.Engine, header string, cookies ...*http.Cookie) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("X-Console-Session", header)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
}

func TestSessionFromHeaderAndForwardsCookie(t *testing.T) {
	r, session, cookie := sessionRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Console-Session", "desk-1")
	req.Header.Set("Cookie", "token=abc; theme=dark")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Regexp(t, `^desk-1\.c[0-9a-f]{16}$`, *session)
	assert.Equal(t, "token=abc; theme=dark", *cookie)
}

func TestSessionIsBoundToAuthCookie(t *testing.T) {
	r, session, _ := sessionRouter(t)

	serveSession(r, "desk-1", &http.Cookie{Name: "token", Value: "admin-a"})
	first := *session
	serveSession(r, "desk-1", &http.Cookie{Name: "token", Value: "admin-a"})
	assert.Equal(t, first, *session)

	serveSession(r, "desk-1", &http.Cookie{Name: "token", Value: "admin-b"})
	assert.NotEqual(t, first, *session)

	serveSession(r, "desk-1")
	assert.Equal(t, "desk-1.anon", *session)
	assert.NotEqual(t, first, *session)
}

func TestSessionIgnoresUnrelatedCookies(t *testing.T) {
	r, session, _ := sessionRouter(t)

	serveSession(r, "desk-1", &http.Cookie{Name: "theme", Value: "dark"})
	assert.Equal(t, "desk-1.anon", *session)
}

func TestSessionMalformedHeaderUsesDefaultName(t *testing.T) {
	r, session, _ := sessionRouter(t)

	serveSession(r, "bad session id!", &http.Cookie{Name: "token", Value: "abc"})
	first := *session
	serveSession(r, "", &http.Cookie{Name: "token", Value: "abc"})

	assert.Equal(t, first, *session)
	assert.Regexp(t, `^default\.c[0-9a-f]{16}$`, first)
}

func TestSessionWithoutAuthCookieNameDigestsCookieHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var session string
	r := gin.New()
	r.Use(Session("", ""))
	r.GET("/", func(c *gin.Context) {
		session = SessionID(c)
		c.Status(http.StatusNoContent)
	})

	serveSession(r, "desk-1", &http.Cookie{Name: "sid", Value: "one"})
	first := session
	serveSession(r, "desk-1", &http.Cookie{Name: "sid", Value: "two"})

	assert.Regexp(t, `^desk-1\.c[0-9a-f]{16}$`, first)
	assert.NotEqual(t, first, session)
}

func TestSessionDefault(t *testing.T) {
	r, session, cookie := sessionRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, DefaultSession+".anon", *session)
	assert.Empty(t, *cookie)
}
