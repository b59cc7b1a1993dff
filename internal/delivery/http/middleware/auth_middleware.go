package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"talent-workflow-api/internal/delivery/http/response"
	"talent-workflow-api/internal/domain"
	"talent-workflow-api/pkg/auth"

	"github.com/gin-gonic/gin"
)

// Routes reachable without a session.
var publicPaths = map[string]bool{
	"/api/auth/login":  true,
	"/api/auth/signup": true,
	"/api/auth/logout": true,
	"/api/auth/me":     true,
	"/api/health":      true,
	"/login":           true,
	"/signup":          true,
}

var publicPrefixes = []string{
	"/api/swagger/",
}

// Pages a signed-in user is bounced away from.
var authPages = map[string]bool{
	"/login":  true,
	"/signup": true,
}

const signedInHome = "/jobs"

// AccessGuard admits requests by route and session. It never touches the
// store: a structurally valid, unexpired token is a session.
//
// Unauthenticated API calls get 401 JSON; unauthenticated page requests are
// redirected to /login with the original path in ?next=.
func AccessGuard(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		user := sessionFromRequest(c, sessions)
		if user != nil {
			attachUser(c, user)
		}

		if authPages[path] && user != nil {
			c.Redirect(http.StatusFound, signedInHome)
			c.Abort()
			return
		}

		if c.Request.Method == http.MethodOptions || isPublic(path) || user != nil {
			c.Next()
			return
		}

		if isAPI(path) {
			response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
			c.Abort()
			return
		}

		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// SessionUser returns the user the guard attached, if any.
func SessionUser(c *gin.Context) (*auth.SessionUser, bool) {
	id := c.GetString(string(domain.KeyUserID))
	if id == "" {
		return nil, false
	}
	return &auth.SessionUser{
		ID:    id,
		Email: c.GetString(string(domain.KeyUserEmail)),
		Name:  c.GetString(string(domain.KeyUserName)),
	}, true
}

// sessionFromRequest prefers a Bearer header over the cookie.
func sessionFromRequest(c *gin.Context, sessions *auth.SessionManager) *auth.SessionUser {
	var token string
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	} else if cookie, err := c.Cookie(SessionCookieName); err == nil {
		token = cookie
	}
	if token == "" {
		return nil
	}

	user, err := sessions.Verify(token)
	if err != nil {
		return nil
	}
	return user
}

func attachUser(c *gin.Context, user *auth.SessionUser) {
	c.Set(string(domain.KeyUserID), user.ID)
	c.Set(string(domain.KeyUserEmail), user.Email)
	c.Set(string(domain.KeyUserName), user.Name)

	ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, user.ID)
	c.Request = c.Request.WithContext(ctx)
}

func isPublic(path string) bool {
	if publicPaths[path] {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func isAPI(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
