package web

import (
	"fmt"
	"net/http"
	"time"

	apperrors "codeberg.org/codeexplainer/server/internal/errors"
	"codeberg.org/codeexplainer/server/internal/logger"
	appsessions "codeberg.org/codeexplainer/server/internal/sessions"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const (
	cookieName = "codeexplainer"
	cookieKey  = "sid"

	// gin context keys
	sessionKey   = "session"
	sessionIDKey = "session_id"
)

// NewCookieStore returns the store that carries the page session id.
func NewCookieStore(secret []byte, secure bool, maxAge time.Duration) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return store
}

// attaches the caller's page session, creating one (and its cookie) when needed
func SessionMiddleware(store sessions.Store, manager *appsessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// a cookie that fails to decode comes back as a new, empty session
		cookie, err := store.Get(c.Request, cookieName)
		if err != nil {
			logger.Debug("discarding unreadable session cookie", "error", err)
		}

		id, _ := cookie.Values[cookieKey].(string)
		if !apperrors.IsValidUUID(id) {
			id = ""
		}

		session, created := manager.GetOrCreate(id)
		if created {
			cookie.Values[cookieKey] = session.ID

			if err := cookie.Save(c.Request, c.Writer); err != nil {
				apperrors.InternalError(c, "failed to save session cookie", err)
				c.Abort()
				return
			}

			logger.Debug("page session created", "session_id", session.ID)
		}

		c.Set(sessionKey, session)
		c.Set(sessionIDKey, session.ID)
		c.Next()
	}
}

// returns the session attached by SessionMiddleware
func sessionFrom(c *gin.Context) (*appsessions.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}

	session, ok := v.(*appsessions.Session)
	return session, ok
}

// limits how often a client may trigger actions
func ActionRateLimit(formatted string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid action rate limit %q: %w", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn("action rate limit reached",
				"ip", c.ClientIP(),
				"path", c.Request.URL.Path,
			)
			apperrors.TooManyRequests(c, "too many actions, slow down")
		}),
	), nil
}

// allows the configured origins to call the JSON API with cookies
func CORSMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
