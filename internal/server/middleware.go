package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/artyatra/artyatra/internal/session"
)

const authCookieName = "auth"

// signToken issues the access token for a session. The expiry is pinned to the
// session start plus the max lifetime, so a token can never outlive the
// session it belongs to.
func signToken(secret string, sess session.Session, maxTTL time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": sess.UserID,
		"sid": sess.ID,
		"iat": sess.StartedAt.Unix(),
		"exp": sess.StartedAt.Add(maxTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseToken(secret, raw string) (userID, sessionID string, err error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	sid, _ := claims["sid"].(string)
	if sub == "" || sid == "" {
		return "", "", errors.New("token missing subject or session")
	}
	return sub, sid, nil
}

func tokenFromRequest(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		if strings.HasPrefix(strings.ToLower(h), "bearer ") {
			return strings.TrimSpace(h[len("bearer "):])
		}
		return h
	}
	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// sessionGuard validates the JWT and enforces the server-side idle timeout.
// A request that arrives more than idleTimeout after the session's last
// activity revokes the session and gets a 401 even if the token is still
// within its signed expiry.
type sessionGuard struct {
	secret      string
	sessions    session.Store
	idleTimeout time.Duration
	now         func() time.Time
}

func newSessionGuard(secret string, sessions session.Store, idleTimeout time.Duration) *sessionGuard {
	return &sessionGuard{secret: secret, sessions: sessions, idleTimeout: idleTimeout, now: time.Now}
}

func (g *sessionGuard) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := tokenFromRequest(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}
		userID, sessionID, err := parseToken(g.secret, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		ctx := c.Request().Context()
		sess, err := g.sessions.Get(ctx, sessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "session revoked")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "session lookup failed")
		}
		now := g.now()
		if now.Sub(sess.LastActivity) > g.idleTimeout {
			_ = g.sessions.Revoke(ctx, sessionID)
			return echo.NewHTTPError(http.StatusUnauthorized, "session expired due to inactivity")
		}
		if err := g.sessions.Touch(ctx, sessionID, now); err != nil && !errors.Is(err, session.ErrNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "session update failed")
		}
		c.Set("user_id", userID)
		c.Set("session_id", sessionID)
		return next(c)
	}
}
