package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/artyatra/artyatra/internal/session"
	"github.com/artyatra/artyatra/internal/store"
	"github.com/artyatra/artyatra/internal/swecha"
	"github.com/artyatra/artyatra/models"
)

// AuthHandler owns local accounts plus the proxied Swecha login. Local auth
// issues a JWT whose session id is tracked server side; the Swecha endpoints
// never touch local sessions, they just relay upstream.
type AuthHandler struct {
	Store    store.Storage
	Sessions session.Store
	Swecha   *swecha.Client
	Secret   string
	MaxTTL   time.Duration
	Now      func() time.Time
	logger   *log.Logger
}

func NewAuthHandler(st store.Storage, sessions session.Store, sw *swecha.Client, secret string, maxTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		Store:    st,
		Sessions: sessions,
		Swecha:   sw,
		Secret:   secret,
		MaxTTL:   maxTTL,
		Now:      time.Now,
		logger:   log.New(log.Writer(), "[AUTH] ", log.LstdFlags),
	}
}

func (h *AuthHandler) Register(g *echo.Group) {
	g.POST("/signup", h.signup)
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)
	g.POST("/swecha/login", h.swechaLogin)
	g.GET("/swecha/me", h.swechaMe)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to hash password")
	}
	user, err := h.Store.CreateUser(c.Request().Context(), req.Username, string(hash))
	if err != nil {
		if errors.Is(err, models.ErrUserExists) {
			return echo.NewHTTPError(http.StatusConflict, "username already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create user")
	}
	h.logger.Printf("user %s registered", user.Username)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	ctx := c.Request().Context()
	user, err := h.Store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	sess, err := h.Sessions.Create(ctx, user.ID, h.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
	}
	token, err := signToken(h.Secret, sess, h.MaxTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to sign token")
	}
	c.SetCookie(&http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.StartedAt.Add(h.MaxTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

// logout revokes the server-side session; the token itself becomes useless
// even though its signature remains valid.
func (h *AuthHandler) logout(c echo.Context) error {
	raw := tokenFromRequest(c)
	if raw == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	_, sessionID, err := parseToken(h.Secret, raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	if err := h.Sessions.Revoke(c.Request().Context(), sessionID); err != nil && !errors.Is(err, session.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to revoke session")
	}
	c.SetCookie(&http.Cookie{Name: authCookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return c.JSON(http.StatusOK, echo.Map{"status": "logged out"})
}

type swechaCredentials struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h *AuthHandler) swechaLogin(c echo.Context) error {
	var req swechaCredentials
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Phone == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phone and password required")
	}
	resp, err := h.Swecha.Login(c.Request().Context(), req.Phone, req.Password)
	if err != nil {
		h.logger.Printf("swecha login failed: %v", err)
		return echo.NewHTTPError(http.StatusBadGateway, "upstream login failed")
	}
	return c.Blob(resp.StatusCode, resp.ContentType, resp.Body)
}

func (h *AuthHandler) swechaMe(c echo.Context) error {
	authorization := c.Request().Header.Get(echo.HeaderAuthorization)
	if authorization == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	resp, err := h.Swecha.Me(c.Request().Context(), authorization)
	if err != nil {
		h.logger.Printf("swecha me failed: %v", err)
		return echo.NewHTTPError(http.StatusBadGateway, "upstream lookup failed")
	}
	return c.Blob(resp.StatusCode, resp.ContentType, resp.Body)
}

// Me answers for the locally authenticated caller; it sits behind the session
// guard, which stores the ids on the context.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	sessionID, _ := c.Get("session_id").(string)
	sess, err := h.Sessions.Get(c.Request().Context(), sessionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "session revoked")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"userId":       userID,
		"sessionId":    sessionID,
		"startedAt":    sess.StartedAt,
		"lastActivity": sess.LastActivity,
	})
}
