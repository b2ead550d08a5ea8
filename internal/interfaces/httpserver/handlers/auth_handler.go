package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"moodcanvas-server/internal/interfaces/httpserver/middlewares"
	"moodcanvas-server/internal/interfaces/httpserver/requests"
	"moodcanvas-server/internal/interfaces/httpserver/responses"
	"moodcanvas-server/internal/utils/platformerrors"
)

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
	users    UserService
	sessions SessionManager
	tokens   TokenIssuer
	cookie   CookieSettings
	log      zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users UserService, sessions SessionManager, tokens TokenIssuer, cookie CookieSettings, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		cookie:   cookie,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /v1/auth/register
// @Summary Register an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body requests.RegisterRequest true "Credentials"
// @Success 201 {object} responses.AuthResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 409 {object} platformerrors.HTTPErrorResponse
// @Router /v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req requests.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	h.log.Info().Uint("user_id", u.ID).Msg("user registered")
	c.JSON(http.StatusCreated, responses.AuthResponse{
		Success: true,
		Message: "registration successful, please log in",
		User:    responses.FromUser(u),
	})
}

// Login handles POST /v1/auth/login
// @Summary Log in
// @Description Opens a session, sets the session cookie and returns the same token for bearer use.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body requests.LoginRequest true "Credentials"
// @Success 200 {object} responses.AuthResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req requests.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	u, err := h.users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	sess, err := h.sessions.Create(ctx, u.ID, u.Username)
	if err != nil {
		platformerrors.WriteError(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create session"), h.log)
		return
	}
	token, err := h.tokens.Issue(sess)
	if err != nil {
		_ = h.sessions.Destroy(ctx, sess.ID)
		platformerrors.WriteError(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to issue token"), h.log)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)

	h.log.Info().Uint("user_id", u.ID).Msg("user logged in")
	c.JSON(http.StatusOK, responses.AuthResponse{
		Success:   true,
		User:      responses.FromUser(u),
		Token:     token,
		ExpiresAt: &sess.ExpiresAt,
	})
}

// Logout handles POST /v1/auth/logout
// @Summary Log out
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !p.External {
		if err := h.sessions.Destroy(c.Request.Context(), p.StateID); err != nil {
			h.log.Warn().Err(err).Msg("failed to destroy session")
		}
	}
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, responses.SuccessResponse{Success: true, Message: "logged out"})
}

// Me handles GET /v1/auth/me
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.AuthResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Router /v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		platformerrors.WriteUnauthorized(c, "authentication required")
		return
	}
	u, err := h.users.GetByID(c.Request.Context(), p.UserID)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.AuthResponse{Success: true, User: responses.FromUser(u)})
}

// Stats handles GET /v1/auth/stats
// @Summary User statistics
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.StatsResponse
// @Router /v1/auth/stats [get]
func (h *AuthHandler) Stats(c *gin.Context) {
	stats, err := h.users.Stats(c.Request.Context())
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.StatsResponse{Success: true, TotalUsers: stats.TotalUsers})
}
