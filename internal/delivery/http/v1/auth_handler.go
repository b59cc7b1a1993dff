package v1

import (
	"net/http"
	"strconv"

	"talent-workflow-api/internal/delivery/http/middleware"
	"talent-workflow-api/internal/delivery/http/response"
	"talent-workflow-api/internal/domain"
	"talent-workflow-api/internal/usecase"
	"talent-workflow-api/pkg/apperror"
	"talent-workflow-api/pkg/auth"
	"talent-workflow-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authUC       domain.AuthUsecase
	sessions     *auth.SessionManager
	loginTracker *security.LoginTracker
	secLog       *security.SecurityLogger
	secureCookie bool
	log          *zap.Logger
}

type AuthHandlerDeps struct {
	AuthUC       domain.AuthUsecase
	Sessions     *auth.SessionManager
	LoginTracker *security.LoginTracker
	SecLog       *security.SecurityLogger
	SecureCookie bool
	Log          *zap.Logger
	// Applied to signup and login only.
	CredentialLimit gin.HandlerFunc
}

func NewAuthHandler(api *gin.RouterGroup, deps AuthHandlerDeps) {
	handler := &AuthHandler{
		authUC:       deps.AuthUC,
		sessions:     deps.Sessions,
		loginTracker: deps.LoginTracker,
		secLog:       deps.SecLog,
		secureCookie: deps.SecureCookie,
		log:          deps.Log,
	}

	limit := deps.CredentialLimit
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", limit, handler.Signup)
		authGroup.POST("/login", limit, handler.Login)
		authGroup.POST("/logout", handler.Logout)
		authGroup.GET("/me", handler.Me)
		authGroup.POST("/change-password", handler.ChangePassword)
	}
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type MeResponse struct {
	User *UserResponse `json:"user"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Signup godoc
// @Summary      Create an account
// @Description  Registers a user and starts a session (sets the auth cookie).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.SignupInput  true  "Signup"
// @Success      201   {object}  UserResponse
// @Failure      400   {object}  response.ErrorBody
// @Failure      409   {object}  response.ErrorBody
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req domain.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid JSON body"))
		return
	}

	user, err := h.authUC.Signup(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.startSession(c, user); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	h.secLog.Log(c.Request.Context(), security.SecurityEvent{
		Event:        security.EventSignup,
		SubjectType:  "user_id",
		SubjectValue: security.HashValue(user.ID),
		IP:           c.ClientIP(),
		RequestID:    response.RequestID(c),
	})
	response.Success(c, http.StatusCreated, toUserResponse(user))
}

// Login godoc
// @Summary      Sign in
// @Description  Verifies credentials and sets the auth cookie. Repeated failures block the email temporarily.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.LoginInput  true  "Credentials"
// @Success      200   {object}  UserResponse
// @Failure      400   {object}  response.ErrorBody
// @Failure      401   {object}  response.ErrorBody
// @Failure      429   {object}  response.ErrorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid JSON body"))
		return
	}

	ctx := c.Request.Context()
	email := usecase.NormalizeEmail(req.Email)
	ip := c.ClientIP()
	requestID := response.RequestID(c)

	blocked, err := h.loginTracker.IsBlocked(ctx, email, ip)
	if err != nil {
		h.log.Warn("login block check failed", zap.Error(err))
	}
	if blocked {
		h.secLog.LogLoginBlocked(ctx, email, ip, c.Request.UserAgent(), requestID)
		if ttl, ok, _ := h.loginTracker.GetBlockTTL(ctx, email); ok {
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())+1))
		}
		c.Error(apperror.TooManyRequests("Too many failed login attempts. Please try again later."))
		return
	}

	user, err := h.authUC.Login(ctx, req)
	if err != nil {
		if apperror.StatusOf(err) == http.StatusUnauthorized {
			if _, _, trackErr := h.loginTracker.RecordFailedAttempt(ctx, email, ip, c.Request.UserAgent(), requestID); trackErr != nil {
				h.log.Warn("failed to record login attempt", zap.Error(trackErr))
			}
		}
		c.Error(err)
		return
	}

	if err := h.loginTracker.ClearAttempts(ctx, email, ip); err != nil {
		h.log.Warn("failed to clear login attempts", zap.Error(err))
	}

	if err := h.startSession(c, user); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	h.secLog.Log(ctx, security.SecurityEvent{
		Event:        security.EventLoginSuccess,
		SubjectType:  "email",
		SubjectValue: security.MaskEmail(email),
		IP:           ip,
		RequestID:    requestID,
	})
	response.Success(c, http.StatusOK, toUserResponse(user))
}

// Logout godoc
// @Summary      Sign out
// @Description  Clears the auth cookie. Always succeeds.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.OK
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.secureCookie)
	response.Success(c, http.StatusOK, response.OK{OK: true})
}

// Me godoc
// @Summary      Current user
// @Description  Returns the signed-in user, or null when there is no valid session.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  MeResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := middleware.SessionUser(c)
	if !ok {
		response.Success(c, http.StatusOK, MeResponse{})
		return
	}

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), session.ID)
	if err != nil {
		if apperror.StatusOf(err) == http.StatusNotFound {
			response.Success(c, http.StatusOK, MeResponse{})
			return
		}
		c.Error(err)
		return
	}

	out := toUserResponse(user)
	response.Success(c, http.StatusOK, MeResponse{User: &out})
}

// ChangePassword godoc
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ChangePasswordInput  true  "Passwords"
// @Success      200   {object}  response.OK
// @Failure      400   {object}  response.ErrorBody
// @Failure      401   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Router       /auth/change-password [post]
// @Security     CookieAuth
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	session, ok := middleware.SessionUser(c)
	if !ok {
		c.Error(apperror.Unauthorized("Unauthorized"))
		return
	}

	var req domain.ChangePasswordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid JSON body"))
		return
	}

	if err := h.authUC.ChangePassword(c.Request.Context(), session.ID, req); err != nil {
		c.Error(err)
		return
	}

	h.secLog.Log(c.Request.Context(), security.SecurityEvent{
		Event:        security.EventPasswordChange,
		SubjectType:  "user_id",
		SubjectValue: security.HashValue(session.ID),
		IP:           c.ClientIP(),
		RequestID:    response.RequestID(c),
	})
	response.Success(c, http.StatusOK, response.OK{OK: true})
}

func (h *AuthHandler) startSession(c *gin.Context, user *domain.User) error {
	token, err := h.sessions.Issue(auth.SessionUser{ID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(c, token, h.sessions.TTL(), h.secureCookie)
	return nil
}
