package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mo7amed4522/user-services/internal/application"
	"github.com/mo7amed4522/user-services/internal/domain/entity"
	"github.com/mo7amed4522/user-services/internal/interface/middleware"
	"github.com/mo7amed4522/user-services/pkg/helpers"
	"github.com/mo7amed4522/user-services/pkg/mailer"
	"github.com/mo7amed4522/user-services/pkg/response"
	"github.com/mo7amed4522/user-services/pkg/validation"
)

// AuthHandler exposes login, verification, refresh, and logout over HTTP.
// Verification codes are handed to the RabbitMQ email queue for delivery;
// the handler never returns the plaintext code to the client.
type AuthHandler struct {
	Gateway *application.AuthGateway
	Users   *application.UserService
	Mail    *helpers.RabbitPublisher
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(gateway *application.AuthGateway, users *application.UserService, mail *helpers.RabbitPublisher, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		Gateway: gateway,
		Users:   users,
		Mail:    mail,
		Logger:  logger,
		Cookies: helpers.NewCookie(cookieDomain, cookieSecure),
	}
}

// statusFor maps domain error kinds onto HTTP statuses. Unrecognized errors
// are treated as internal.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, application.ErrTokenInvalid):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, application.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, application.ErrTokenReused):
		return http.StatusUnauthorized, "token revoked"
	case errors.Is(err, application.ErrInactive):
		return http.StatusForbidden, "account inactive"
	case errors.Is(err, application.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, application.ErrDuplicateEmail):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, application.ErrCodeInvalid):
		return http.StatusBadRequest, "invalid verification code"
	case errors.Is(err, application.ErrCodeExpired):
		return http.StatusBadRequest, "verification code expired"
	case errors.Is(err, application.ErrCodeAlreadyUsed):
		return http.StatusConflict, "verification code already used"
	case errors.Is(err, application.ErrRateLimited):
		return http.StatusTooManyRequests, "too many requests"
	case errors.Is(err, application.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "service unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func failWith(c *gin.Context, err error) {
	status, msg := statusFor(err)
	response.Fail(c, status, msg, nil)
}

func userView(u *entity.User) gin.H {
	return gin.H{
		"id":             u.ID,
		"email":          u.Email,
		"phone":          u.Phone,
		"country_code":   u.CountryCode,
		"first_name":     u.FirstName,
		"last_name":      u.LastName,
		"role":           u.Role,
		"email_verified": u.EmailVerified,
		"phone_verified": u.PhoneVerified,
		"active":         u.Active,
		"avatar_url":     u.AvatarURL,
		"created_at":     u.CreatedAt,
		"updated_at":     u.UpdatedAt,
	}
}

// deliver queues the freshly issued code for out-of-band delivery. Email goes
// through the RabbitMQ mail queue; other channels only get logged until their
// providers are wired up.
func (h *AuthHandler) deliver(c *gin.Context, email string, handle *application.CodeHandle) {
	if handle == nil {
		return
	}
	if handle.Channel == entity.ChannelEmail && h.Mail != nil {
		job := mailer.EmailJob{
			To:       email,
			Subject:  "Your verification code",
			Template: "verification_code",
			Data: map[string]any{
				"code":       handle.Code,
				"expires_at": handle.ExpiresAt,
			},
		}
		if err := h.Mail.PublishJSON(c.Request.Context(), job); err != nil && h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", handle.UserID).Error("queue verification email failed")
		}
		return
	}
	if h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{
			"user_id": handle.UserID,
			"channel": handle.Channel,
		}).Info("verification code issued, no delivery provider for channel")
	}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	Phone       string `json:"phone" binding:"omitempty"`
	CountryCode string `json:"country_code" binding:"omitempty"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"omitempty"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Register(c.Request.Context(), application.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		CountryCode: req.CountryCode,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		failWith(c, err)
		return
	}
	response.OK(c, http.StatusCreated, userView(u), "registered")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Gateway.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failWith(c, err)
		return
	}
	if res.Pending {
		h.deliver(c, res.User.Email, res.Handle)
		response.OK(c, http.StatusAccepted, gin.H{
			"verification_required": true,
			"channel":               res.Handle.Channel,
			"expires_at":            res.Handle.ExpiresAt,
		}, "verification code sent")
		return
	}
	h.Cookies.SetPair(c, res.Pair.AccessToken, res.Pair.AccessTokenExpiry, res.Pair.RefreshToken, res.Pair.RefreshTokenExpiry)
	response.OK(c, http.StatusOK, gin.H{
		"user":          userView(res.User),
		"access_token":  res.Pair.AccessToken,
		"refresh_token": res.Pair.RefreshToken,
	}, "login successful")
}

type sendCodeRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	Channel string `json:"channel" binding:"required,oneof=email sms chat"`
}

func (h *AuthHandler) SendCode(c *gin.Context) {
	var req sendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	handle, err := h.Gateway.RequestCode(c.Request.Context(), req.UserID, entity.Channel(req.Channel))
	if err != nil {
		failWith(c, err)
		return
	}
	email := ""
	if u, err := h.Users.GetProfile(c.Request.Context(), req.UserID); err == nil {
		email = u.Email
	}
	h.deliver(c, email, handle)
	response.OK(c, http.StatusAccepted, gin.H{
		"channel":    handle.Channel,
		"expires_at": handle.ExpiresAt,
	}, "verification code sent")
}

type verifyRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	Channel string `json:"channel" binding:"required,oneof=email sms chat"`
	Code    string `json:"code" binding:"required"`
}

func (h *AuthHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	pair, err := h.Gateway.SubmitVerification(c.Request.Context(), req.UserID, entity.Channel(req.Channel), req.Code)
	if err != nil {
		failWith(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK(c, http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "verified")
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// refreshToken reads the token from the body or the cookie.
func (h *AuthHandler) refreshToken(c *gin.Context) string {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	if v, err := c.Cookie("refresh_token"); err == nil {
		return v
	}
	return ""
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	token := h.refreshToken(c)
	if token == "" {
		response.Fail(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, err := h.Gateway.Refresh(c.Request.Context(), token)
	if err != nil {
		failWith(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK(c, http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "token refreshed")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token := h.refreshToken(c); token != "" {
		if err := h.Gateway.Logout(c.Request.Context(), token); err != nil {
			failWith(c, err)
			return
		}
	}
	h.Cookies.Clear(c)
	response.OK(c, http.StatusOK, gin.H{"logged_out": true}, "logged out")
}

func (h *AuthHandler) LogoutAll(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Gateway.LogoutAll(c.Request.Context(), uid); err != nil {
		failWith(c, err)
		return
	}
	h.Cookies.Clear(c)
	response.OK(c, http.StatusOK, gin.H{"logged_out": true}, "logged out everywhere")
}

type validateRequest struct {
	Token string `json:"token" binding:"required"`
}

// Validate checks an access token on behalf of other services.
func (h *AuthHandler) Validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	claims, err := h.Gateway.VerifyAccessToken(req.Token)
	if err != nil {
		failWith(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"user_id":    claims.UserID,
		"role":       claims.Role,
		"expires_at": claims.ExpiresAt.Time,
	}, "token valid")
}
