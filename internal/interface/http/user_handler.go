package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mo7amed4522/user-services/internal/application"
	"github.com/mo7amed4522/user-services/internal/interface/middleware"
	"github.com/mo7amed4522/user-services/pkg/response"
	"github.com/mo7amed4522/user-services/pkg/validation"
)

const maxPhotoBytes = 8 << 20

// UserHandler exposes profile reads and writes for the authenticated user.
type UserHandler struct {
	Svc     *application.UserService
	Gateway *application.AuthGateway
	Logger  *logrus.Logger
}

func NewUserHandler(svc *application.UserService, gateway *application.AuthGateway, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Gateway: gateway, Logger: logger}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		failWith(c, err)
		return
	}
	response.OK(c, http.StatusOK, userView(u), "profile")
}

type updateProfileRequest struct {
	Phone       string `json:"phone" binding:"omitempty"`
	CountryCode string `json:"country_code" binding:"omitempty"`
	FirstName   string `json:"first_name" binding:"omitempty"`
	LastName    string `json:"last_name" binding:"omitempty"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Phone:       req.Phone,
		CountryCode: req.CountryCode,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		failWith(c, err)
		return
	}
	response.OK(c, http.StatusOK, userView(u), "profile updated")
}

// UploadPhoto accepts a multipart "photo" file and stores it in GCS.
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	file, err := c.FormFile("photo")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "missing photo file", nil)
		return
	}
	if file.Size > maxPhotoBytes {
		response.Fail(c, http.StatusRequestEntityTooLarge, "photo too large", nil)
		return
	}
	f, err := file.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "unreadable photo file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadPhoto(c.Request.Context(), uid, f, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		failWith(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"avatar_url": url}, "photo uploaded")
}

// Deactivate soft-disables the account and revokes every refresh token.
func (h *UserHandler) Deactivate(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Deactivate(c.Request.Context(), uid); err != nil {
		failWith(c, err)
		return
	}
	if err := h.Gateway.LogoutAll(c.Request.Context(), uid); err != nil {
		failWith(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"deactivated": true}, "account deactivated")
}

// List is the admin-only user listing.
func (h *UserHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	users, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		failWith(c, err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, userView(u))
	}
	response.OK(c, http.StatusOK, out, "users")
}

// Search queries the Elasticsearch users index.
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		failWith(c, err)
		return
	}
	response.OK(c, http.StatusOK, hits, "search results")
}
