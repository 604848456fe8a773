package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mo7amed4522/user-services/internal/container"
	"github.com/mo7amed4522/user-services/internal/domain/entity"
	handlers "github.com/mo7amed4522/user-services/internal/interface/http"
	"github.com/mo7amed4522/user-services/internal/interface/middleware"
)

// UserModule wires the profile routes. Everything here requires a valid
// access token; the listing additionally requires the admin role.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetJWT()))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/profile/photo", m.Handler.UploadPhoto)
		auth.DELETE("/profile", m.Handler.Deactivate)
		auth.GET("/users/search", m.Handler.Search)

		admin := auth.Group("/")
		admin.Use(middleware.RequireRole(entity.RoleAdmin))
		{
			admin.GET("/users", m.Handler.List)
		}
	}
}
