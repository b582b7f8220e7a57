package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/noteplus/noteplus-api/internal/interface/http"
	"github.com/noteplus/noteplus-api/internal/interface/middleware"
	"github.com/noteplus/noteplus-api/pkg/helpers"
)

// AuthModule wires the auth HTTP surface.
// Public: POST /api/auth/createuser, POST /api/auth/login
// Protected: GET /api/auth/getuser

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/createuser", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/getuser", m.Handler.GetUser)
	}
}
