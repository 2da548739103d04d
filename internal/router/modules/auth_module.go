package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-auth-service/internal/interface/http"
	"github.com/oksasatya/go-auth-service/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Tokens  middleware.TokenParser
}

func NewAuthModule(h *handlers.AuthHandler, tokens middleware.TokenParser) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", m.Handler.Register)
	auth.POST("/login", m.Handler.Login)
	auth.GET("/me", middleware.JWTAuth(m.Tokens), m.Handler.Me)
}
