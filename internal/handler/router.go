package handler

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/markbook/internal/middleware"
)

type RouterDeps struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Bookmarks  *BookmarkHandler
	Health     *HealthHandler
	Authorizer middleware.Authorizer
	CORSAllow  []string
	Gzip       bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), middleware.CORS(deps.CORSAllow))
	if deps.Gzip {
		engine.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	RegisterRoutes(engine, deps)
	return engine
}

func RegisterRoutes(r gin.IRouter, deps RouterDeps) {
	protect := middleware.JWTAuth(deps.Authorizer)

	r.GET("/healthz", deps.Health.Check)

	r.POST("/auth/signup", deps.Auth.Signup)
	r.POST("/auth/signin", deps.Auth.Signin)

	r.GET("/users/me", protect(deps.Users.Me))
	r.PATCH("/users/edit", protect(deps.Users.Edit))

	r.POST("/bookmarks", protect(deps.Bookmarks.Create))
	r.GET("/bookmarks", protect(deps.Bookmarks.List))
	r.GET("/bookmarks/:id", protect(deps.Bookmarks.Get))
	r.PATCH("/bookmarks/:id", protect(deps.Bookmarks.Update))
	r.DELETE("/bookmarks/:id", protect(deps.Bookmarks.Delete))
}
