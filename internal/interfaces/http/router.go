// Package http is the thin HTTP front end spec §1 calls out of scope for
// the core conversion pipeline but wired for completeness: it exposes
// internal/convert.UseCase over gin, following the teacher's
// Router-struct-plus-handlers shape without that file's user/auth/
// permission/OAuth/swagger dependency graph, which has no equivalent in
// this domain (no accounts, no RBAC, nothing to authenticate).
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subconv/internal/convert"
	"github.com/orris-inc/subconv/internal/emit/template"
	sharedconfig "github.com/orris-inc/subconv/internal/shared/config"
)

// Router owns the gin.Engine and every handler it routes to.
type Router struct {
	engine  *gin.Engine
	convert *convertHandler
}

// NewRouter builds a Router for the given conversion UseCase, config
// Bundle snapshot (spec §9: callers read the Bundle once at boot/reload
// and hand the same pointer to every Router they build), and the base
// templates preloaded from cfg.Template.Path.
func NewRouter(uc *convert.UseCase, cfg *sharedconfig.Bundle, templates *template.Loader, log *slog.Logger) *Router {
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()
	engine.Use(recovery(log), requestLogging(log), cors(cfg.Server.AllowedOrigins))

	tokens := newManagedTokenService(cfg.JWT.Secret, cfg.JWT.ExpiresHours)
	return &Router{
		engine:  engine,
		convert: newConvertHandler(uc, tokens, templates, log),
	}
}

// SetupRoutes registers every endpoint this front end exposes.
func (r *Router) SetupRoutes() {
	r.engine.GET("/healthz", func(c *gin.Context) { c.Status(200) })

	r.engine.POST("/convert", r.convert.Convert)
	r.engine.POST("/managed", r.convert.Sign)
	r.engine.GET("/managed/:token", r.convert.ManagedConfig)
}

// GetEngine returns the underlying gin.Engine, for http.Server.Handler.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
