package router

import (
	"github.com/oksasatya/go-auth-service/internal/container"
	handlers "github.com/oksasatya/go-auth-service/internal/interface/http"
	"github.com/oksasatya/go-auth-service/internal/router/modules"
)

// InitModules builds module handlers from the container and adds them to r.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	authHandler := handlers.NewAuthHandler(c.Service, c.Logger)
	r.Add(modules.NewAuthModule(authHandler, c.JWT))

	ops := modules.NewOpsModule(nil)
	if c.Registry != nil {
		ops.Gatherer = c.Registry
	}
	r.AddRoot(ops)
}
