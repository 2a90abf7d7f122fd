package server

import (
	"github.com/boardlens/boardlens/internal/observability"
	"github.com/boardlens/boardlens/internal/server/handlers"
)

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes() {
	s.router.Get("/health", s.deps.Health.HealthHandler)
	s.router.Get("/health/live", s.deps.Health.LivenessHandler)
	s.router.Get("/health/ready", s.deps.Health.ReadinessHandler)

	s.router.Get("/version", handlers.VersionHandler)

	s.router.Get("/v1/resolve", handlers.ResolveHandler(s.deps.Resolver, s.deps.History, observability.ServerLogger))
}
