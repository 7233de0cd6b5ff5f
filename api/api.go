package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/Juliand6/therapy-assistant/pkg/notes"
)

// Server is the HTTP relay in front of the notes service. It owns request
// validation and error-to-status mapping; the core components do not depend
// on this transport.
type Server struct {
	config  Config
	service *notes.Service
	logger  *zap.Logger
	app     *fiber.App
}

// NewServer creates the relay server and registers its routes.
// The notes service is injected so tests can back it with fake drivers.
func NewServer(config Config, service *notes.Service, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		// Session transcripts arrive as one pasted body.
		BodyLimit: 2 * 1024 * 1024,
	})

	app.Use(cors.New())

	s := &Server{
		config:  config,
		service: service,
		logger:  logger,
		app:     app,
	}

	app.Get("/api/health", s.handleHealth)
	app.Get("/clients", s.handleListClients)
	app.Post("/clients", s.handleCreateClient)
	app.Get("/clients/:id/sessions", s.handleListSessions)
	app.Get("/clients/:id/snapshot", s.handleSnapshot)
	app.Post("/add-session", s.handleAddSession)
	app.Post("/chat", s.handleChat)

	return s
}

// Run starts the relay on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting relay server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the relay.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
