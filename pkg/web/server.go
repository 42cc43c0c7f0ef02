// Package web exposes the narration engine to UI collaborators over HTTP
// and websocket: speak/stop/status plus a status event stream, with user
// gestures flowing back in for autoplay recovery.
package web

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/bhartiamulya/EduToon/pkg/audio"
	"github.com/bhartiamulya/EduToon/pkg/clips"
	"github.com/bhartiamulya/EduToon/pkg/hub"
	"github.com/bhartiamulya/EduToon/pkg/mascot"
	"github.com/bhartiamulya/EduToon/pkg/narrator"
)

// Server is the narration API server.
type Server struct {
	app  *fiber.App
	port string
	log  *slog.Logger

	queue    *narrator.Queue
	registry *clips.Registry
	gestures *narrator.Gestures
	gate     *audio.Gate // nil when playback is ungated

	statusHub *hub.Hub
}

// NewServer wires the narration engine behind the HTTP/WS boundary.
// gate may be nil if playback is not gated on this install.
func NewServer(port string, queue *narrator.Queue, registry *clips.Registry, gestures *narrator.Gestures, gate *audio.Gate, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		port:      port,
		log:       logger.With("component", "web.server"),
		queue:     queue,
		registry:  registry,
		gestures:  gestures,
		gate:      gate,
		statusHub: hub.New("status", logger),
	}

	app := fiber.New(fiber.Config{
		AppName:               "EduToon Narration",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Post("/speak", s.handleSpeak)
	api.Post("/stop", s.handleStop)
	api.Get("/status", s.handleStatus)
	api.Get("/clips", s.handleClips)
	api.Post("/gesture", s.handleGesture)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app

	// Push every status transition to connected UI clients.
	queue.OnStatusChange(func(st narrator.Status) {
		s.statusHub.BroadcastJSON(statusEvent{Type: "status", Status: st})
	})

	return s
}

// Express broadcasts a mascot expression to UI clients. Wire this as the
// mascot binder's sink.
func (s *Server) Express(e mascot.Expression) {
	s.statusHub.BroadcastJSON(expressionEvent{Type: "expression", Expression: e})
}

// Start runs the hub and the HTTP server. Blocks.
func (s *Server) Start() error {
	go s.statusHub.Run()
	s.log.Info("narration server listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.log.Error("web server error", "error", err)
		}
	}()
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
