package web

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/bhartiamulya/EduToon/pkg/clips"
	"github.com/bhartiamulya/EduToon/pkg/hub"
	"github.com/bhartiamulya/EduToon/pkg/mascot"
	"github.com/bhartiamulya/EduToon/pkg/narrator"
)

// statusEvent is pushed on every voice status transition.
type statusEvent struct {
	Type   string          `json:"type"`
	Status narrator.Status `json:"status"`
}

// expressionEvent is pushed on every mascot expression change.
type expressionEvent struct {
	Type       string            `json:"type"`
	Expression mascot.Expression `json:"expression"`
}

// clientMessage is what UI clients send over the status socket.
type clientMessage struct {
	Type   string `json:"type"`             // "gesture"
	Source string `json:"source,omitempty"` // "pointerdown", "keydown"
}

// speakPayload accepts either a batch or a single request.
type speakPayload struct {
	Requests []narrator.Request `json:"requests"`

	// Single-request convenience fields.
	Key          clips.Key `json:"key,omitempty"`
	FallbackText string    `json:"fallback_text,omitempty"`
	Text         string    `json:"text,omitempty"`
}

// handleSpeak enqueues narration. Body: {"requests":[...]} for a batch or
// {"key":...} / {"text":...} for a single request. Keys must belong to the
// declared clip set. Pass ?wait=true to block until the batch has finished.
func (s *Server) handleSpeak(c *fiber.Ctx) error {
	var payload speakPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JSON body",
		})
	}

	reqs := payload.Requests
	if len(reqs) == 0 {
		if payload.Key == "" && payload.Text == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "nothing to speak",
			})
		}
		reqs = []narrator.Request{{
			Key:          payload.Key,
			FallbackText: payload.FallbackText,
			Text:         payload.Text,
		}}
	}

	for _, req := range reqs {
		if req.Key != "" && !clips.Valid(req.Key) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown voice key: " + string(req.Key),
			})
		}
	}

	id := uuid.NewString()
	done := s.queue.Speak(reqs...)
	s.log.Debug("speak accepted", "id", id, "count", len(reqs))

	if c.QueryBool("wait") {
		<-done
		return c.JSON(fiber.Map{"id": id, "spoken": len(reqs)})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"id":     id,
		"queued": len(reqs),
	})
}

// handleStop clears the queue and aborts in-flight playback.
func (s *Server) handleStop(c *fiber.Ctx) error {
	s.queue.Stop()
	return c.JSON(fiber.Map{"status": s.queue.Status()})
}

// handleStatus reports the current voice status.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	resp := fiber.Map{
		"status":  s.queue.Status(),
		"pending": s.queue.Pending(),
		"clips":   s.registry.Count(),
	}
	if s.gate != nil {
		resp["gated"] = s.gate.Locked()
	}
	return c.JSON(resp)
}

// handleClips lists the declared voice keys and their canonical lines.
func (s *Server) handleClips(c *fiber.Ctx) error {
	keys := clips.Keys()
	out := make([]fiber.Map, 0, len(keys))
	for _, k := range keys {
		out = append(out, fiber.Map{"key": k, "line": clips.Line(k)})
	}
	return c.JSON(fiber.Map{"clips": out})
}

// handleGesture accepts a user interaction over plain HTTP. Gestures also
// arrive over the status socket; both paths unlock the playback gate and
// wake any request held behind it.
func (s *Server) handleGesture(c *fiber.Ctx) error {
	s.gesture("http")
	return c.SendStatus(fiber.StatusNoContent)
}

// handleStatusWS upgrades a UI client onto the status event stream.
func (s *Server) handleStatusWS(conn *websocket.Conn) {
	client := hub.NewClient(s.statusHub, conn, s.handleClientMessage)
	client.Run()
}

// handleClientMessage parses inbound socket messages from UI clients.
func (s *Server) handleClientMessage(data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.log.Debug("ignoring malformed client message", "error", err)
		return
	}
	if msg.Type == "gesture" {
		s.gesture(msg.Source)
	}
}

// gesture records one user interaction: unlocks the playback gate and
// notifies one-shot waiters.
func (s *Server) gesture(source string) {
	if s.gate != nil {
		s.gate.Unlock()
	}
	s.gestures.Notify()
	s.log.Debug("user gesture", "source", source)
}
