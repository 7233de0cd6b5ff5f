package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Juliand6/therapy-assistant/pkg/notes"
)

// ErrorResponse is the uniform failure body.
type ErrorResponse struct {
	Error string `json:"error"`
}

type createClientRequest struct {
	Name string `json:"name"`
}

type addSessionRequest struct {
	ClientID      string `json:"clientId"`
	Transcript    string `json:"transcript"`
	SessionNumber int    `json:"sessionNumber"`
}

type chatRequest struct {
	ClientID string `json:"clientId"`
	Question string `json:"question"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func (s *Server) handleListClients(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"clients": s.service.ListClients()})
}

func (s *Server) handleCreateClient(c *fiber.Ctx) error {
	var req createClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	client, err := s.service.CreateClient(req.Name)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"client": client})
}

func (s *Server) handleListSessions(c *fiber.Ctx) error {
	sessions, err := s.service.Sessions(c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func (s *Server) handleSnapshot(c *fiber.Ctx) error {
	snapshot, err := s.service.Snapshot(c.Context(), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"snapshot": snapshot})
}

func (s *Server) handleAddSession(c *fiber.Ctx) error {
	var req addSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	note, err := s.service.GenerateNote(c.Context(), req.ClientID, req.Transcript, req.SessionNumber)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"note": note})
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	answer, err := s.service.Ask(c.Context(), req.ClientID, req.Question)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"answer": answer})
}

// fail maps service errors to status codes: validation rejections are 400s
// and never logged as faults, everything else is an internal error carrying
// the upstream detail.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	var verr *notes.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: verr.Error()})
	}

	s.logger.Error("request failed",
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
}
