package server

import (
	"careerchat/app/config"
	"careerchat/app/service/chat"
	"careerchat/app/service/leads"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
)

type chatService interface {
	Chat(ctx context.Context, userText string, history []chat.Message) *chat.Turn
}

type leadLister interface {
	Leads() ([]leads.Lead, error)
	Questions() ([]leads.UnknownQuestion, error)
}

// Service is the HTTP boundary towards the chat UI. It receives the new user
// message plus the prior history and returns the answer with the updated
// history, so the client can persist and redisplay it.
type Service struct {
	cfg *config.Config
	app *fiber.App
}

type chatRequest struct {
	Message string         `json:"message"`
	History []chat.Message `json:"history"`
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	chatSvc, err := do.Invoke[*chat.Service](di)
	if err != nil {
		return nil, oops.Errorf("failed to initialize chat: %w", err)
	}

	return newService(cfg, chatSvc, do.MustInvoke[*leads.Service](di)), nil
}

func newService(cfg *config.Config, chatSvc chatService, leadsSvc leadLister) *Service {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           time.Minute,
	})

	s := &Service{
		cfg: cfg,
		app: app,
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/api/chat", func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		if strings.TrimSpace(req.Message) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message is required"})
		}

		turn := chatSvc.Chat(c.UserContext(), req.Message, req.History)

		return c.JSON(turn)
	})

	app.Get("/api/leads", func(c *fiber.Ctx) error {
		storedLeads, err := leadsSvc.Leads()
		if err != nil {
			slog.Error("Failed to list leads", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list leads"})
		}

		questions, err := leadsSvc.Questions()
		if err != nil {
			slog.Error("Failed to list questions", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list questions"})
		}

		return c.JSON(fiber.Map{
			"leads":     storedLeads,
			"questions": questions,
		})
	})

	return s
}

func (s *Service) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()

		if err := s.app.ShutdownWithTimeout(5 * time.Second); err != nil {
			slog.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	slog.Info("HTTP server listening", "addr", s.cfg.Server.Listen)

	if err := s.app.Listen(s.cfg.Server.Listen); err != nil {
		slog.Error("HTTP server stopped", "error", err)
	}
}
