package tools

import (
	"careerchat/app/client/pushover"
	"careerchat/app/service/leads"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/samber/do"
	"github.com/tmc/langchaingo/tools"
)

type pusher interface {
	Push(ctx context.Context, text string)
}

type leadStore interface {
	AddLead(email, name, notes string) (*leads.Lead, error)
	AddQuestion(question string) (*leads.UnknownQuestion, error)
}

// Service dispatches model-requested tool calls to the local recording
// functions. The tool set is closed: only the registered names exist.
type Service struct {
	validate *validator.Validate
	push     pusher
	store    leadStore
	registry map[string]tools.Tool
}

func New(di *do.Injector) (*Service, error) {
	return newService(
		do.MustInvoke[*pushover.Client](di),
		do.MustInvoke[*leads.Service](di),
	), nil
}

func newService(push pusher, store leadStore) *Service {
	s := &Service{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		push:     push,
		store:    store,
		registry: make(map[string]tools.Tool),
	}

	for _, tool := range s.createAgentTools() {
		s.registry[tool.Name()] = tool
	}

	return s
}

// Dispatch runs the named tool with the raw JSON arguments the model
// produced. It is total: unknown names and tool failures come back as
// synthetic error results, never as errors to the caller.
func (s *Service) Dispatch(ctx context.Context, name, arguments string) string {
	tool, ok := s.registry[name]
	if !ok {
		slog.Warn("Unknown tool requested", "tool", name)
		return errorResult(fmt.Sprintf("unknown tool: %s", name))
	}

	result, err := tool.Call(ctx, arguments)
	if err != nil {
		slog.Error("Tool call failed", "tool", name, "error", err)
		return errorResult(err.Error())
	}

	return result
}

func recordedResult() string {
	data, _ := json.Marshal(map[string]bool{"recorded": true})
	return string(data)
}

func errorResult(message string) string {
	data, _ := json.Marshal(map[string]string{"error": message})
	return string(data)
}
