package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/tmc/langchaingo/tools"
)

const (
	ToolRecordUserDetails     = "record_user_details"
	ToolRecordUnknownQuestion = "record_unknown_question"

	DescriptionRecordUserDetails     = "Use this tool to record that a user is interested in being in touch and provided an email address"
	DescriptionRecordUnknownQuestion = "Always use this tool to record any question that couldn't be answered as you didn't know the answer"
)

type agentTool struct {
	name        string
	description string
	call        func(ctx context.Context, input string) (string, error)
}

func (m *agentTool) Name() string {
	return m.name
}

func (m *agentTool) Description() string {
	return m.description
}

func (m *agentTool) Call(ctx context.Context, input string) (string, error) {
	return m.call(ctx, input)
}

type recordUserDetailsArgs struct {
	Email string `json:"email" validate:"required"`
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

type recordUnknownQuestionArgs struct {
	Question string `json:"question" validate:"required"`
}

func (s *Service) createAgentTools() []tools.Tool {
	return []tools.Tool{
		&agentTool{
			name:        ToolRecordUserDetails,
			description: DescriptionRecordUserDetails,
			call: func(ctx context.Context, input string) (string, error) {
				var args recordUserDetailsArgs
				if err := json.Unmarshal([]byte(input), &args); err != nil {
					return "", fmt.Errorf("invalid arguments JSON: %w", err)
				}

				if err := s.validate.Struct(args); err != nil {
					return "", fmt.Errorf("email is required: %w", err)
				}

				// Format validation stays best-effort: a lead with an odd
				// looking address is still worth recording.
				if err := s.validate.Var(args.Email, "email"); err != nil {
					slog.Warn("Email does not look valid, recording anyway", "email", args.Email)
				}

				if args.Name == "" {
					args.Name = "Name not provided"
				}
				if args.Notes == "" {
					args.Notes = "Notes not provided"
				}

				if _, err := s.store.AddLead(args.Email, args.Name, args.Notes); err != nil {
					slog.Error("Failed to store lead", "error", err)
				}

				s.push.Push(ctx, fmt.Sprintf("Recording %s with email %s and notes %s", args.Name, args.Email, args.Notes))

				return recordedResult(), nil
			},
		},
		&agentTool{
			name:        ToolRecordUnknownQuestion,
			description: DescriptionRecordUnknownQuestion,
			call: func(ctx context.Context, input string) (string, error) {
				var args recordUnknownQuestionArgs
				if err := json.Unmarshal([]byte(input), &args); err != nil {
					return "", fmt.Errorf("invalid arguments JSON: %w", err)
				}

				if err := s.validate.Struct(args); err != nil {
					return "", fmt.Errorf("question is required: %w", err)
				}

				if _, err := s.store.AddQuestion(args.Question); err != nil {
					slog.Error("Failed to store question", "error", err)
				}

				s.push.Push(ctx, fmt.Sprintf("Recording unanswered question: %s", args.Question))

				return recordedResult(), nil
			},
		},
	}
}

// Definitions returns the tool schemas advertised to the model.
func (s *Service) Definitions() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ToolRecordUserDetails,
				Description: DescriptionRecordUserDetails,
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"email": {
							Type:        jsonschema.String,
							Description: "The email address of this user",
						},
						"name": {
							Type:        jsonschema.String,
							Description: "The user's name, if they provided it",
						},
						"notes": {
							Type:        jsonschema.String,
							Description: "Any additional information about the conversation that's worth recording to give context",
						},
					},
					Required: []string{"email"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ToolRecordUnknownQuestion,
				Description: DescriptionRecordUnknownQuestion,
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"question": {
							Type:        jsonschema.String,
							Description: "The question that couldn't be answered",
						},
					},
					Required: []string{"question"},
				},
			},
		},
	}
}
