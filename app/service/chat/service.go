package chat

import (
	"careerchat/app/config"
	"careerchat/app/service/knowledge"
	"careerchat/app/service/tools"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/sashabaranov/go-openai"
)

const (
	maxReasonDuration = 30 * time.Second

	apologyTransport = "I apologize, but I encountered a problem answering that. Please try again."
	apologyCapped    = "I apologize, but I'm having trouble processing your request. Please try again."
)

type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type toolExecutor interface {
	Dispatch(ctx context.Context, name, arguments string) string
	Definitions() []openai.Tool
}

// Service drives one user turn against the hosted model: send the
// conversation, execute any requested tool calls, feed the results back,
// repeat until the model answers in plain text or the iteration cap is hit.
type Service struct {
	client            completionClient
	tools             toolExecutor
	model             string
	systemPrompt      string
	maxToolIterations int
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	knowledgeSvc, err := do.Invoke[*knowledge.Service](di)
	if err != nil {
		return nil, oops.Errorf("failed to initialize knowledge: %w", err)
	}

	return newService(
		createClient(cfg.OpenAI),
		do.MustInvoke[*tools.Service](di),
		cfg.OpenAI.Model,
		knowledgeSvc.SystemPrompt(),
		cfg.Chat.MaxToolIterations,
	), nil
}

func newService(client completionClient, executor toolExecutor, model, systemPrompt string, maxToolIterations int) *Service {
	return &Service{
		client:            client,
		tools:             executor,
		model:             model,
		systemPrompt:      systemPrompt,
		maxToolIterations: maxToolIterations,
	}
}

func createClient(cfg config.OpenAI) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.Token)

	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
	}

	return openai.NewClientWithConfig(clientConfig)
}

// Chat runs one user turn. It never returns an error: transport failures and
// iteration-cap exhaustion degrade to an apology answer, and the prior
// history is carried over untouched either way.
func (s *Service) Chat(ctx context.Context, userText string, history []Message) *Turn {
	conversation := append(slices.Clone(history), Message{
		Role:    openai.ChatMessageRoleUser,
		Content: userText,
	})

	for iteration := 0; iteration < s.maxToolIterations; iteration++ {
		assistantMsg, err := s.complete(ctx, conversation)
		if err != nil {
			slog.Error("Chat completion failed", "error", err)
			return s.apologize(conversation, apologyTransport)
		}

		conversation = append(conversation, fromOpenAI(assistantMsg))

		if len(assistantMsg.ToolCalls) == 0 {
			return &Turn{Reply: assistantMsg.Content, History: conversation}
		}

		for _, tc := range assistantMsg.ToolCalls {
			slog.Info("Tool called", "tool", tc.Function.Name)

			result := s.tools.Dispatch(ctx, tc.Function.Name, tc.Function.Arguments)
			conversation = append(conversation, Message{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}

	slog.Warn("Tool iteration cap reached", "cap", s.maxToolIterations)

	return s.apologize(conversation, apologyCapped)
}

func (s *Service) complete(ctx context.Context, conversation []Message) (openai.ChatCompletionMessage, error) {
	// The system prompt always heads the model input and is never part of
	// the UI-visible history.
	messages := append(
		[]openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleSystem,
			Content: s.systemPrompt,
		}},
		toOpenAI(conversation)...,
	)

	ctx, cancel := context.WithTimeout(ctx, maxReasonDuration)
	defer cancel()

	response, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:    s.model,
			Messages: messages,
			Tools:    s.tools.Definitions(),
		},
	)
	if err != nil {
		return openai.ChatCompletionMessage{}, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(response.Choices) == 0 {
		return openai.ChatCompletionMessage{}, fmt.Errorf("no chat completion found")
	}

	return response.Choices[0].Message, nil
}

func (s *Service) apologize(conversation []Message, text string) *Turn {
	return &Turn{
		Reply: text,
		History: append(conversation, Message{
			Role:    openai.ChatMessageRoleAssistant,
			Content: text,
		}),
	}
}
