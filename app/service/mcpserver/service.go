package mcpserver

import (
	"careerchat/app/config"
	"careerchat/app/service/tools"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

// Service exposes the recording tools over MCP so external agents can file
// leads and unanswered questions against the same sinks the chat uses.
type Service struct {
	cfg        *config.Config
	httpServer *server.StreamableHTTPServer
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)
	toolsSvc := do.MustInvoke[*tools.Service](di)

	mcpServer := server.NewMCPServer("careerchat", "1.0.0",
		server.WithToolCapabilities(false),
	)

	mcpServer.AddTool(
		mcp.NewTool(tools.ToolRecordUserDetails,
			mcp.WithDescription(tools.DescriptionRecordUserDetails),
			mcp.WithString("email", mcp.Required(), mcp.Description("The email address of this user")),
			mcp.WithString("name", mcp.Description("The user's name, if they provided it")),
			mcp.WithString("notes", mcp.Description("Any additional information about the conversation that's worth recording to give context")),
		),
		dispatchHandler(toolsSvc, tools.ToolRecordUserDetails),
	)

	mcpServer.AddTool(
		mcp.NewTool(tools.ToolRecordUnknownQuestion,
			mcp.WithDescription(tools.DescriptionRecordUnknownQuestion),
			mcp.WithString("question", mcp.Required(), mcp.Description("The question that couldn't be answered")),
		),
		dispatchHandler(toolsSvc, tools.ToolRecordUnknownQuestion),
	)

	return &Service{
		cfg:        cfg,
		httpServer: server.NewStreamableHTTPServer(mcpServer),
	}, nil
}

func dispatchHandler(toolsSvc *tools.Service, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		arguments, err := json.Marshal(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(toolsSvc.Dispatch(ctx, name, string(arguments))), nil
	}
}

func (s *Service) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("MCP server shutdown failed", "error", err)
		}
	}()

	slog.Info("MCP server listening", "addr", s.cfg.MCP.Listen)

	if err := s.httpServer.Start(s.cfg.MCP.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("MCP server stopped", "error", err)
	}
}
