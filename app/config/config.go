package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log       Log       `yaml:"log"`
	Server    Server    `yaml:"server"`
	OpenAI    OpenAI    `yaml:"openai"`
	Candidate Candidate `yaml:"candidate"`
	Pushover  Pushover  `yaml:"pushover"`
	Chat      Chat      `yaml:"chat"`
	MCP       MCP       `yaml:"mcp"`
}

type OpenAI struct {
	// OpenAI-compatible base url
	BaseURL string `yaml:"base_url" example:"https://api.openai.com/v1" validate:"required"`
	// OpenAI token
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX" validate:"required"`
	// Model used to answer visitor questions
	Model string `yaml:"model" example:"gpt-4o-mini" validate:"required"`
}

type Candidate struct {
	// Name of the person the assistant represents
	Name string `yaml:"name" example:"Jane Doe" validate:"required"`
	// LinkedIn profile export
	ProfilePDF string `yaml:"profile_pdf" example:"resources/ProfileLinkedIn.pdf" validate:"required"`
	// LinkedIn projects export
	ProjectsPDF string `yaml:"projects_pdf" example:"resources/ProjectsLinkedIn.pdf" validate:"required"`
	// Free-form background summary
	SummaryFile string `yaml:"summary_file" example:"resources/summary.txt" validate:"required"`
}

type Pushover struct {
	// Pushover application token. Empty disables notifications.
	Token string `yaml:"token"`
	// Pushover user key. Empty disables notifications.
	User string `yaml:"user"`
}

type Server struct {
	// HTTP listen address
	Listen string `yaml:"listen" example:":8080" validate:"required"`
}

type Chat struct {
	// Maximum tool round-trips within a single user turn
	MaxToolIterations int `yaml:"max_tool_iterations" example:"10" validate:"required,min=1"`
}

type MCP struct {
	// Expose the recording tools over MCP
	Enabled bool `yaml:"enabled" example:"false"`
	// MCP HTTP listen address
	Listen string `yaml:"listen" example:":8091"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.OpenAI.BaseURL == "" {
		result.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if result.Server.Listen == "" {
		result.Server.Listen = ":8080"
	}
	if result.Candidate.ProfilePDF == "" {
		result.Candidate.ProfilePDF = filepath.Join("resources", "ProfileLinkedIn.pdf")
	}
	if result.Candidate.ProjectsPDF == "" {
		result.Candidate.ProjectsPDF = filepath.Join("resources", "ProjectsLinkedIn.pdf")
	}
	if result.Candidate.SummaryFile == "" {
		result.Candidate.SummaryFile = filepath.Join("resources", "summary.txt")
	}
	if result.Chat.MaxToolIterations == 0 {
		result.Chat.MaxToolIterations = 10
	}
	if result.MCP.Listen == "" {
		result.MCP.Listen = ":8091"
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
