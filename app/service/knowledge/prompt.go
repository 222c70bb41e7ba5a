package knowledge

import (
	"fmt"
	"strings"

	_ "embed"
)

//go:embed system_prompt.txt
var systemPromptTemplate string

// SystemPrompt renders the persona instructions with the grounding text
// baked in. Pure function of the loaded documents and the candidate name.
func (s *Service) SystemPrompt() string {
	templateValues := map[string]any{
		"name":     s.cfg.Candidate.Name,
		"summary":  s.summary,
		"profile":  s.profile,
		"projects": s.projects,
	}

	prompt := systemPromptTemplate
	for key, value := range templateValues {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", fmt.Sprint(value))
	}

	return prompt
}
