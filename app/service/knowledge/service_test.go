package knowledge

import (
	"careerchat/app/config"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}

	return path
}

func TestLoadTextFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "summary.txt", "Seasoned backend engineer.\nLoves distributed systems.")

	text, err := loadTextFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "distributed systems") {
		t.Errorf("loaded text missing content: %q", text)
	}
}

func TestLoadTextFileMissing(t *testing.T) {
	_, err := loadTextFile(context.Background(), filepath.Join(t.TempDir(), "summary.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "summary.txt") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoadTextFileEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "summary.txt", "   \n")

	if _, err := loadTextFile(context.Background(), path); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestExtractPDFTextMissing(t *testing.T) {
	_, err := extractPDFText(context.Background(), filepath.Join(t.TempDir(), "ProfileLinkedIn.pdf"))
	if err == nil {
		t.Fatal("expected error for missing PDF")
	}
	if !strings.Contains(err.Error(), "ProfileLinkedIn.pdf") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestSystemPromptContainsKnowledge(t *testing.T) {
	s := &Service{
		cfg: &config.Config{
			Candidate: config.Candidate{Name: "Jane Doe"},
		},
		summary:  "Summary text about Jane",
		profile:  "Profile export text",
		projects: "Projects export text",
	}

	prompt := s.SystemPrompt()

	for _, want := range []string{
		"Jane Doe",
		"Summary text about Jane",
		"Profile export text",
		"Projects export text",
		"record_unknown_question",
		"record_user_details",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	for _, placeholder := range []string{"{name}", "{summary}", "{profile}", "{projects}"} {
		if strings.Contains(prompt, placeholder) {
			t.Errorf("prompt still contains placeholder %s", placeholder)
		}
	}
}

func TestSystemPromptDeterministic(t *testing.T) {
	s := &Service{
		cfg:      &config.Config{Candidate: config.Candidate{Name: "Jane Doe"}},
		summary:  "summary",
		profile:  "profile",
		projects: "projects",
	}

	if s.SystemPrompt() != s.SystemPrompt() {
		t.Error("expected identical prompts for identical inputs")
	}
}
