package knowledge

import (
	"careerchat/app/config"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
	"golang.org/x/sync/errgroup"
)

// Service holds the grounding text extracted from the candidate's documents.
// It is assembled once at startup and never mutated afterwards.
type Service struct {
	cfg *config.Config

	summary  string
	profile  string
	projects string
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	s := &Service{cfg: cfg}

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		text, err := extractPDFText(ctx, cfg.Candidate.ProfilePDF)
		s.profile = text
		return err
	})
	g.Go(func() error {
		text, err := extractPDFText(ctx, cfg.Candidate.ProjectsPDF)
		s.projects = text
		return err
	})
	g.Go(func() error {
		text, err := loadTextFile(ctx, cfg.Candidate.SummaryFile)
		s.summary = text
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, oops.Errorf("failed to load grounding documents: %w", err)
	}

	slog.Info("Loaded grounding documents",
		"summary_bytes", len(s.summary),
		"profile_bytes", len(s.profile),
		"projects_bytes", len(s.projects),
	)

	return s, nil
}

func extractPDFText(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat PDF %s: %w", path, err)
	}

	docs, err := documentloaders.NewPDF(file, info.Size()).Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}

	pages := pie.Map(docs, func(d schema.Document) string {
		return d.PageContent
	})

	text := strings.TrimSpace(strings.Join(pages, "\n"))
	if text == "" {
		return "", fmt.Errorf("no text extracted from %s", path)
	}

	return text, nil
}

func loadTextFile(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open text file %s: %w", path, err)
	}
	defer file.Close()

	docs, err := documentloaders.NewText(file).Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read text file %s: %w", path, err)
	}

	if len(docs) == 0 || strings.TrimSpace(docs[0].PageContent) == "" {
		return "", fmt.Errorf("text file %s is empty", path)
	}

	return docs[0].PageContent, nil
}
