package leads

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/do"
)

const (
	leadsFile     = "leads.jsonl"
	questionsFile = "questions.jsonl"
)

// Service keeps a local record of contact leads and unanswered questions,
// one JSON object per line. The files are the durable copy; notifications
// on top of them are advisory.
type Service struct {
	mu      sync.Mutex
	dataDir string
}

func New(_ *do.Injector) (*Service, error) {
	return newService("data")
}

func newService(dataDir string) (*Service, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	return &Service{dataDir: dataDir}, nil
}

func (s *Service) AddLead(email, name, notes string) (*Lead, error) {
	lead := &Lead{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.appendLine(leadsFile, lead); err != nil {
		return nil, err
	}

	slog.Info("Recorded lead", "email", email)

	return lead, nil
}

func (s *Service) AddQuestion(question string) (*UnknownQuestion, error) {
	item := &UnknownQuestion{
		ID:        uuid.NewString(),
		Question:  question,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.appendLine(questionsFile, item); err != nil {
		return nil, err
	}

	slog.Info("Recorded unanswered question", "question", question)

	return item, nil
}

func (s *Service) Leads() ([]Lead, error) {
	return readLines[Lead](s, leadsFile)
}

func (s *Service) Questions() ([]UnknownQuestion, error) {
	return readLines[UnknownQuestion](s, questionsFile)
}

func (s *Service) appendLine(name string, item any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(filepath.Join(s.dataDir, name), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer file.Close()

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if _, err = file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	return nil
}

func readLines[T any](s *Service, name string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(filepath.Join(s.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer file.Close()

	result := make([]T, 0)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var item T
		if err = json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("failed to parse JSON line in %s: %w", name, err)
		}

		result = append(result, item)
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}

	return result, nil
}
