package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spec-kit/cafe-feedback/internal/domain"
)

// fileStore keeps the collection in a JSON document on local disk,
// keyed the same way the other backends key it, e.g.
//
//	{"cafe_staff_feedback_v1": [ ...records... ]}
type fileStore struct {
	path   string
	key    string
	logger *zap.Logger
}

// NewFileStore returns a file-backed FeedbackStore writing to path
// under the given storage key.
func NewFileStore(path, key string, logger *zap.Logger) FeedbackStore {
	return &fileStore{path: path, key: key, logger: logger}
}

func (s *fileStore) Load(_ context.Context) []domain.FeedbackRecord {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("feedback file unreadable", zap.String("path", s.path), zap.Error(err))
		}
		return []domain.FeedbackRecord{}
	}

	doc := map[string][]domain.FeedbackRecord{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("feedback file corrupt, starting empty", zap.String("path", s.path), zap.Error(err))
		return []domain.FeedbackRecord{}
	}

	records, ok := doc[s.key]
	if !ok || records == nil {
		return []domain.FeedbackRecord{}
	}
	return records
}

func (s *fileStore) Save(_ context.Context, records []domain.FeedbackRecord) error {
	if records == nil {
		records = []domain.FeedbackRecord{}
	}
	raw, err := json.Marshal(map[string][]domain.FeedbackRecord{s.key: records})
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	// Write-then-rename so a failed write never clobbers the previous
	// document.
	tmp, err := os.CreateTemp(dir, ".feedback-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write feedback: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace feedback file: %w", err)
	}
	return nil
}

func (s *fileStore) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store dir unavailable: %w", err)
	}
	return nil
}
