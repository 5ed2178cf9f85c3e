package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/cafe-feedback/internal/config"
	"github.com/spec-kit/cafe-feedback/internal/domain"
	"github.com/spec-kit/cafe-feedback/internal/events"
	"github.com/spec-kit/cafe-feedback/internal/repository"
)

// Default values for import rows with missing fields.
const importedRoleLabel = "Nhân viên"

// RosterService lists, searches and bulk-imports staff members.
type RosterService struct {
	roster     repository.RosterRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.RosterConfig

	now func() int64 // unix millis, swappable in tests
}

// NewRosterService constructs the service.
func NewRosterService(cfg config.RosterConfig, roster repository.RosterRepository, dispatcher events.Dispatcher, logger *zap.Logger) *RosterService {
	return &RosterService{
		roster:     roster,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		now:        nowMillis,
	}
}

// List returns roster members, optionally narrowed by a
// case-insensitive substring match on name or role.
func (s *RosterService) List(ctx context.Context, query string) []domain.StaffMember {
	members := s.roster.List(ctx)
	if query == "" {
		return members
	}
	k := strings.ToLower(query)
	filtered := make([]domain.StaffMember, 0, len(members))
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Name), k) || strings.Contains(strings.ToLower(m.Role), k) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// GetByID resolves one member.
func (s *RosterService) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	return s.roster.GetByID(ctx, id)
}

// ImportFrom parses line-oriented comma-separated staff rows and
// appends them to the roster. The format is positional
// name,role,avatarUrl with no support for quoted fields or embedded
// commas; missing fields fall back to placeholder values and no row
// is ever dropped for being malformed.
func (s *RosterService) ImportFrom(ctx context.Context, contents string) ([]domain.StaffMember, error) {
	rows := parseRosterRows(contents)
	if len(rows) == 0 {
		return nil, nil
	}

	batch := s.now()
	imported := make([]domain.StaffMember, 0, len(rows))
	for idx, row := range rows {
		member := domain.StaffMember{
			ID:        fmt.Sprintf("u_%d_%d", batch, idx),
			Name:      row[0],
			Role:      row[1],
			AvatarURL: row[2],
		}
		if member.Name == "" {
			member.Name = fmt.Sprintf("%s %d", importedRoleLabel, idx+1)
		}
		if member.Role == "" {
			member.Role = importedRoleLabel
		}
		if member.AvatarURL == "" {
			member.AvatarURL = s.cfg.FallbackAvatarURL
		}

		// Synthetic ids must never shadow an existing member.
		if s.roster.Exists(ctx, member.ID) {
			member.ID = fmt.Sprintf("u_%d_%d_%s", batch, idx, uuid.NewString()[:8])
		}
		if err := s.roster.Append(ctx, member); err != nil {
			return imported, err
		}
		imported = append(imported, member)
	}

	s.logger.Info("roster imported", zap.Int("added", len(imported)))
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventRosterImported,
			Timestamp: time.Now().UTC(),
			Payload:   events.RosterImportedPayload{Added: len(imported)},
		})
	}
	return imported, nil
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// parseRosterRows splits contents into trimmed (name, role, avatar)
// triples, skipping blank lines.
func parseRosterRows(contents string) [][3]string {
	lines := strings.Split(strings.ReplaceAll(contents, "\r\n", "\n"), "\n")
	rows := make([][3]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ",")
		var row [3]string
		for i := 0; i < 3 && i < len(parts); i++ {
			row[i] = strings.TrimSpace(parts[i])
		}
		rows = append(rows, row)
	}
	return rows
}
