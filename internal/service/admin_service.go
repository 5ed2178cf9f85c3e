package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/cafe-feedback/internal/domain"
	"github.com/spec-kit/cafe-feedback/internal/repository"
)

// EnrichedRecord is one feedback record joined with its roster
// identity. Employee is the resolved display name, or the raw
// identifier when the id no longer resolves.
type EnrichedRecord struct {
	domain.FeedbackRecord
	Employee string
}

var exportColumns = []string{
	"timestamp",
	"employeeId",
	"employee",
	"rating",
	"comment",
	"orderCode",
	"source",
	"device",
}

// AdminService is the read/export surface over the persisted
// collection. It never writes.
type AdminService struct {
	store  repository.FeedbackStore
	roster repository.RosterRepository

	now func() time.Time
}

// NewAdminService constructs the service.
func NewAdminService(store repository.FeedbackStore, roster repository.RosterRepository) *AdminService {
	return &AdminService{store: store, roster: roster, now: time.Now}
}

// Resolve left-joins every stored record to the roster.
func (s *AdminService) Resolve(ctx context.Context) []EnrichedRecord {
	records := s.store.Load(ctx)
	out := make([]EnrichedRecord, 0, len(records))
	for _, r := range records {
		enriched := EnrichedRecord{FeedbackRecord: r, Employee: r.EmployeeID}
		if member, err := s.roster.GetByID(ctx, r.EmployeeID); err == nil {
			enriched.Employee = member.Name
		}
		out = append(out, enriched)
	}
	return out
}

// Filter narrows records by a case-insensitive substring match over
// resolved name, comment and order code. An empty query returns the
// full set.
func (s *AdminService) Filter(records []EnrichedRecord, query string) []EnrichedRecord {
	if query == "" {
		return records
	}
	k := strings.ToLower(query)
	filtered := make([]EnrichedRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Employee), k) ||
			strings.Contains(strings.ToLower(r.Comment), k) ||
			strings.Contains(strings.ToLower(r.OrderCode), k) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Query resolves and filters in one pass.
func (s *AdminService) Query(ctx context.Context, query string) []EnrichedRecord {
	return s.Filter(s.Resolve(ctx), query)
}

// ExportCSV serializes records as comma-separated text: a header row
// followed by one row per record, every data field double-quoted with
// internal quotes doubled. No trailing newline.
func (s *AdminService) ExportCSV(records []EnrichedRecord) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(exportColumns, ","))
	for _, r := range records {
		fields := []string{
			r.Timestamp,
			r.EmployeeID,
			r.Employee,
			strconv.Itoa(r.Rating),
			r.Comment,
			r.OrderCode,
			r.Source,
			r.Device,
		}
		b.WriteByte('\n')
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return []byte(b.String())
}

// ExportFilename is the date-stamped download name.
func (s *AdminService) ExportFilename() string {
	return "feedback_" + s.now().UTC().Format("2006-01-02") + ".csv"
}
