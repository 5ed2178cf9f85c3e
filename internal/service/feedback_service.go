package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/cafe-feedback/internal/config"
	"github.com/spec-kit/cafe-feedback/internal/domain"
	"github.com/spec-kit/cafe-feedback/internal/events"
	"github.com/spec-kit/cafe-feedback/internal/observability"
	"github.com/spec-kit/cafe-feedback/internal/relay"
	"github.com/spec-kit/cafe-feedback/internal/repository"
	apperrors "github.com/spec-kit/cafe-feedback/pkg/util/errorutil"
)

// SubmissionState names the workflow states. One submission may be in
// flight at a time; re-entrant attempts are rejected, not queued.
type SubmissionState string

const (
	StateIdle       SubmissionState = "IDLE"
	StateSubmitting SubmissionState = "SUBMITTING"
)

// Confirmation wording, one notice per attempt.
const (
	noticeRecorded = "Cảm ơn bạn đã đánh giá!"
	noticeRelayed  = "Gửi thành công lên Google Sheet!"
	noticeDegraded = "Đã lưu local nhưng KHÔNG gửi được lên Google Sheet."
)

// SubmissionInput carries one feedback event from the client.
type SubmissionInput struct {
	EmployeeID string
	Rating     int
	Comment    string
	OrderCode  string
	Source     string
	Device     string
}

// SubmissionResult reports the stored record, the relay outcome and
// the transient notice the client should display.
type SubmissionResult struct {
	Record          domain.FeedbackRecord
	Relayed         bool
	Notice          string
	NoticeTTLMillis int
}

// FeedbackService orchestrates validation, local persistence, remote
// relay and outcome messaging for feedback submissions.
type FeedbackService struct {
	store      repository.FeedbackStore
	roster     repository.RosterRepository
	relay      *relay.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	notices    config.NotificationConfig

	mu      sync.Mutex
	state   SubmissionState
	records []domain.FeedbackRecord

	now func() time.Time
}

// FeedbackDependencies encapsulates collaborators for the workflow.
type FeedbackDependencies struct {
	Store      repository.FeedbackStore
	Roster     repository.RosterRepository
	Relay      *relay.Client
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewFeedbackService constructs the workflow and hydrates the session
// cache from the store.
func NewFeedbackService(ctx context.Context, cfg config.NotificationConfig, deps FeedbackDependencies) *FeedbackService {
	s := &FeedbackService{
		store:      deps.Store,
		roster:     deps.Roster,
		relay:      deps.Relay,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		notices:    cfg,
		state:      StateIdle,
		now:        time.Now,
	}
	s.records = deps.Store.Load(ctx)
	return s
}

// State returns the current workflow state.
func (s *FeedbackService) State() SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Records returns a copy of the session's feedback collection.
func (s *FeedbackService) Records() []domain.FeedbackRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.FeedbackRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Submit runs one submission through the workflow. The local write
// always precedes the relay attempt, and a relay failure downgrades
// the notice without touching the stored record.
func (s *FeedbackService) Submit(ctx context.Context, input SubmissionInput) (*SubmissionResult, error) {
	if err := s.begin(ctx, input); err != nil {
		return nil, err
	}
	defer s.end()

	record := s.buildRecord(input)

	s.mu.Lock()
	s.records = append(s.records, record)
	snapshot := make([]domain.FeedbackRecord, len(s.records))
	copy(snapshot, s.records)
	s.mu.Unlock()

	if err := s.store.Save(ctx, snapshot); err != nil {
		// Non-fatal: the session cache stays authoritative and the
		// submission still completes.
		s.logger.Warn("feedback write-through failed", zap.Error(err))
	}

	s.publish(ctx, events.EventFeedbackSubmitted, events.FeedbackSubmittedPayload{Record: record})

	result := &SubmissionResult{
		Record:          record,
		Notice:          noticeRecorded,
		NoticeTTLMillis: s.notices.NoticeTTLMillis,
	}

	if s.relay.Enabled() {
		outcome := s.relay.Send(ctx, record)
		if outcome.Ok() {
			result.Relayed = true
			result.Notice = noticeRelayed
			s.metrics.RecordRelay("delivered")
			s.publish(ctx, events.EventRelayDelivered, events.RelayDeliveredPayload{
				EmployeeID: record.EmployeeID,
				Verified:   outcome.Verified,
			})
		} else {
			result.Notice = noticeDegraded
			result.NoticeTTLMillis = s.notices.DegradedTTLMillis
			s.metrics.RecordRelay("failed")
			s.logger.Warn("relay failed, record kept locally", zap.Error(outcome.Err))
			s.publish(ctx, events.EventRelayFailed, events.RelayFailedPayload{
				EmployeeID: record.EmployeeID,
				Reason:     outcome.Err.Error(),
			})
		}
	}

	return result, nil
}

// begin validates the transition guards and moves Idle -> Submitting.
func (s *FeedbackService) begin(ctx context.Context, input SubmissionInput) error {
	if input.EmployeeID == "" {
		return apperrors.NewValidationError("staff member required", nil)
	}
	if !domain.ValidRating(input.Rating) {
		return apperrors.NewValidationError("rating must be between 1 and 5", map[string]any{
			"rating": input.Rating,
		})
	}
	if !s.roster.Exists(ctx, input.EmployeeID) {
		return apperrors.NewNotFound("staff member", map[string]any{"employee_id": input.EmployeeID})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return apperrors.NewConflict("a submission is already in flight", nil)
	}
	s.state = StateSubmitting
	return nil
}

func (s *FeedbackService) end() {
	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}

func (s *FeedbackService) buildRecord(input SubmissionInput) domain.FeedbackRecord {
	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = domain.DefaultSource
	}
	device := strings.TrimSpace(input.Device)
	if device == "" {
		device = domain.DefaultDevice
	}
	return domain.FeedbackRecord{
		Timestamp:  s.now().UTC().Format(time.RFC3339),
		EmployeeID: input.EmployeeID,
		Rating:     input.Rating,
		Comment:    strings.TrimSpace(input.Comment),
		OrderCode:  strings.TrimSpace(input.OrderCode),
		Source:     source,
		Device:     device,
	}
}

func (s *FeedbackService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: s.now().UTC(),
		Payload:   payload,
	})
}
