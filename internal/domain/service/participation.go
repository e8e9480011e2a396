package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pubquiz-fans/site/internal/domain/common/errorz"
	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/internal/domain/utils/location"
	"github.com/pubquiz-fans/site/internal/domain/utils/waitlist"
	"github.com/pubquiz-fans/site/pkg/logger/types"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type ParticipationStorage interface {
	Get(ctx context.Context, eventID, userID string) (*entity.EventParticipant, error)
	GetByEventID(ctx context.Context, eventID string) ([]entity.EventParticipant, error)
	SetStatus(ctx context.Context, eventParticipant *entity.EventParticipant) (*dto.ParticipationChange, error)
}

type participationEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

type promotionNotifier interface {
	NotifyPromotion(ctx context.Context, userID string, event entity.Event) (*entity.Notification, error)
}

type promotionPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type ParticipationService struct {
	logger *types.Logger

	storage      ParticipationStorage
	eventStorage participationEventStorage
	notifier     promotionNotifier
	publisher    promotionPublisher

	capacity int
}

// NewParticipationService creates the service. publisher may be nil when no broker is configured.
func NewParticipationService(
	logger *types.Logger,
	storage ParticipationStorage,
	eventStorage participationEventStorage,
	notifier promotionNotifier,
	publisher promotionPublisher,
	capacity int,
) *ParticipationService {
	return &ParticipationService{
		logger: logger,

		storage:      storage,
		eventStorage: eventStorage,
		notifier:     notifier,
		publisher:    publisher,

		capacity: capacity,
	}
}

// SetParticipation stores the answer of userID for eventID and notifies every
// substitute that got a seat because of it.
//
// Only the write of the answer decides the result. Notification and broker
// failures are logged.
func (s *ParticipationService) SetParticipation(ctx context.Context, eventID, userID string, status entity.ParticipationStatus, note *string) error {
	ctx, span := otel.Tracer("participation").Start(ctx, "SetParticipation", trace.WithAttributes(
		attribute.String("event.id", eventID),
		attribute.String("user.id", userID),
		attribute.String("participation.status", string(status)),
	))
	defer span.End()

	if eventID == "" || userID == "" {
		return errorz.ErrValidation
	}
	if !status.Valid() {
		return errorz.ErrInvalidStatus
	}

	change, err := s.storage.SetStatus(ctx, &entity.EventParticipant{
		EventID: eventID,
		UserID:  userID,
		Status:  status,
		Note:    normalizeNote(note),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "set status")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorz.ErrNotFound
		}
		return fmt.Errorf("failed to set participation: %w", err)
	}
	s.logger.Infof("(user: %s) set participation to %s (event_id=%s)", userID, status, eventID)

	promoted := waitlist.Promotions(
		waitlist.Partition(change.Before, s.capacity),
		waitlist.Partition(change.After, s.capacity),
	)
	span.SetAttributes(attribute.Int("participation.promoted", len(promoted)))

	for _, promotedID := range promoted {
		s.promote(ctx, promotedID, change.Event)
	}
	return nil
}

func (s *ParticipationService) promote(ctx context.Context, userID string, event entity.Event) {
	notification, err := s.notifier.NotifyPromotion(ctx, userID, event)
	if err != nil {
		s.logger.Errorf("(user: %s) failed to create promotion notification (event_id=%s): %v", userID, event.ID, err)
		return
	}
	s.logger.Infof("(user: %s) promoted to the line-up (event_id=%s)", userID, event.ID)

	if s.publisher == nil {
		return
	}
	err = s.publisher.PublishJSON(ctx, dto.PromotionRoutingKey, dto.Promotion{
		NotificationID: notification.ID,
		UserID:         userID,
		EventID:        event.ID,
		EventTitle:     event.Title,
		PromotedAt:     notification.CreatedAt,
	})
	if err != nil {
		s.logger.Errorf("(user: %s) failed to publish promotion (event_id=%s): %v", userID, event.ID, err)
	}
}

// Lineup returns the confirmed participants, the substitutes queue and the maybe answers of an event.
func (s *ParticipationService) Lineup(ctx context.Context, eventID string) (*dto.Lineup, error) {
	if _, err := s.eventStorage.Get(ctx, eventID); err != nil {
		return nil, notFound(err)
	}

	participants, err := s.storage.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	lineup := waitlist.Partition(participants, s.capacity)

	return &dto.Lineup{
		EventID:      eventID,
		Capacity:     s.capacity,
		Participants: dto.NewLineupEntries(lineup.Participants),
		Substitutes:  dto.NewLineupEntries(lineup.Substitutes),
		Maybe:        dto.NewLineupEntries(lineup.Maybe),
	}, nil
}

// Get returns the answer of userID for eventID.
func (s *ParticipationService) Get(ctx context.Context, eventID, userID string) (*entity.EventParticipant, error) {
	participant, err := s.storage.Get(ctx, eventID, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return participant, nil
}

// ExportLineupXLSX builds a spreadsheet with one row per going or maybe answer.
func (s *ParticipationService) ExportLineupXLSX(ctx context.Context, eventID string) (*bytes.Buffer, error) {
	event, err := s.eventStorage.Get(ctx, eventID)
	if err != nil {
		return nil, notFound(err)
	}
	participants, err := s.storage.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	lineup := waitlist.Partition(participants, s.capacity)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	_ = f.SetSheetName(sheet, "Line-up")
	sheet = "Line-up"

	_ = f.SetCellValue(sheet, "A1", event.Title)
	_ = f.SetCellValue(sheet, "A2", event.Date.In(location.Location()).Format("02.01.2006 15:04"))
	_ = f.SetCellValue(sheet, "B2", event.Venue)

	for i, header := range []string{"#", "Name", "Place", "Status", "Note", "Answered at"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		_ = f.SetCellValue(sheet, cell, header)
	}

	row := 5
	write := func(place string, p entity.EventParticipant) {
		note := ""
		if p.Note != nil {
			note = *p.Note
		}
		r := strconv.Itoa(row)
		_ = f.SetCellValue(sheet, "A"+r, row-4)
		_ = f.SetCellValue(sheet, "B"+r, p.User.DisplayName)
		_ = f.SetCellValue(sheet, "C"+r, place)
		_ = f.SetCellValue(sheet, "D"+r, string(p.Status))
		_ = f.SetCellValue(sheet, "E"+r, note)
		_ = f.SetCellValue(sheet, "F"+r, p.CreatedAt.In(location.Location()).Format("02.01.2006 15:04"))
		row++
	}
	for _, p := range lineup.Participants {
		write("line-up", p)
	}
	for _, p := range lineup.Substitutes {
		write("substitute", p)
	}
	for _, p := range lineup.Maybe {
		write("maybe", p)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

func normalizeNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// notFound maps gorm.ErrRecordNotFound to errorz.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorz.ErrNotFound
	}
	return err
}
