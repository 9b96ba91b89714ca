package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"event_planner/catalog"
	"event_planner/constants"
	"event_planner/model"
	"event_planner/service/ports"
	"event_planner/wizard"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

type EventService struct {
	events        ports.EventRepo
	notifications *NotificationService
	log           zerolog.Logger
}

func NewEventService(events ports.EventRepo, notifications *NotificationService, log zerolog.Logger) *EventService {
	return &EventService{events: events, notifications: notifications, log: log}
}

// NewReferenceCode returns a support code such as EVT-3F9A12BC.
func NewReferenceCode() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return constants.REFERENCE_PREFIX + strings.ToUpper(id[:8])
}

// Submit turns a finished wizard into a pending event for userId.
func (s *EventService) Submit(ctx context.Context, userId uint, form wizard.FormState) (*model.Event, error) {
	payload, err := prepare(form)
	if err != nil {
		return nil, err
	}
	event := &model.Event{
		UserId:        userId,
		ReferenceCode: NewReferenceCode(),
		Status:        constants.EVENT_PENDING,
	}
	payload.Apply(event)

	err = s.guarded(ctx, event, func(repo ports.EventRepo) error {
		return repo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("eventId", event.ID).Str("reference", event.ReferenceCode).Msg("event submitted")
	return event, nil
}

// Edit re-runs the wizard over an existing event of userId.
func (s *EventService) Edit(ctx context.Context, userId, id uint, form wizard.FormState) (*model.Event, error) {
	event, err := s.GetMine(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	payload, err := prepare(form)
	if err != nil {
		return nil, err
	}
	payload.Apply(event)

	err = s.guarded(ctx, event, func(repo ports.EventRepo) error {
		return repo.Save(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func prepare(form wizard.FormState) (wizard.Payload, error) {
	if err := wizard.Complete(&form); err != nil {
		return wizard.Payload{}, err
	}
	return wizard.Assemble(form)
}

// guarded writes event unless another event of the same user already holds its type, date and time.
// The count and the write share one locked transaction.
func (s *EventService) guarded(ctx context.Context, event *model.Event, write func(repo ports.EventRepo) error) error {
	if !event.HasFixedSlot() {
		return write(s.events)
	}
	key := model.DuplicateKey{
		UserId:    event.UserId,
		EventType: event.EventType,
		Date:      *event.EventDate,
		Time:      *event.EventTime,
		ExcludeId: event.ID,
	}
	return s.events.Atomic(ctx, key.String(), func(repo ports.EventRepo) error {
		count, err := repo.CountDuplicates(ctx, key)
		if err != nil {
			return err
		}
		if count > 0 {
			return constants.ErrDuplicateEvent
		}
		return write(repo)
	})
}

func (s *EventService) ListMine(ctx context.Context, userId uint, filter model.EventFilter) ([]model.Event, int64, error) {
	filter.UserId = &userId
	return s.events.List(ctx, filter)
}

// GetMine hides events of other users behind the not-found error.
func (s *EventService) GetMine(ctx context.Context, userId, id uint) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.UserId != userId {
		return nil, constants.ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) DeleteMine(ctx context.Context, userId, id uint) error {
	if _, err := s.GetMine(ctx, userId, id); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}

func (s *EventService) List(ctx context.Context, filter model.EventFilter) ([]model.Event, int64, error) {
	return s.events.List(ctx, filter)
}

func (s *EventService) Get(ctx context.Context, id uint) (*model.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *EventService) GetByReference(ctx context.Context, code string) (*model.Event, error) {
	return s.events.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

// SetStatus changes the booking status and tells the owner.
func (s *EventService) SetStatus(ctx context.Context, id uint, status string) (*model.Event, error) {
	if !slices.Contains(constants.EVENT_STATUSES, status) {
		return nil, fmt.Errorf("%w: unknown status %q", constants.ErrValidation, status)
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status == status {
		return event, nil
	}
	if err := s.events.UpdateColumns(ctx, id, map[string]any{"status": status}); err != nil {
		return nil, err
	}
	event.Status = status

	title := fmt.Sprintf("Booking %s is now %s", event.ReferenceCode, status)
	body := fmt.Sprintf("Your %s booking status changed to %s.", event.EventType, status)
	link := fmt.Sprintf("/dashboard/events/%d", event.ID)
	if _, err := s.notifications.Notify(ctx, event.UserId, constants.NOTIFY_EVENT_STATUS, title, body, &link); err != nil {
		s.log.Error().Err(err).Uint("eventId", id).Msg("status notification failed")
	}
	return event, nil
}

// SetPackage assigns a catalog package by name, or clears it with nil.
func (s *EventService) SetPackage(ctx context.Context, id uint, name *string) (*model.Event, error) {
	var value *string
	if name != nil && strings.TrimSpace(*name) != "" {
		pkg, ok := catalog.FindPackage(*name)
		if !ok {
			return nil, fmt.Errorf("%q: %w", *name, constants.ErrPackageNotFound)
		}
		value = &pkg.Name
	}
	if err := s.events.UpdateColumns(ctx, id, map[string]any{"package_name": value}); err != nil {
		return nil, err
	}
	return s.events.GetByID(ctx, id)
}

func (s *EventService) SetServices(ctx context.Context, id uint, ids []string) (*model.Event, error) {
	cleaned := make([]string, 0, len(ids))
	for _, sid := range ids {
		sid = strings.TrimSpace(sid)
		if sid != "" && !slices.Contains(cleaned, sid) {
			cleaned = append(cleaned, sid)
		}
	}
	if err := s.events.UpdateColumns(ctx, id, map[string]any{"service_ids": datatypes.JSONSlice[string](cleaned)}); err != nil {
		return nil, err
	}
	return s.events.GetByID(ctx, id)
}

func (s *EventService) Delete(ctx context.Context, id uint) error {
	return s.events.Delete(ctx, id)
}

// ConvertToGallery moves a finished event into the portfolio as a draft.
func (s *EventService) ConvertToGallery(ctx context.Context, id uint, input model.ConvertEventInput) (*model.GalleryItem, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reference := event.ReferenceCode
	item := &model.GalleryItem{
		Title:           strings.TrimSpace(input.Title),
		ClientNames:     strings.TrimSpace(input.ClientNames),
		Location:        input.Location,
		Style:           input.Style,
		Category:        input.Category,
		PackageName:     event.PackageName,
		ServiceIds:      event.ServiceIds,
		Images:          datatypes.JSONSlice[string]{},
		Status:          constants.GALLERY_DRAFT,
		SourceReference: &reference,
	}
	if item.Location == nil {
		item.Location = event.VenueLocation
	}
	if item.Category == nil {
		eventType := event.EventType
		item.Category = &eventType
	}
	if err := s.events.MoveToGallery(ctx, id, item); err != nil {
		return nil, err
	}
	s.log.Info().Uint("eventId", id).Uint("galleryId", item.ID).Msg("event moved to gallery")
	return item, nil
}

// RemindUpcoming notifies owners of live events taking place on day.
func (s *EventService) RemindUpcoming(ctx context.Context, day time.Time) (int, error) {
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	events, err := s.events.ListOnDate(ctx, date, []string{constants.EVENT_PENDING, constants.EVENT_CONFIRMED, constants.EVENT_ACTIVE})
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, e := range events {
		title := fmt.Sprintf("Your %s is coming up", e.EventType)
		body := fmt.Sprintf("Booking %s is scheduled for %s.", e.ReferenceCode, describeSlot(&e))
		link := fmt.Sprintf("/dashboard/events/%d", e.ID)
		if _, err := s.notifications.Notify(ctx, e.UserId, constants.NOTIFY_REMINDER, title, body, &link); err != nil {
			s.log.Error().Err(err).Uint("eventId", e.ID).Msg("reminder failed")
			continue
		}
		sent++
	}
	return sent, nil
}
