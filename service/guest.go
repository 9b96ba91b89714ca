package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/service/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const inviteTimeout = 30 * time.Second

var csvHeader = []string{"Name", "Email", "Phone", "RSVP Status", "Meal Preference", "Group", "Table", "Notes"}

type GuestService struct {
	guests  ports.GuestRepo
	events  ports.EventRepo
	mailer  ports.Mailer
	appURL  string
	log     zerolog.Logger
	now     func() time.Time
	sending sync.WaitGroup
}

func NewGuestService(guests ports.GuestRepo, events ports.EventRepo, mailer ports.Mailer, appURL string, log zerolog.Logger) *GuestService {
	return &GuestService{
		guests: guests,
		events: events,
		mailer: mailer,
		appURL: strings.TrimRight(appURL, "/"),
		log:    log,
		now:    time.Now,
	}
}

func (s *GuestService) ownedEvent(ctx context.Context, userId, eventId uint) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, eventId)
	if err != nil {
		return nil, err
	}
	if event.UserId != userId {
		return nil, constants.ErrEventNotFound
	}
	return event, nil
}

func (s *GuestService) RSVPLink(token string) string {
	return fmt.Sprintf("%s/rsvp/%s", s.appURL, token)
}

// Create adds a guest and, when an email is given, sends the invitation in the background.
func (s *GuestService) Create(ctx context.Context, userId, eventId uint, input model.GuestInput) (*model.Guest, error) {
	event, err := s.ownedEvent(ctx, userId, eventId)
	if err != nil {
		return nil, err
	}
	guest := &model.Guest{
		EventId:    eventId,
		RSVPStatus: constants.RSVP_PENDING,
		RSVPToken:  uuid.NewString(),
	}
	applyGuestInput(guest, input)
	if err := s.guests.Create(ctx, guest); err != nil {
		return nil, err
	}
	if guest.Email != nil && *guest.Email != "" {
		s.sending.Add(1)
		go s.invite(*event, *guest)
	}
	return guest, nil
}

func (s *GuestService) invite(event model.Event, guest model.Guest) {
	defer s.sending.Done()
	ctx, cancel := context.WithTimeout(context.Background(), inviteTimeout)
	defer cancel()

	inv := ports.Invitation{
		To:        *guest.Email,
		GuestName: guest.Name,
		EventType: event.EventType,
		When:      describeSlot(&event),
		RSVPURL:   s.RSVPLink(guest.RSVPToken),
	}
	if event.VenueLocation != nil {
		inv.Location = *event.VenueLocation
	}
	if err := s.mailer.SendInvitation(ctx, inv); err != nil {
		s.log.Error().Err(err).Uint("guestId", guest.ID).Msg("invitation email failed")
		return
	}
	if err := s.guests.MarkInvited(ctx, guest.ID, s.now()); err != nil {
		s.log.Warn().Err(err).Uint("guestId", guest.ID).Msg("could not record invitation")
	}
}

// WaitInvitations blocks until background invitations have finished.
func (s *GuestService) WaitInvitations() {
	s.sending.Wait()
}

func describeSlot(event *model.Event) string {
	if event.DateFlexible || event.EventDate == nil {
		return "Date to be announced"
	}
	when := event.EventDate.Format("Monday, January 2, 2006")
	if event.EventTime != nil {
		when += " at " + *event.EventTime
	}
	return when
}

func applyGuestInput(guest *model.Guest, input model.GuestInput) {
	guest.Name = strings.TrimSpace(input.Name)
	guest.Email = input.Email
	guest.Phone = input.Phone
	guest.MealPreference = input.MealPreference
	guest.GroupLabel = input.GroupLabel
	guest.TableNumber = input.TableNumber
	guest.Notes = input.Notes
	if input.RSVPStatus != nil && *input.RSVPStatus != "" {
		guest.RSVPStatus = *input.RSVPStatus
	}
}

func (s *GuestService) List(ctx context.Context, userId, eventId uint, filter model.GuestFilter) ([]model.Guest, error) {
	if _, err := s.ownedEvent(ctx, userId, eventId); err != nil {
		return nil, err
	}
	return s.guests.List(ctx, eventId, filter)
}

func (s *GuestService) Get(ctx context.Context, userId, eventId, id uint) (*model.Guest, error) {
	if _, err := s.ownedEvent(ctx, userId, eventId); err != nil {
		return nil, err
	}
	return s.guests.GetByID(ctx, eventId, id)
}

func (s *GuestService) Update(ctx context.Context, userId, eventId, id uint, input model.GuestInput) (*model.Guest, error) {
	guest, err := s.Get(ctx, userId, eventId, id)
	if err != nil {
		return nil, err
	}
	previous := guest.RSVPStatus
	applyGuestInput(guest, input)
	if guest.RSVPStatus != previous && guest.RSVPStatus != constants.RSVP_PENDING {
		now := s.now()
		guest.RespondedAt = &now
	}
	if err := s.guests.Save(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

func (s *GuestService) Delete(ctx context.Context, userId, eventId, id uint) error {
	if _, err := s.ownedEvent(ctx, userId, eventId); err != nil {
		return err
	}
	return s.guests.Delete(ctx, eventId, id)
}

// Summarize counts guests by RSVP status.
func Summarize(guests []model.Guest) model.GuestSummary {
	summary := model.GuestSummary{Total: len(guests)}
	for _, g := range guests {
		switch g.RSVPStatus {
		case constants.RSVP_ATTENDING:
			summary.Attending++
		case constants.RSVP_DECLINED:
			summary.Declined++
		default:
			summary.Pending++
		}
	}
	return summary
}

func (s *GuestService) Summary(ctx context.Context, userId, eventId uint) (model.GuestSummary, error) {
	guests, err := s.List(ctx, userId, eventId, model.GuestFilter{})
	if err != nil {
		return model.GuestSummary{}, err
	}
	return Summarize(guests), nil
}

// WriteCSV writes guests as RFC 4180 CSV; fields holding commas, quotes or newlines are quoted.
func WriteCSV(w io.Writer, guests []model.Guest) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, g := range guests {
		table := ""
		if g.TableNumber != nil {
			table = strconv.Itoa(*g.TableNumber)
		}
		row := []string{
			g.Name,
			deref(g.Email),
			deref(g.Phone),
			g.RSVPStatus,
			deref(g.MealPreference),
			deref(g.GroupLabel),
			table,
			deref(g.Notes),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the event's guest list, optionally narrowed by filter, and returns the download name.
func (s *GuestService) ExportCSV(ctx context.Context, userId, eventId uint, filter model.GuestFilter, w io.Writer) (string, error) {
	status := ""
	if filter.RSVPStatus != nil {
		status = *filter.RSVPStatus
	}
	if status != "" && !slices.Contains(constants.RSVP_STATUSES, status) {
		return "", fmt.Errorf("%w: unknown rsvp status %q", constants.ErrValidation, status)
	}
	event, err := s.ownedEvent(ctx, userId, eventId)
	if err != nil {
		return "", err
	}
	guests, err := s.guests.List(ctx, eventId, filter)
	if err != nil {
		return "", err
	}
	if err := WriteCSV(w, guests); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	name := fmt.Sprintf("guests-%s", strings.ToLower(event.ReferenceCode))
	if status != "" {
		name += "-" + status
	}
	return name + ".csv", nil
}

func (s *GuestService) Invitation(ctx context.Context, token string) (*model.Invitation, error) {
	guest, err := s.guests.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return invitationOf(guest), nil
}

// Respond records a guest's answer from their RSVP link.
func (s *GuestService) Respond(ctx context.Context, token string, input model.RSVPInput) (*model.Invitation, error) {
	guest, err := s.guests.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	now := s.now()
	guest.RSVPStatus = input.RSVPStatus
	guest.RespondedAt = &now
	if input.MealPreference != nil {
		guest.MealPreference = input.MealPreference
	}
	if input.Notes != nil {
		guest.Notes = input.Notes
	}
	if err := s.guests.Save(ctx, guest); err != nil {
		return nil, err
	}
	return invitationOf(guest), nil
}

func invitationOf(guest *model.Guest) *model.Invitation {
	inv := &model.Invitation{GuestName: guest.Name, RSVPStatus: guest.RSVPStatus}
	if guest.Event != nil {
		inv.EventType = guest.Event.EventType
		inv.EventDate = guest.Event.EventDate
		inv.EventTime = guest.Event.EventTime
		inv.Location = guest.Event.VenueLocation
	}
	return inv
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
