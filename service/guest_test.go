package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/service/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGuestFixture(t *testing.T) (*GuestService, *fakeGuestRepo, *mockMailer, *model.Event) {
	t.Helper()
	events := newFakeEventRepo()
	guests := newFakeGuestRepo(events)
	mailer := &mockMailer{}
	venue := "Heritage Hall"
	event := &model.Event{UserId: 1, EventType: "Wedding", ReferenceCode: "EVT-ABCD1234", VenueLocation: &venue, DateFlexible: true}
	require.NoError(t, events.Create(context.Background(), event))
	svc := NewGuestService(guests, events, mailer, "https://book.example.com/", zerolog.Nop())
	return svc, guests, mailer, event
}

func strp(s string) *string { return &s }

func TestCreateGuestSendsInvitation(t *testing.T) {
	svc, guests, mailer, event := newGuestFixture(t)
	ctx := context.Background()

	mailer.On("SendInvitation", mock.Anything, mock.MatchedBy(func(inv ports.Invitation) bool {
		return inv.To == "ana@example.com" &&
			inv.GuestName == "Ana" &&
			inv.Location == "Heritage Hall" &&
			len(inv.RSVPURL) > len("https://book.example.com/rsvp/") &&
			inv.RSVPURL[:len("https://book.example.com/rsvp/")] == "https://book.example.com/rsvp/"
	})).Return(nil).Once()

	guest, err := svc.Create(ctx, 1, event.ID, model.GuestInput{Name: " Ana ", Email: strp("ana@example.com")})
	require.NoError(t, err)
	svc.WaitInvitations()

	assert.Equal(t, "Ana", guest.Name)
	assert.Equal(t, constants.RSVP_PENDING, guest.RSVPStatus)
	assert.NotEmpty(t, guest.RSVPToken)
	mailer.AssertExpectations(t)

	stored, err := guests.GetByID(ctx, event.ID, guest.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.InvitedAt)
}

func TestCreateGuestWithoutEmailSkipsInvitation(t *testing.T) {
	svc, _, mailer, event := newGuestFixture(t)

	_, err := svc.Create(context.Background(), 1, event.ID, model.GuestInput{Name: "Ben"})
	require.NoError(t, err)
	svc.WaitInvitations()
	mailer.AssertNotCalled(t, "SendInvitation", mock.Anything, mock.Anything)
}

func TestInvitationFailureDoesNotFailCreate(t *testing.T) {
	svc, guests, mailer, event := newGuestFixture(t)
	mailer.On("SendInvitation", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	guest, err := svc.Create(context.Background(), 1, event.ID, model.GuestInput{Name: "Cy", Email: strp("cy@example.com")})
	require.NoError(t, err)
	svc.WaitInvitations()

	stored, err := guests.GetByID(context.Background(), event.ID, guest.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.InvitedAt)
}

func TestGuestsAreScopedToOwner(t *testing.T) {
	svc, _, _, event := newGuestFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 2, event.ID, model.GuestInput{Name: "Intruder"})
	assert.ErrorIs(t, err, constants.ErrEventNotFound)
	_, err = svc.List(ctx, 2, event.ID, model.GuestFilter{})
	assert.ErrorIs(t, err, constants.ErrEventNotFound)
	_, err = svc.Summary(ctx, 2, event.ID)
	assert.ErrorIs(t, err, constants.ErrEventNotFound)
}

func TestSummaryCountsByStatus(t *testing.T) {
	svc, _, _, event := newGuestFixture(t)
	ctx := context.Background()
	for _, status := range []string{"attending", "attending", "declined", "pending"} {
		_, err := svc.Create(ctx, 1, event.ID, model.GuestInput{Name: "G", RSVPStatus: strp(status)})
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx, 1, event.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GuestSummary{Total: 4, Attending: 2, Declined: 1, Pending: 1}, summary)
}

func TestUpdateGuestStampsResponse(t *testing.T) {
	svc, _, _, event := newGuestFixture(t)
	ctx := context.Background()
	guest, err := svc.Create(ctx, 1, event.ID, model.GuestInput{Name: "Dee"})
	require.NoError(t, err)

	table := 4
	updated, err := svc.Update(ctx, 1, event.ID, guest.ID, model.GuestInput{Name: "Dee", RSVPStatus: strp("attending"), TableNumber: &table})
	require.NoError(t, err)
	assert.Equal(t, "attending", updated.RSVPStatus)
	assert.NotNil(t, updated.RespondedAt)
	assert.Equal(t, 4, *updated.TableNumber)

	require.NoError(t, svc.Delete(ctx, 1, event.ID, guest.ID))
	_, err = svc.Get(ctx, 1, event.ID, guest.ID)
	assert.ErrorIs(t, err, constants.ErrGuestNotFound)
}

func TestExportCSVQuotesFields(t *testing.T) {
	svc, _, _, event := newGuestFixture(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, 1, event.ID, model.GuestInput{Name: "A,B", Notes: strp(`says "hi"`)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, event.ID, model.GuestInput{Name: "Plain", RSVPStatus: strp("declined")})
	require.NoError(t, err)

	var buf bytes.Buffer
	name, err := svc.ExportCSV(ctx, 1, event.ID, model.GuestFilter{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, "guests-evt-abcd1234.csv", name)
	assert.Contains(t, buf.String(), `"A,B"`)
	assert.Contains(t, buf.String(), `"says ""hi"""`)

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, rows[1], len(csvHeader))
	assert.Equal(t, "A,B", rows[1][0])
	assert.Equal(t, `says "hi"`, rows[1][7])

	buf.Reset()
	declined := "declined"
	name, err = svc.ExportCSV(ctx, 1, event.ID, model.GuestFilter{RSVPStatus: &declined}, &buf)
	require.NoError(t, err)
	assert.Equal(t, "guests-evt-abcd1234-declined.csv", name)
	rows, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Plain", rows[1][0])

	buf.Reset()
	injected := `x"; filename="evil.sh`
	_, err = svc.ExportCSV(ctx, 1, event.ID, model.GuestFilter{RSVPStatus: &injected}, &buf)
	assert.ErrorIs(t, err, constants.ErrValidation)
	assert.Zero(t, buf.Len(), "nothing is written for an unknown status")
}

func TestRSVPByToken(t *testing.T) {
	svc, _, _, event := newGuestFixture(t)
	ctx := context.Background()
	guest, err := svc.Create(ctx, 1, event.ID, model.GuestInput{Name: "Eve"})
	require.NoError(t, err)

	inv, err := svc.Invitation(ctx, guest.RSVPToken)
	require.NoError(t, err)
	assert.Equal(t, "Eve", inv.GuestName)
	assert.Equal(t, "Wedding", inv.EventType)

	inv, err = svc.Respond(ctx, guest.RSVPToken, model.RSVPInput{RSVPStatus: "attending", MealPreference: strp("Fish")})
	require.NoError(t, err)
	assert.Equal(t, "attending", inv.RSVPStatus)

	stored, err := svc.Get(ctx, 1, event.ID, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fish", *stored.MealPreference)
	assert.NotNil(t, stored.RespondedAt)

	_, err = svc.Invitation(ctx, "nope")
	assert.ErrorIs(t, err, constants.ErrGuestNotFound)
}
