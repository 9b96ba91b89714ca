package service

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/service/ports"

	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uint]*model.User
	nextId  uint
	failGet error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*model.User)}
}

func (r *fakeUserRepo) add(email, role string) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextId++
	u := &model.User{DTO: model.DTO{ID: r.nextId}, Email: email, FullName: email, Role: role}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return constants.ErrEmailTaken
		}
	}
	r.nextId++
	u.ID = r.nextId
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet != nil {
		return nil, r.failGet
	}
	u, ok := r.users[id]
	if !ok {
		return nil, constants.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, constants.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, _ model.UserFilter) ([]model.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uint, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return constants.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uint, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return constants.ErrUserNotFound
	}
	u.Password = hash
	return nil
}

type fakeResetCodeRepo struct {
	mu    sync.Mutex
	codes []*model.PasswordResetCode
}

func (r *fakeResetCodeRepo) Create(_ context.Context, code *model.PasswordResetCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	code.ID = uint(len(r.codes) + 1)
	code.CreatedAt = time.Now()
	r.codes = append(r.codes, code)
	return nil
}

func (r *fakeResetCodeRepo) Latest(_ context.Context, userId uint) (*model.PasswordResetCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.codes) - 1; i >= 0; i-- {
		c := r.codes[i]
		if c.UserId == userId && c.UsedAt == nil {
			cp := *c
			return &cp, nil
		}
	}
	return nil, constants.ErrInvalidRecoveryCode
}

func (r *fakeResetCodeRepo) MarkUsed(_ context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.codes {
		if c.ID == id {
			c.UsedAt = &at
		}
	}
	return nil
}

func (r *fakeResetCodeRepo) RecordFailure(_ context.Context, id uint, maxAttempts int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.codes {
		if c.ID == id && c.UsedAt == nil {
			c.Attempts++
			if c.Attempts >= maxAttempts {
				c.UsedAt = &at
			}
		}
	}
	return nil
}

func (r *fakeResetCodeRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.codes[:0]
	var removed int64
	for _, c := range r.codes {
		if c.ExpiresAt.Before(before) || c.UsedAt != nil {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	r.codes = kept
	return removed, nil
}

type fakeEventRepo struct {
	lock    sync.Mutex
	mu      sync.Mutex
	events  map[uint]*model.Event
	nextId  uint
	moved   []*model.GalleryItem
	guests  *fakeGuestRepo
	creates int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uint]*model.Event)}
}

func (r *fakeEventRepo) Atomic(_ context.Context, _ string, fn func(repo ports.EventRepo) error) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return fn(r)
}

func (r *fakeEventRepo) CountDuplicates(_ context.Context, key model.DuplicateKey) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.events {
		if e.ID == key.ExcludeId || e.DateFlexible || e.EventDate == nil || e.EventTime == nil {
			continue
		}
		if e.UserId == key.UserId && e.EventType == key.EventType &&
			e.EventDate.Format(constants.DATE_LAYOUT) == key.Date.Format(constants.DATE_LAYOUT) &&
			*e.EventTime == key.Time {
			n++
		}
	}
	return n, nil
}

func (r *fakeEventRepo) Create(_ context.Context, e *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextId++
	e.ID = r.nextId
	e.CreatedAt = time.Now()
	cp := *e
	r.events[e.ID] = &cp
	r.creates++
	return nil
}

func (r *fakeEventRepo) Save(_ context.Context, e *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; !ok {
		return constants.ErrEventNotFound
	}
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id uint) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, constants.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEventRepo) GetByReference(_ context.Context, code string) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.ReferenceCode == code {
			cp := *e
			return &cp, nil
		}
	}
	return nil, constants.ErrEventNotFound
}

func (r *fakeEventRepo) List(_ context.Context, filter model.EventFilter) ([]model.Event, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Event
	for _, e := range r.events {
		if filter.UserId != nil && e.UserId != *filter.UserId {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeEventRepo) UpdateColumns(_ context.Context, id uint, values map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return constants.ErrEventNotFound
	}
	for k, v := range values {
		switch k {
		case "status":
			e.Status = v.(string)
		case "package_name":
			e.PackageName = v.(*string)
		case "service_ids":
			e.ServiceIds = v.(datatypes.JSONSlice[string])
		}
	}
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return constants.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) MoveToGallery(_ context.Context, eventId uint, item *model.GalleryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[eventId]; !ok {
		return constants.ErrEventNotFound
	}
	item.ID = uint(len(r.moved) + 1)
	item.Slug = "moved"
	r.moved = append(r.moved, item)
	delete(r.events, eventId)
	if r.guests != nil {
		r.guests.deleteEvent(eventId)
	}
	return nil
}

func (r *fakeEventRepo) ListOnDate(_ context.Context, date time.Time, statuses []string) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Event
	for _, e := range r.events {
		if e.EventDate == nil || e.EventDate.Format(constants.DATE_LAYOUT) != date.Format(constants.DATE_LAYOUT) {
			continue
		}
		for _, s := range statuses {
			if e.Status == s {
				out = append(out, *e)
				break
			}
		}
	}
	return out, nil
}

type fakeGuestRepo struct {
	mu     sync.Mutex
	guests map[uint]*model.Guest
	nextId uint
	events *fakeEventRepo
}

func newFakeGuestRepo(events *fakeEventRepo) *fakeGuestRepo {
	r := &fakeGuestRepo{guests: make(map[uint]*model.Guest), events: events}
	events.guests = r
	return r
}

func (r *fakeGuestRepo) deleteEvent(eventId uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, g := range r.guests {
		if g.EventId == eventId {
			delete(r.guests, id)
		}
	}
}

func (r *fakeGuestRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.guests)
}

func (r *fakeGuestRepo) Create(_ context.Context, g *model.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextId++
	g.ID = r.nextId
	cp := *g
	r.guests[g.ID] = &cp
	return nil
}

func (r *fakeGuestRepo) GetByID(_ context.Context, eventId, id uint) (*model.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.guests[id]
	if !ok || g.EventId != eventId {
		return nil, constants.ErrGuestNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGuestRepo) GetByToken(ctx context.Context, token string) (*model.Guest, error) {
	r.mu.Lock()
	var found *model.Guest
	for _, g := range r.guests {
		if g.RSVPToken == token {
			cp := *g
			found = &cp
		}
	}
	r.mu.Unlock()
	if found == nil {
		return nil, constants.ErrGuestNotFound
	}
	if event, err := r.events.GetByID(ctx, found.EventId); err == nil {
		found.Event = event
	}
	return found, nil
}

func (r *fakeGuestRepo) List(_ context.Context, eventId uint, filter model.GuestFilter) ([]model.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Guest
	for _, g := range r.guests {
		if g.EventId != eventId {
			continue
		}
		if filter.RSVPStatus != nil && g.RSVPStatus != *filter.RSVPStatus {
			continue
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeGuestRepo) Save(_ context.Context, g *model.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.guests[g.ID]; !ok {
		return constants.ErrGuestNotFound
	}
	cp := *g
	cp.Event = nil
	r.guests[g.ID] = &cp
	return nil
}

func (r *fakeGuestRepo) Delete(_ context.Context, eventId, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.guests[id]
	if !ok || g.EventId != eventId {
		return constants.ErrGuestNotFound
	}
	delete(r.guests, id)
	return nil
}

func (r *fakeGuestRepo) MarkInvited(_ context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.guests[id]; ok {
		g.InvitedAt = &at
	}
	return nil
}

type fakeGalleryRepo struct {
	mu     sync.Mutex
	items  map[uint]*model.GalleryItem
	nextId uint
}

func newFakeGalleryRepo() *fakeGalleryRepo {
	return &fakeGalleryRepo{items: make(map[uint]*model.GalleryItem)}
}

func (r *fakeGalleryRepo) Create(_ context.Context, item *model.GalleryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextId++
	item.ID = r.nextId
	if item.Slug == "" {
		item.Slug = "item-" + string(rune('a'+r.nextId-1))
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeGalleryRepo) GetByID(_ context.Context, id uint) (*model.GalleryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, constants.ErrGalleryNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *fakeGalleryRepo) GetBySlug(_ context.Context, slug string) (*model.GalleryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.Slug == slug {
			cp := *item
			return &cp, nil
		}
	}
	return nil, constants.ErrGalleryNotFound
}

func (r *fakeGalleryRepo) List(_ context.Context, filter model.GalleryFilter) ([]model.GalleryItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.GalleryItem
	for _, item := range r.items {
		if filter.Status != nil && item.Status != *filter.Status {
			continue
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeGalleryRepo) Save(_ context.Context, item *model.GalleryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return constants.ErrGalleryNotFound
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeGalleryRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return constants.ErrGalleryNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeGalleryRepo) IncrementViews(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[id]; ok {
		item.Views++
	}
	return nil
}

func (r *fakeGalleryRepo) IncrementLikes(_ context.Context, id uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.Status != constants.GALLERY_PUBLISHED {
		return 0, constants.ErrGalleryNotFound
	}
	item.Likes++
	return item.Likes, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*model.Message
	users    *fakeUserRepo
	convs    int
}

func (r *fakeMessageRepo) Create(_ context.Context, m *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uint(len(r.messages) + 1)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	cp := *m
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *fakeMessageRepo) Thread(_ context.Context, userId uint) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Message
	for _, m := range r.messages {
		if m.UserId == userId {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, userId uint, senderRole string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.messages {
		if m.UserId == userId && m.SenderRole == senderRole && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) UnreadCount(_ context.Context, userId uint, senderRole string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.messages {
		if m.UserId == userId && m.SenderRole == senderRole && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) Conversations(ctx context.Context) ([]model.Conversation, error) {
	r.mu.Lock()
	r.convs++
	byUser := make(map[uint]*model.Conversation)
	for _, m := range r.messages {
		c, ok := byUser[m.UserId]
		if !ok {
			c = &model.Conversation{UserId: m.UserId}
			byUser[m.UserId] = c
		}
		if m.SenderRole == constants.SENDER_USER && !m.IsRead {
			c.UnreadCount++
		}
		if !m.CreatedAt.Before(c.LastMessageAt) {
			c.LastMessageAt = m.CreatedAt
			c.LastMessage = m.Content
		}
	}
	r.mu.Unlock()

	out := make([]model.Conversation, 0, len(byUser))
	for _, c := range byUser {
		if r.users != nil {
			if u, err := r.users.GetByID(ctx, c.UserId); err == nil {
				c.FullName, c.Email = u.FullName, u.Email
			}
		}
		out = append(out, *c)
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu    sync.Mutex
	items []*model.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = uint(len(r.items) + 1)
	cp := *n
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeNotificationRepo) forUser(userId uint) []model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Notification
	for _, n := range r.items {
		if n.UserId == userId {
			out = append(out, *n)
		}
	}
	return out
}

func (r *fakeNotificationRepo) List(_ context.Context, userId uint, _ model.Pagination) ([]model.Notification, int64, error) {
	out := r.forUser(userId)
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) UnreadCount(_ context.Context, userId uint) (int64, error) {
	var n int64
	for _, item := range r.forUser(userId) {
		if !item.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, userId, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ID == id && n.UserId == userId {
			n.IsRead, n.ReadAt = true, &at
			return nil
		}
	}
	return constants.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userId uint, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.items {
		if n.UserId == userId && !n.IsRead {
			n.IsRead, n.ReadAt = true, &at
			count++
		}
	}
	return count, nil
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendInvitation(ctx context.Context, inv ports.Invitation) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *mockMailer) SendRecoveryCode(ctx context.Context, to, name, code string) error {
	return m.Called(ctx, to, name, code).Error(0)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	args := m.Called(ctx, file, folder, publicID)
	return args.String(0), args.Error(1)
}
