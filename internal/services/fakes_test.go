package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"calbooking/internal/availability"
	"calbooking/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

const testTimeout = 5 * time.Second

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", f.nextID)
		f.nextID++
	}
	if u.TimeZone == "" {
		u.TimeZone = "UTC"
	}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email || existing.Username == u.Username {
			return domain.ErrDuplicateEmail
		}
	}
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SetDefaultSchedule(ctx context.Context, userID, scheduleID string) error {
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	id := scheduleID
	u.DefaultScheduleID = &id
	return nil
}

// fakeScheduleRepo is an in-memory ScheduleRepository for tests.
type fakeScheduleRepo struct {
	byID   map[string]*domain.Schedule
	nextID int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{byID: make(map[string]*domain.Schedule), nextID: 1}
}

func (f *fakeScheduleRepo) Create(ctx context.Context, s *domain.Schedule) error {
	s.ID = fmt.Sprintf("sched-%d", f.nextID)
	f.nextID++
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	f.byID[s.ID] = s
	return nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeScheduleRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Schedule, error) {
	var out []*domain.Schedule
	for _, s := range f.byID {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, s *domain.Schedule) error {
	if _, ok := f.byID[s.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[s.ID] = s
	return nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeEventTypeRepo is an in-memory EventTypeRepository for tests.
type fakeEventTypeRepo struct {
	byID   map[string]*domain.EventType
	nextID int
}

func newFakeEventTypeRepo() *fakeEventTypeRepo {
	return &fakeEventTypeRepo{byID: make(map[string]*domain.EventType), nextID: 1}
}

func (f *fakeEventTypeRepo) Create(ctx context.Context, et *domain.EventType) error {
	for _, existing := range f.byID {
		if existing.UserID == et.UserID && existing.Slug == et.Slug {
			return domain.ErrConflict
		}
	}
	if et.ID == "" {
		et.ID = fmt.Sprintf("et-%d", f.nextID)
		f.nextID++
	}
	f.byID[et.ID] = et
	return nil
}

func (f *fakeEventTypeRepo) GetByID(ctx context.Context, id string) (*domain.EventType, error) {
	if et, ok := f.byID[id]; ok {
		return et, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventTypeRepo) GetBySlug(ctx context.Context, userID, slug string) (*domain.EventType, error) {
	for _, et := range f.byID {
		if et.UserID == userID && et.Slug == slug {
			return et, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventTypeRepo) ListByUser(ctx context.Context, userID string) ([]*domain.EventType, error) {
	var out []*domain.EventType
	for _, et := range f.byID {
		if et.UserID == userID {
			out = append(out, et)
		}
	}
	return out, nil
}

func (f *fakeEventTypeRepo) Update(ctx context.Context, et *domain.EventType) error {
	if _, ok := f.byID[et.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[et.ID] = et
	return nil
}

func (f *fakeEventTypeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeTeamRepo is an in-memory TeamRepository for tests.
type fakeTeamRepo struct {
	teams       map[string]*domain.Team
	memberships map[string]*domain.Membership // key teamID/userID
	users       *fakeUserRepo
	nextID      int
}

func newFakeTeamRepo(users *fakeUserRepo) *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:       make(map[string]*domain.Team),
		memberships: make(map[string]*domain.Membership),
		users:       users,
		nextID:      1,
	}
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *domain.Team, ownerID string) error {
	for _, t := range f.teams {
		if t.Slug == team.Slug {
			return domain.ErrConflict
		}
	}
	team.ID = fmt.Sprintf("team-%d", f.nextID)
	f.nextID++
	f.teams[team.ID] = team
	f.memberships[team.ID+"/"+ownerID] = &domain.Membership{TeamID: team.ID, UserID: ownerID, Role: domain.RoleOwner, Accepted: true}
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	if t, ok := f.teams[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTeamRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Team, error) {
	var out []*domain.Team
	for _, m := range f.memberships {
		if m.UserID == userID {
			out = append(out, f.teams[m.TeamID])
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) AddMember(ctx context.Context, m *domain.Membership) error {
	key := m.TeamID + "/" + m.UserID
	if _, ok := f.memberships[key]; ok {
		return domain.ErrConflict
	}
	f.memberships[key] = m
	return nil
}

func (f *fakeTeamRepo) GetMembership(ctx context.Context, teamID, userID string) (*domain.Membership, error) {
	if m, ok := f.memberships[teamID+"/"+userID]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTeamRepo) ListMembers(ctx context.Context, teamID string) ([]*domain.TeamMember, error) {
	var out []*domain.TeamMember
	for _, m := range f.memberships {
		if m.TeamID != teamID {
			continue
		}
		tm := &domain.TeamMember{Membership: *m}
		if u, ok := f.users.byID[m.UserID]; ok {
			tm.Name, tm.Email, tm.Username = u.Name, u.Email, u.Username
		}
		out = append(out, tm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// fakeBookingRepo is an in-memory BookingRepository. It stores copies so that
// services only see changes they persisted.
type fakeBookingRepo struct {
	mu        sync.Mutex
	byUID     map[string]*domain.Booking
	nextID    int
	nextAttID int
	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byUID: make(map[string]*domain.Booking), nextID: 1, nextAttID: 1}
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	c := *b
	c.HostIDs = append([]string(nil), b.HostIDs...)
	c.Attendees = make([]*domain.Attendee, 0, len(b.Attendees))
	for _, a := range b.Attendees {
		ac := *a
		c.Attendees = append(c.Attendees, &ac)
	}
	c.AttendeeCount = len(c.Attendees)
	return &c
}

func (f *fakeBookingRepo) insert(b *domain.Booking) {
	b.ID = fmt.Sprintf("bk-%d", f.nextID)
	f.nextID++
	for _, a := range b.Attendees {
		a.ID = fmt.Sprintf("att-%d", f.nextAttID)
		f.nextAttID++
		a.BookingID = b.ID
	}
	f.byUID[b.UID] = cloneBooking(b)
}

func (f *fakeBookingRepo) byIDLocked(id string) *domain.Booking {
	for _, b := range f.byUID {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// seed stores b as-is, assigning IDs.
func (f *fakeBookingRepo) seed(b *domain.Booking) *domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insert(b)
	return b
}

func (f *fakeBookingRepo) stored(uid string) *domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.byUID[uid]; ok {
		return cloneBooking(b)
	}
	return nil
}

func (f *fakeBookingRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byUID)
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.insert(b)
	return nil
}

func (f *fakeBookingRepo) GetByUID(ctx context.Context, uid string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.byUID[uid]; ok {
		return cloneBooking(b), nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBookingRepo) ListActiveAt(ctx context.Context, eventTypeID string, start time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Booking, 0)
	for _, b := range f.byUID {
		if b.EventTypeID == eventTypeID && b.Status.Active() && b.StartTime.Equal(start) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		if len(out[i].ID) != len(out[j].ID) {
			return len(out[i].ID) < len(out[j].ID)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeBookingRepo) AddAttendee(ctx context.Context, a *domain.Attendee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.byIDLocked(a.BookingID)
	if b == nil {
		return domain.ErrNotFound
	}
	a.ID = fmt.Sprintf("att-%d", f.nextAttID)
	f.nextAttID++
	ac := *a
	b.Attendees = append(b.Attendees, &ac)
	b.AttendeeCount = len(b.Attendees)
	return nil
}

func (f *fakeBookingRepo) DeleteAttendee(ctx context.Context, attendeeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.byUID {
		for i, a := range b.Attendees {
			if a.ID == attendeeID {
				b.Attendees = append(b.Attendees[:i], b.Attendees[i+1:]...)
				b.AttendeeCount = len(b.Attendees)
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (f *fakeBookingRepo) TransitionStatus(ctx context.Context, id string, from, to domain.BookingStatus, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.byIDLocked(id)
	if b == nil {
		return domain.ErrNotFound
	}
	if b.Status != from {
		return domain.ErrConflict
	}
	b.Status = to
	switch to {
	case domain.BookingCancelled:
		b.CancellationReason = reason
	case domain.BookingRejected:
		b.RejectionReason = reason
	}
	return nil
}

func (f *fakeBookingRepo) Reschedule(ctx context.Context, prev, next *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old := f.byIDLocked(prev.ID)
	if old == nil {
		return domain.ErrNotFound
	}
	if !old.Status.Active() {
		return domain.ErrConflict
	}
	old.Status = domain.BookingCancelled
	old.Rescheduled = true
	old.CancellationReason = prev.CancellationReason
	f.insert(next)
	return nil
}

func (f *fakeBookingRepo) MoveAttendee(ctx context.Context, attendeeID string, target *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var moved *domain.Attendee
	for _, b := range f.byUID {
		for i, a := range b.Attendees {
			if a.ID == attendeeID {
				moved = a
				b.Attendees = append(b.Attendees[:i], b.Attendees[i+1:]...)
				b.AttendeeCount = len(b.Attendees)
				break
			}
		}
	}
	if moved == nil {
		return domain.ErrNotFound
	}
	if target.ID == "" {
		f.insert(target)
	}
	stored := f.byUID[target.UID]
	moved.BookingID = stored.ID
	stored.Attendees = append(stored.Attendees, moved)
	stored.AttendeeCount = len(stored.Attendees)
	return nil
}

func (f *fakeBookingRepo) ListActiveByHostsInRange(ctx context.Context, hostIDs []string, from, to time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Booking
	for _, b := range f.byUID {
		if !b.Status.Active() || !b.StartTime.Before(to) || !b.EndTime.After(from) {
			continue
		}
		for _, h := range hostIDs {
			if b.HasHost(h) {
				out = append(out, cloneBooking(b))
				break
			}
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListActiveByEventTypeInRange(ctx context.Context, eventTypeID string, from, to time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Booking
	for _, b := range f.byUID {
		if b.EventTypeID == eventTypeID && b.Status.Active() && b.StartTime.Before(to) && b.EndTime.After(from) {
			out = append(out, cloneBooking(b))
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByUser(ctx context.Context, userID string, status domain.BookingStatus, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*domain.Booking
	for _, b := range f.byUID {
		if b.HasHost(userID) && (status == "" || b.Status == status) {
			all = append(all, cloneBooking(b))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartTime.Before(all[j].StartTime) })
	total := len(all)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// fakeCredentialRepo is an in-memory CredentialRepository for tests.
type fakeCredentialRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Credential
	nextID  int
	listErr error
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{byID: make(map[string]*domain.Credential), nextID: 1}
}

func (f *fakeCredentialRepo) Create(ctx context.Context, c *domain.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = fmt.Sprintf("cred-%d", f.nextID)
	f.nextID++
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCredentialRepo) GetByID(ctx context.Context, id string) (*domain.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCredentialRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Credential
	for _, c := range f.byID {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCredentialRepo) ListValidByUsers(ctx context.Context, userIDs []string) ([]*domain.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Credential
	for _, c := range f.byID {
		if c.Invalid {
			continue
		}
		for _, id := range userIDs {
			if c.UserID == id {
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCredentialRepo) MarkInvalid(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Invalid = true
	return nil
}

func (f *fakeCredentialRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeProvider returns fixed busy ranges or an error.
type fakeProvider struct {
	mu    sync.Mutex
	busy  []availability.TimeRange
	err   error
	calls int
}

func (p *fakeProvider) BusyTimes(ctx context.Context, cred *domain.Credential, from, to time.Time) ([]availability.TimeRange, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return p.busy, nil
}

// fakeCalendars is a CalendarRegistry keyed by credential type.
type fakeCalendars struct {
	providers   map[string]domain.BusyTimeProvider
	validateErr error
}

func (f *fakeCalendars) Provider(credentialType string) (domain.BusyTimeProvider, bool) {
	p, ok := f.providers[credentialType]
	return p, ok
}

func (f *fakeCalendars) ValidateKey(credentialType string, key json.RawMessage) error {
	return f.validateErr
}

// fakeWebhookRepo is an in-memory WebhookRepository for tests.
type fakeWebhookRepo struct {
	mu         sync.Mutex
	byID       map[string]*domain.Webhook
	deliveries []*domain.WebhookDelivery
	nextID     int
	listErr    error
}

func newFakeWebhookRepo() *fakeWebhookRepo {
	return &fakeWebhookRepo{byID: make(map[string]*domain.Webhook), nextID: 1}
}

func (f *fakeWebhookRepo) Create(ctx context.Context, w *domain.Webhook) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.ID = fmt.Sprintf("wh-%d", f.nextID)
	f.nextID++
	f.byID[w.ID] = w
	return nil
}

func (f *fakeWebhookRepo) GetByID(ctx context.Context, id string) (*domain.Webhook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.byID[id]; ok {
		return w, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeWebhookRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Webhook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Webhook
	for _, w := range f.byID {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWebhookRepo) Update(ctx context.Context, w *domain.Webhook) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[w.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[w.ID] = w
	return nil
}

func (f *fakeWebhookRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeWebhookRepo) ListActiveForTrigger(ctx context.Context, userIDs []string, eventTypeID string, trigger domain.WebhookTrigger) ([]*domain.Webhook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Webhook
	for _, w := range f.byID {
		if !w.Active || !w.Subscribes(trigger) || !contains(userIDs, w.UserID) {
			continue
		}
		if w.EventTypeID == nil || *w.EventTypeID == eventTypeID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeWebhookRepo) RecordDelivery(ctx context.Context, d *domain.WebhookDelivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = fmt.Sprintf("del-%d", len(f.deliveries)+1)
	f.deliveries = append(f.deliveries, d)
	return nil
}

func (f *fakeWebhookRepo) ListDeliveries(ctx context.Context, webhookID string, limit int) ([]*domain.WebhookDelivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.WebhookDelivery
	for _, d := range f.deliveries {
		if d.WebhookID == webhookID && len(out) < limit {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeWebhookRepo) recorded() []*domain.WebhookDelivery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.WebhookDelivery(nil), f.deliveries...)
}

type sentEmail struct {
	template string
	to       string
	data     any
}

// fakeEmailService records what would have been sent.
type fakeEmailService struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{template: domain.EmailWelcome, to: data.Email, data: data})
	return f.err
}

func (f *fakeEmailService) SendBookingEmail(ctx context.Context, templateName string, data *domain.BookingEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{template: templateName, to: data.RecipientEmail, data: data})
	return f.err
}

func (f *fakeEmailService) recipients(template string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, s := range f.sent {
		if s.template == template {
			out = append(out, s.to)
		}
	}
	sort.Strings(out)
	return out
}

type emitted struct {
	trigger domain.WebhookTrigger
	uid     string
	status  domain.BookingStatus
}

// fakeEmitter records emitted webhook triggers.
type fakeEmitter struct {
	mu     sync.Mutex
	events []emitted
}

func (f *fakeEmitter) Emit(ctx context.Context, trigger domain.WebhookTrigger, b *domain.Booking, et *domain.EventType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, emitted{trigger: trigger, uid: b.UID, status: b.Status})
}

func (f *fakeEmitter) triggers() []domain.WebhookTrigger {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.WebhookTrigger, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.trigger)
	}
	return out
}

// fakeDeliverer returns a canned delivery.
type fakeDeliverer struct {
	trigger domain.WebhookTrigger
	payload map[string]any
}

func (f *fakeDeliverer) Deliver(ctx context.Context, w *domain.Webhook, trigger domain.WebhookTrigger, payload map[string]any) *domain.WebhookDelivery {
	f.trigger = trigger
	f.payload = payload
	return &domain.WebhookDelivery{WebhookID: w.ID, Trigger: trigger, Attempts: 1, StatusCode: 200, Success: true}
}

var errBoom = errors.New("boom")
