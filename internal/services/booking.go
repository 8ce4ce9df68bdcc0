package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"calbooking/internal/availability"
	"calbooking/internal/domain"
)

// roundRobinWindow is how far around a new booking the host load is counted.
const roundRobinWindow = 30 * 24 * time.Hour

const emailTimeLayout = "Monday, January 2, 2006 15:04"

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventTypeRepo  domain.EventTypeRepository
	userRepo       domain.UserRepository
	availability   domain.AvailabilityService
	locker         domain.SlotLocker
	emailService   domain.EmailService
	webhooks       domain.WebhookEmitter
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewBookingService creates a BookingService. emailService and webhooks may be nil.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventTypeRepo domain.EventTypeRepository,
	userRepo domain.UserRepository,
	availabilitySvc domain.AvailabilityService,
	locker domain.SlotLocker,
	emailService domain.EmailService,
	webhooks domain.WebhookEmitter,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventTypeRepo:  eventTypeRepo,
		userRepo:       userRepo,
		availability:   availabilitySvc,
		locker:         locker,
		emailService:   emailService,
		webhooks:       webhooks,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, in domain.CreateBookingInput) (*domain.BookingResult, error) {
	if in.RescheduleUID != "" {
		return s.Reschedule(ctx, in.RescheduleUID, domain.RescheduleInput{Start: in.Start})
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	ctx, span := tracer.Start(ctx, "booking.Create")
	defer span.End()

	attendee, err := validateAttendee(in.Attendee)
	if err != nil {
		return nil, err
	}
	if in.EventTypeID == "" {
		return nil, fmt.Errorf("%w: event_type_id is required", domain.ErrInvalidInput)
	}
	if in.Start.IsZero() {
		return nil, fmt.Errorf("%w: start is required", domain.ErrInvalidInput)
	}
	start := in.Start.UTC()
	span.SetAttributes(attribute.String("event_type.id", in.EventTypeID))

	et, err := s.eventType(ctx, in.EventTypeID)
	if err != nil {
		return nil, err
	}

	unlock := lockAll(s.locker, et.HostIDs())
	defer unlock()

	var (
		existing *domain.Booking
		slot     *availability.Slot
	)
	if et.IsSeated() {
		existing, slot, err = s.seatTarget(ctx, et, start, "")
	} else {
		slot, err = s.checkSlot(ctx, et, start, "")
	}
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.joinSeat(ctx, et, existing, attendee)
	}

	b, organizer, err := s.newBooking(ctx, et, slot, start, attendee.Name)
	if err != nil {
		return nil, err
	}
	b.Description = strings.TrimSpace(in.Description)
	if loc := strings.TrimSpace(in.Location); loc != "" {
		b.Location = loc
	}
	attendee.CreatedAt = b.CreatedAt
	if et.IsSeated() {
		seat := uuid.NewString()
		attendee.SeatReferenceUID = &seat
	}
	b.Attendees = []*domain.Attendee{attendee}
	b.AttendeeCount = 1

	if err := s.bookingRepo.Create(ctx, b); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrSlotUnavailable
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.logger.InfoContext(ctx, "booking created", "uid", b.UID, "event_type_id", et.ID, "status", b.Status)

	tmpl, trigger := createdNotice(b.Status)
	s.notify(ctx, tmpl, b, organizer, b.Attendees, true, "")
	s.emit(ctx, trigger, b, et)
	return &domain.BookingResult{Booking: b, Attendee: attendee}, nil
}

// joinSeat adds the attendee to an existing seated booking. The new seat
// shares the booking's status.
func (s *bookingService) joinSeat(ctx context.Context, et *domain.EventType, b *domain.Booking, attendee *domain.Attendee) (*domain.BookingResult, error) {
	seat := uuid.NewString()
	attendee.BookingID = b.ID
	attendee.SeatReferenceUID = &seat
	attendee.CreatedAt = s.now()
	if err := s.bookingRepo.AddAttendee(ctx, attendee); err != nil {
		return nil, fmt.Errorf("add attendee: %w", err)
	}
	b.Attendees = append(b.Attendees, attendee)
	b.AttendeeCount++
	s.logger.InfoContext(ctx, "seat booked", "uid", b.UID, "seats_taken", b.AttendeeCount)

	tmpl, trigger := createdNotice(b.Status)
	s.notify(ctx, tmpl, b, s.organizer(ctx, b), []*domain.Attendee{attendee}, false, "")
	s.emit(ctx, trigger, b, et)
	return &domain.BookingResult{Booking: b, Attendee: attendee}, nil
}

func (s *bookingService) Reschedule(ctx context.Context, uid string, in domain.RescheduleInput) (*domain.BookingResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	ctx, span := tracer.Start(ctx, "booking.Reschedule")
	defer span.End()

	if in.Start.IsZero() {
		return nil, fmt.Errorf("%w: start is required", domain.ErrInvalidInput)
	}
	start := in.Start.UTC()
	b, err := s.get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !b.Status.Active() {
		return nil, domain.ErrInvalidTransition
	}
	if !b.StartTime.After(s.now()) {
		return nil, fmt.Errorf("%w: past bookings cannot be rescheduled", domain.ErrInvalidInput)
	}
	if start.Equal(b.StartTime) {
		return nil, fmt.Errorf("%w: new start equals the current start", domain.ErrInvalidInput)
	}
	et, err := s.eventType(ctx, b.EventTypeID)
	if err != nil {
		return nil, err
	}

	unlock := lockAll(s.locker, et.HostIDs())
	defer unlock()

	if in.SeatReferenceUID != "" {
		return s.rescheduleSeat(ctx, et, b, start, in)
	}
	var slot *availability.Slot
	if et.IsSeated() {
		var target *domain.Booking
		target, slot, err = s.seatTarget(ctx, et, start, b.UID)
		if err != nil {
			return nil, err
		}
		if target != nil {
			return nil, fmt.Errorf("%w: another booking already starts at that time; reschedule seats individually", domain.ErrConflict)
		}
	} else {
		slot, err = s.checkSlot(ctx, et, start, b.UID)
		if err != nil {
			return nil, err
		}
	}

	next := &domain.Booking{
		UID:            uuid.NewString(),
		EventTypeID:    b.EventTypeID,
		Title:          b.Title,
		Description:    b.Description,
		Location:       b.Location,
		StartTime:      start,
		EndTime:        start.Add(et.Length()),
		Status:         initialStatus(et),
		FromReschedule: &b.UID,
		CreatedAt:      s.now(),
	}
	next.UpdatedAt = next.CreatedAt
	if et.SchedulingType == domain.SchedulingRoundRobin && contains(slot.HostIDs, b.UserID) {
		next.UserID, next.HostIDs = b.UserID, []string{b.UserID}
	} else {
		next.UserID, next.HostIDs, err = s.assignHosts(ctx, et, slot, start)
		if err != nil {
			return nil, err
		}
	}
	for _, a := range b.Attendees {
		next.Attendees = append(next.Attendees, &domain.Attendee{
			Name:             a.Name,
			Email:            a.Email,
			TimeZone:         a.TimeZone,
			SeatReferenceUID: a.SeatReferenceUID,
			CreatedAt:        next.CreatedAt,
		})
	}
	next.AttendeeCount = len(next.Attendees)

	b.CancellationReason = strings.TrimSpace(in.Reason)
	if err := s.bookingRepo.Reschedule(ctx, b, next); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("reschedule booking: %w", err)
	}
	b.Status = domain.BookingCancelled
	b.Rescheduled = true
	s.logger.InfoContext(ctx, "booking rescheduled", "from_uid", b.UID, "uid", next.UID)

	s.notify(ctx, domain.EmailBookingRescheduled, next, s.organizer(ctx, next), next.Attendees, true, b.CancellationReason)
	s.emit(ctx, domain.TriggerBookingRescheduled, next, et)
	return &domain.BookingResult{Booking: next}, nil
}

// rescheduleSeat moves one attendee of a seated booking to another slot,
// joining a booking already there or starting a new one.
func (s *bookingService) rescheduleSeat(ctx context.Context, et *domain.EventType, b *domain.Booking, start time.Time, in domain.RescheduleInput) (*domain.BookingResult, error) {
	seat := b.FindSeat(in.SeatReferenceUID)
	if seat == nil {
		return nil, domain.ErrNotFound
	}
	target, slot, err := s.seatTarget(ctx, et, start, "")
	if err != nil {
		return nil, err
	}
	if target == nil {
		target, _, err = s.newBooking(ctx, et, slot, start, seat.Name)
		if err != nil {
			return nil, err
		}
		target.Description = b.Description
		target.Location = b.Location
		target.FromReschedule = &b.UID
	}
	if err := s.bookingRepo.MoveAttendee(ctx, seat.ID, target); err != nil {
		return nil, fmt.Errorf("move attendee: %w", err)
	}
	seat.BookingID = target.ID
	target.Attendees = append(target.Attendees, seat)
	target.AttendeeCount++
	b.Attendees = removeAttendee(b.Attendees, seat.ID)
	b.AttendeeCount = len(b.Attendees)

	if b.AttendeeCount == 0 {
		if err := s.bookingRepo.TransitionStatus(ctx, b.ID, b.Status, domain.BookingCancelled, in.Reason); err != nil {
			s.logger.ErrorContext(ctx, "cancel emptied booking failed", "uid", b.UID, "err", err)
		}
	}
	s.logger.InfoContext(ctx, "seat rescheduled", "from_uid", b.UID, "uid", target.UID)

	s.notify(ctx, domain.EmailBookingRescheduled, target, s.organizer(ctx, target), []*domain.Attendee{seat}, false, in.Reason)
	s.emit(ctx, domain.TriggerBookingRescheduled, target, et)
	return &domain.BookingResult{Booking: target, Attendee: seat}, nil
}

func (s *bookingService) Cancel(ctx context.Context, uid string, in domain.CancelInput) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	b, err := s.get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(domain.BookingCancelled) {
		return nil, domain.ErrInvalidTransition
	}
	if !b.StartTime.After(s.now()) {
		return nil, fmt.Errorf("%w: past bookings cannot be cancelled", domain.ErrInvalidInput)
	}
	et, err := s.eventType(ctx, b.EventTypeID)
	if err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(in.Reason)
	organizer := s.organizer(ctx, b)

	if in.SeatReferenceUID != "" {
		seat := b.FindSeat(in.SeatReferenceUID)
		if seat == nil {
			return nil, domain.ErrNotFound
		}
		if len(b.Attendees) > 1 {
			if err := s.bookingRepo.DeleteAttendee(ctx, seat.ID); err != nil {
				return nil, fmt.Errorf("delete attendee: %w", err)
			}
			b.Attendees = removeAttendee(b.Attendees, seat.ID)
			b.AttendeeCount = len(b.Attendees)
			s.logger.InfoContext(ctx, "seat cancelled", "uid", b.UID, "cancelled_by", in.CancelledBy)
			s.notify(ctx, domain.EmailBookingCancelled, b, organizer, []*domain.Attendee{seat}, false, reason)
			s.emit(ctx, domain.TriggerBookingCancelled, b, et)
			return b, nil
		}
	}

	if err := s.bookingRepo.TransitionStatus(ctx, b.ID, b.Status, domain.BookingCancelled, reason); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrInvalidTransition
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	b.Status = domain.BookingCancelled
	b.CancellationReason = reason
	s.logger.InfoContext(ctx, "booking cancelled", "uid", b.UID, "cancelled_by", in.CancelledBy)

	s.notify(ctx, domain.EmailBookingCancelled, b, organizer, b.Attendees, true, reason)
	s.emit(ctx, domain.TriggerBookingCancelled, b, et)
	return b, nil
}

func (s *bookingService) Confirm(ctx context.Context, uid, actorID string) (*domain.Booking, error) {
	return s.decide(ctx, uid, actorID, domain.BookingAccepted, "")
}

func (s *bookingService) Reject(ctx context.Context, uid, actorID, reason string) (*domain.Booking, error) {
	return s.decide(ctx, uid, actorID, domain.BookingRejected, strings.TrimSpace(reason))
}

// decide moves a pending booking to accepted or rejected on behalf of one of its hosts.
func (s *bookingService) decide(ctx context.Context, uid, actorID string, to domain.BookingStatus, reason string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	b, err := s.get(ctx, uid)
	if err != nil {
		return nil, err
	}
	et, err := s.eventType(ctx, b.EventTypeID)
	if err != nil {
		return nil, err
	}
	if !b.HasHost(actorID) && et.UserID != actorID {
		return nil, domain.ErrForbidden
	}
	if !b.Status.CanTransitionTo(to) {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.bookingRepo.TransitionStatus(ctx, b.ID, b.Status, to, reason); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrInvalidTransition
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	b.Status = to

	tmpl, trigger := domain.EmailBookingConfirmed, domain.TriggerBookingConfirmed
	if to == domain.BookingRejected {
		b.RejectionReason = reason
		tmpl, trigger = domain.EmailBookingRejected, domain.TriggerBookingRejected
	}
	s.logger.InfoContext(ctx, "booking decided", "uid", b.UID, "status", to, "actor_id", actorID)
	s.notify(ctx, tmpl, b, s.organizer(ctx, b), b.Attendees, false, reason)
	s.emit(ctx, trigger, b, et)
	return b, nil
}

func (s *bookingService) Get(ctx context.Context, uid string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.get(ctx, uid)
}

func (s *bookingService) ListForUser(ctx context.Context, userID string, status domain.BookingStatus, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if status != "" && !status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	list, total, err := s.bookingRepo.ListByUser(ctx, userID, status, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	if list == nil {
		list = []*domain.Booking{}
	}
	return list, total, nil
}

func (s *bookingService) get(ctx context.Context, uid string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (s *bookingService) eventType(ctx context.Context, id string) (*domain.EventType, error) {
	et, err := s.eventTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get event type: %w", err)
	}
	return et, nil
}

// seatTarget checks a seated slot and returns the existing booking there that
// a new seat should join. The booking's host must be one of the slot's free
// hosts and have seats left; otherwise a nil booking means a new one is made.
// A slot that is gone because every booking at start is full is ErrSeatsFull.
func (s *bookingService) seatTarget(ctx context.Context, et *domain.EventType, start time.Time, excludeUID string) (*domain.Booking, *availability.Slot, error) {
	existing, err := s.bookingRepo.ListActiveAt(ctx, et.ID, start)
	if err != nil {
		return nil, nil, fmt.Errorf("list bookings at start: %w", err)
	}
	slot, err := s.checkSlot(ctx, et, start, excludeUID)
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) && allSeatsTaken(existing, et.SeatsPerTimeSlot, excludeUID) {
			return nil, nil, domain.ErrSeatsFull
		}
		return nil, nil, err
	}
	for _, b := range existing {
		if b.UID == excludeUID || b.AttendeeCount >= et.SeatsPerTimeSlot {
			continue
		}
		if contains(slot.HostIDs, b.UserID) {
			return b, slot, nil
		}
	}
	return nil, slot, nil
}

func allSeatsTaken(bookings []*domain.Booking, seats int, excludeUID string) bool {
	found := false
	for _, b := range bookings {
		if b.UID == excludeUID {
			continue
		}
		if b.AttendeeCount < seats {
			return false
		}
		found = true
	}
	return found
}

func (s *bookingService) checkSlot(ctx context.Context, et *domain.EventType, start time.Time, excludeUID string) (*availability.Slot, error) {
	slot, err := s.availability.CheckSlot(ctx, et, start, excludeUID)
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) || errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("check slot: %w", err)
	}
	return slot, nil
}

// newBooking builds an unsaved booking for the slot with hosts assigned.
func (s *bookingService) newBooking(ctx context.Context, et *domain.EventType, slot *availability.Slot, start time.Time, attendeeName string) (*domain.Booking, *domain.User, error) {
	userID, hostIDs, err := s.assignHosts(ctx, et, slot, start)
	if err != nil {
		return nil, nil, err
	}
	organizer, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get organizer: %w", err)
	}
	now := s.now()
	return &domain.Booking{
		UID:         uuid.NewString(),
		EventTypeID: et.ID,
		UserID:      userID,
		HostIDs:     hostIDs,
		Title:       fmt.Sprintf("%s between %s and %s", et.Title, organizer.Name, attendeeName),
		Location:    et.Location,
		StartTime:   start,
		EndTime:     start.Add(et.Length()),
		Status:      initialStatus(et),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, organizer, nil
}

// assignHosts returns the organizer and the hosts the booking occupies.
// Collective bookings occupy every host. Round robin picks the free host with
// the fewest active bookings of the event type around start, ties going to
// the host listed first.
func (s *bookingService) assignHosts(ctx context.Context, et *domain.EventType, slot *availability.Slot, start time.Time) (string, []string, error) {
	switch et.SchedulingType {
	case domain.SchedulingCollective:
		hosts := et.HostIDs()
		return hosts[0], append([]string(nil), hosts...), nil
	case domain.SchedulingRoundRobin:
		if len(slot.HostIDs) == 0 {
			return "", nil, domain.ErrSlotUnavailable
		}
		bookings, err := s.bookingRepo.ListActiveByEventTypeInRange(ctx, et.ID, start.Add(-roundRobinWindow), start.Add(roundRobinWindow))
		if err != nil {
			return "", nil, fmt.Errorf("list event type bookings: %w", err)
		}
		load := make(map[string]int)
		for _, b := range bookings {
			load[b.UserID]++
		}
		best := ""
		for _, host := range et.HostIDs() {
			if !contains(slot.HostIDs, host) {
				continue
			}
			if best == "" || load[host] < load[best] {
				best = host
			}
		}
		if best == "" {
			return "", nil, domain.ErrSlotUnavailable
		}
		return best, []string{best}, nil
	default:
		return et.UserID, []string{et.UserID}, nil
	}
}

func (s *bookingService) organizer(ctx context.Context, b *domain.Booking) *domain.User {
	u, err := s.userRepo.GetByID(ctx, b.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "load organizer failed", "uid", b.UID, "user_id", b.UserID, "err", err)
		return nil
	}
	return u
}

// notify emails the given attendees and, when toOrganizer is set, the
// organizer. Failures are logged and never fail the booking.
func (s *bookingService) notify(ctx context.Context, tmpl string, b *domain.Booking, organizer *domain.User, attendees []*domain.Attendee, toOrganizer bool, reason string) {
	if s.emailService == nil {
		return
	}
	organizerName := ""
	if organizer != nil {
		organizerName = organizer.Name
	}
	send := func(email, name, timeZone, seat string) {
		data := bookingEmailData(b, timeZone)
		data.RecipientEmail = email
		data.RecipientName = name
		data.OrganizerName = organizerName
		data.SeatReferenceUID = seat
		data.Reason = reason
		if len(attendees) > 0 {
			data.AttendeeName = attendees[0].Name
		}
		if err := s.emailService.SendBookingEmail(ctx, tmpl, data); err != nil {
			s.logger.WarnContext(ctx, "booking email failed", "template", tmpl, "uid", b.UID, "err", err)
		}
	}
	for _, a := range attendees {
		seat := ""
		if a.SeatReferenceUID != nil {
			seat = *a.SeatReferenceUID
		}
		send(a.Email, a.Name, a.TimeZone, seat)
	}
	if toOrganizer && organizer != nil {
		send(organizer.Email, organizer.Name, organizer.TimeZone, "")
	}
}

func (s *bookingService) emit(ctx context.Context, trigger domain.WebhookTrigger, b *domain.Booking, et *domain.EventType) {
	if s.webhooks == nil {
		return
	}
	s.webhooks.Emit(ctx, trigger, b, et)
}

func bookingEmailData(b *domain.Booking, timeZone string) *domain.BookingEmailData {
	loc, err := availability.LoadLocation(timeZone)
	if err != nil {
		loc = time.UTC
	}
	return &domain.BookingEmailData{
		Title:    b.Title,
		Start:    b.StartTime.In(loc).Format(emailTimeLayout),
		End:      b.EndTime.In(loc).Format(emailTimeLayout),
		TimeZone: loc.String(),
		Location: b.Location,
		UID:      b.UID,
	}
}

func validateAttendee(in domain.AttendeeInput) (*domain.Attendee, error) {
	a := &domain.Attendee{
		Name:     strings.TrimSpace(in.Name),
		Email:    normalizeEmail(in.Email),
		TimeZone: strings.TrimSpace(in.TimeZone),
	}
	if a.Name == "" {
		return nil, fmt.Errorf("%w: attendee name is required", domain.ErrInvalidInput)
	}
	if !emailRegexp.MatchString(a.Email) {
		return nil, fmt.Errorf("%w: invalid attendee email", domain.ErrInvalidInput)
	}
	if a.TimeZone == "" {
		a.TimeZone = "UTC"
	}
	if _, err := availability.LoadLocation(a.TimeZone); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return a, nil
}

func initialStatus(et *domain.EventType) domain.BookingStatus {
	if et.RequiresConfirmation {
		return domain.BookingPending
	}
	return domain.BookingAccepted
}

func createdNotice(status domain.BookingStatus) (string, domain.WebhookTrigger) {
	if status == domain.BookingPending {
		return domain.EmailBookingRequested, domain.TriggerBookingRequested
	}
	return domain.EmailBookingConfirmed, domain.TriggerBookingCreated
}

func removeAttendee(list []*domain.Attendee, id string) []*domain.Attendee {
	out := list[:0]
	for _, a := range list {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
