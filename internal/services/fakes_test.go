package services

import (
	"context"
	"sync"
	"time"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/chachabrian/covoit-backend/internal/models"
	"github.com/chachabrian/covoit-backend/internal/queue"
	"github.com/chachabrian/covoit-backend/pkg/utils"
)

// memTrips mirrors the guarded UPDATEs of the trip repository.
type memTrips struct {
	mu    sync.Mutex
	trips map[uint]*models.Trip
}

func newMemTrips(trips ...models.Trip) *memTrips {
	m := &memTrips{trips: map[uint]*models.Trip{}}
	for i := range trips {
		t := trips[i]
		m.trips[t.ID] = &t
	}
	return m
}

func (m *memTrips) Get(ctx context.Context, id uint) (*models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok {
		return nil, domain.NotFound("trip")
	}
	cp := *t
	return &cp, nil
}

func (m *memTrips) DecrementSeats(ctx context.Context, id uint, seats int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok || t.AvailableSeats < seats {
		return false, nil
	}
	t.AvailableSeats -= seats
	return true, nil
}

func (m *memTrips) IncrementSeats(ctx context.Context, id uint, seats int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok {
		return false, nil
	}
	t.AvailableSeats += seats
	if t.AvailableSeats > t.TotalSeats {
		t.AvailableSeats = t.TotalSeats
	}
	return true, nil
}

func (m *memTrips) available(id uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trips[id].AvailableSeats
}

// memBookings enforces the same partial unique indexes as the database.
type memBookings struct {
	mu        sync.Mutex
	next      uint
	bookings  map[uint]*models.Booking
	trips     *memTrips
	createErr error
	// beforeCreate runs ahead of every insert.
	beforeCreate func()
}

func newMemBookings(trips *memTrips) *memBookings {
	return &memBookings{bookings: map[uint]*models.Booking{}, trips: trips}
}

func (m *memBookings) Create(ctx context.Context, b *models.Booking) error {
	if m.beforeCreate != nil {
		m.beforeCreate()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, o := range m.bookings {
		if o.PassengerID == b.PassengerID && o.DriverID == b.DriverID && o.Status.IsActive() {
			return domain.New(domain.CodeDuplicateActiveRequest, "duplicate")
		}
	}
	m.next++
	b.ID = m.next
	b.CreatedAt = time.Now()
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *memBookings) Get(ctx context.Context, id uint) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, domain.NotFound("booking")
	}
	cp := *b
	return &cp, nil
}

func (m *memBookings) GetWithTrip(ctx context.Context, id uint) (*models.Booking, error) {
	b, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.trips != nil {
		if t, err := m.trips.Get(ctx, b.TripID); err == nil {
			b.Trip = t
		}
	}
	return b, nil
}

func (m *memBookings) HasActive(ctx context.Context, passengerID, driverID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.PassengerID == passengerID && b.DriverID == driverID && b.Status.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookings) Transition(ctx context.Context, id uint, from models.BookingStatus, u models.BookingUpdate) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	if u.ConfirmationCode != nil {
		for _, o := range m.bookings {
			if o.ID != id && o.Status == models.BookingStatusPaid && o.ConfirmationCode != nil && *o.ConfirmationCode == *u.ConfirmationCode {
				return false, domain.ErrCodeInUse
			}
		}
		code := *u.ConfirmationCode
		b.ConfirmationCode = &code
	}
	b.Status = u.Status
	if u.PaidAt != nil {
		b.PaidAt = u.PaidAt
	}
	if u.ConfirmedAt != nil {
		b.ConfirmedAt = u.ConfirmedAt
	}
	if u.CompletedAt != nil {
		b.CompletedAt = u.CompletedAt
	}
	if u.CancelledAt != nil {
		b.CancelledAt = u.CancelledAt
	}
	return true, nil
}

func (m *memBookings) ListForParty(ctx context.Context, userID uint) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for id := uint(1); id <= m.next; id++ {
		if b, ok := m.bookings[id]; ok && b.IsParty(userID) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookings) put(b models.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID > m.next {
		m.next = b.ID
	}
	m.bookings[b.ID] = &b
}

func (m *memBookings) status(id uint) models.BookingStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id].Status
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, n *models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, *n)
}

func (r *recordingNotifier) types(userID uint) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.sent {
		if n.UserID == userID {
			out = append(out, n.Type)
		}
	}
	return out
}

type recordingEvents struct {
	mu     sync.Mutex
	events []queue.BookingEvent
	err    error
}

func (r *recordingEvents) PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recordingEvents) typesList() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

type memMessages struct {
	mu   sync.Mutex
	next uint
	msgs []models.Message
}

func (m *memMessages) Create(ctx context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	msg.ID = m.next
	m.msgs = append(m.msgs, *msg)
	return nil
}

func (m *memMessages) ListByBooking(ctx context.Context, bookingID uint) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Message
	for _, msg := range m.msgs {
		if msg.BookingID == bookingID {
			out = append(out, msg)
		}
	}
	return out, nil
}

type memWallets struct {
	lines   []utils.EarningLine
	wallets map[uint]*models.Wallet
}

func (m *memWallets) CompletedEarnings(ctx context.Context, driverID uint) ([]utils.EarningLine, error) {
	return m.lines, nil
}

func (m *memWallets) Upsert(ctx context.Context, userID uint, balance int64, at time.Time) (*models.Wallet, error) {
	if m.wallets == nil {
		m.wallets = map[uint]*models.Wallet{}
	}
	w := &models.Wallet{UserID: userID, Balance: balance, UpdatedAt: at}
	m.wallets[userID] = w
	return w, nil
}

func (m *memWallets) Get(ctx context.Context, userID uint) (*models.Wallet, error) {
	if w, ok := m.wallets[userID]; ok {
		return w, nil
	}
	return &models.Wallet{UserID: userID}, nil
}

type memStorage struct {
	objects map[string][]byte
}

func (m *memStorage) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = body
	return "mem://" + key, nil
}

const (
	driverID    uint = 10
	passengerID uint = 20
	otherUserID uint = 30
)

func newTrip(id uint, total, available int) models.Trip {
	t := models.Trip{
		DriverID:       driverID,
		Origin:         "Lyon",
		Destination:    "Grenoble",
		DepartureDate:  "2026-11-02",
		DepartureTime:  "08:30",
		PricePerSeat:   1250,
		TotalSeats:     total,
		AvailableSeats: available,
	}
	t.ID = id
	return t
}

type engine struct {
	trips    *memTrips
	bookings *memBookings
	notifier *recordingNotifier
	events   *recordingEvents
	ledger   *BookingLedger
	payments *PaymentHandshake
}

func newEngine(trips ...models.Trip) *engine {
	e := &engine{
		trips:    newMemTrips(trips...),
		notifier: &recordingNotifier{},
		events:   &recordingEvents{},
	}
	e.bookings = newMemBookings(e.trips)
	e.ledger = NewBookingLedger(NewTripInventory(e.trips), e.bookings, e.notifier, e.events)
	e.payments = NewPaymentHandshake(e.bookings, e.notifier, e.events)
	return e
}

func (m *memTrips) Create(ctx context.Context, t *models.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uint(len(m.trips) + 1)
	cp := *t
	m.trips[t.ID] = &cp
	return nil
}

func (m *memTrips) ListAvailable(ctx context.Context, limit int) ([]models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Trip
	for id := uint(1); id <= uint(len(m.trips)); id++ {
		if t, ok := m.trips[id]; ok && t.AvailableSeats > 0 {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTrips) ListByDriver(ctx context.Context, driverID uint) ([]models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Trip
	for id := uint(1); id <= uint(len(m.trips)); id++ {
		if t, ok := m.trips[id]; ok && t.DriverID == driverID {
			out = append(out, *t)
		}
	}
	return out, nil
}
