package app

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smarthotel/internal/adapters/observability"
	"smarthotel/internal/domain"
)

// Step is the closed set of booking workflow states. Operations invoked from a
// step they are not defined for fail with ErrInvalidTransition instead of
// silently doing something.
type Step int

const (
	StepSearch Step = iota
	StepDetails
	StepPayment
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepSearch:
		return "search"
	case StepDetails:
		return "details"
	case StepPayment:
		return "payment"
	case StepSuccess:
		return "success"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// PaymentDraft is the in-progress payment input. It never reaches the network
// until Validate passes and the points are clamped.
type PaymentDraft struct {
	Method      domain.PaymentMethod
	UPI         domain.UPIDetails
	Card        domain.CardDetails
	PointsToUse int
}

func (d PaymentDraft) Validate() error {
	switch d.Method {
	case domain.PayUPI:
		return ValidateUPI(d.UPI.VPA)
	case domain.PayCard:
		return ValidateCard(d.Card)
	default:
		return fmt.Errorf("unknown payment method %q", d.Method)
	}
}

// BookingWorkflow drives one guest run of search, hotel details, booking
// creation, payment and confirmation. Derived quantities (nights, price, total)
// are recomputed from the inputs on every read, never cached.
//
// Concurrency: one outstanding mutating call at a time (busy flag); a repeated
// search supersedes the previous one via a generation counter, so a late
// response can never overwrite newer results.
type BookingWorkflow struct {
	explorer *Explorer
	backend  domain.Backend
	sessions *SessionService

	mu        sync.Mutex
	step      Step
	results   []domain.HotelSummary
	selected  *domain.HotelDetail
	roomType  domain.RoomType
	checkin   time.Time
	checkout  time.Time
	bookingID string
	payKey    string
	busy      bool
	searchGen uint64
}

func NewBookingWorkflow(explorer *Explorer, backend domain.Backend, sessions *SessionService) *BookingWorkflow {
	return &BookingWorkflow{
		explorer: explorer,
		backend:  backend,
		sessions: sessions,
		roomType: domain.RoomStandard,
	}
}

// ---- snapshots ----

func (w *BookingWorkflow) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *BookingWorkflow) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

func (w *BookingWorkflow) Results() []domain.HotelSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]domain.HotelSummary, len(w.results))
	copy(out, w.results)
	return out
}

func (w *BookingWorkflow) Selected() (domain.HotelDetail, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selected == nil {
		return domain.HotelDetail{}, false
	}
	return *w.selected, true
}

func (w *BookingWorkflow) BookingID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bookingID
}

// ---- inputs ----

func (w *BookingWorkflow) SetDates(checkin, checkout time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.checkin, w.checkout = checkin, checkout
}

func (w *BookingWorkflow) SetRoomType(rt domain.RoomType) error {
	if _, ok := domain.ParseRoomType(string(rt)); !ok {
		return fmt.Errorf("unknown room type %q", rt)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.roomType = rt
	return nil
}

// ---- derived values, recomputed on every read ----

func (w *BookingWorkflow) nightsLocked() int {
	if w.checkin.IsZero() || w.checkout.IsZero() {
		return 0
	}
	n := int(math.Ceil(w.checkout.Sub(w.checkin).Hours() / 24))
	if n < 0 {
		return 0
	}
	return n
}

func (w *BookingWorkflow) Nights() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nightsLocked()
}

func (w *BookingWorkflow) priceLocked() decimal.Decimal {
	if w.selected == nil {
		return decimal.Zero
	}
	offer, ok := w.selected.Rooms[w.roomType]
	if !ok {
		return decimal.Zero
	}
	return offer.Price
}

func (w *BookingWorkflow) PricePerNight() decimal.Decimal {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.priceLocked()
}

func (w *BookingWorkflow) totalLocked() decimal.Decimal {
	n := w.nightsLocked()
	if n <= 0 {
		return decimal.Zero
	}
	return w.priceLocked().Mul(decimal.NewFromInt(int64(n)))
}

func (w *BookingWorkflow) Total() decimal.Decimal {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.totalLocked()
}

// CanConfirm reports whether the book action is enabled: session present, hotel
// selected, nights positive, nothing outstanding.
func (w *BookingWorkflow) CanConfirm() bool {
	_, signedIn := w.sessions.Current()
	w.mu.Lock()
	defer w.mu.Unlock()
	return signedIn && w.step == StepDetails && w.selected != nil && w.nightsLocked() > 0 && !w.busy
}

// CanPay reports whether the pay action is enabled for a draft: payment step,
// booking created, draft valid, final amount non-negative, nothing outstanding.
func (w *BookingWorkflow) CanPay(draft PaymentDraft, availablePoints int) bool {
	_, signedIn := w.sessions.Current()
	w.mu.Lock()
	defer w.mu.Unlock()
	if !signedIn || w.step != StepPayment || w.bookingID == "" || w.busy {
		return false
	}
	if draft.Validate() != nil {
		return false
	}
	total := w.totalLocked()
	points := ClampPoints(draft.PointsToUse, availablePoints, total)
	return !FinalAmount(total, points).IsNegative()
}

// ---- transitions ----

// Search replaces the result set. A newer Search supersedes an in-flight one:
// the superseded call returns ErrStale and leaves state alone. An empty result
// set is a valid outcome, not an error.
func (w *BookingWorkflow) Search(ctx context.Context, q domain.HotelQuery) error {
	w.mu.Lock()
	if w.step != StepSearch {
		w.mu.Unlock()
		return fmt.Errorf("search from %s: %w", w.step, domain.ErrInvalidTransition)
	}
	w.searchGen++
	gen := w.searchGen
	w.busy = true
	w.mu.Unlock()

	res, err := w.explorer.SearchHotels(ctx, q)

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.searchGen {
		// a newer search owns the slot now; it will clear busy
		return domain.ErrStale
	}
	w.busy = false
	if err != nil {
		return fmt.Errorf("search hotels: %w", err)
	}
	w.results = res
	observability.ObserveTransition(StepSearch.String(), StepSearch.String())
	return nil
}

// OpenDetails moves search -> details once the detail fetch succeeds. On
// failure the workflow stays in search with no partial state change.
func (w *BookingWorkflow) OpenDetails(ctx context.Context, hotelID string) error {
	w.mu.Lock()
	if w.step != StepSearch {
		w.mu.Unlock()
		return fmt.Errorf("open details from %s: %w", w.step, domain.ErrInvalidTransition)
	}
	if w.busy {
		w.mu.Unlock()
		return domain.ErrRequestInFlight
	}
	w.busy = true
	w.mu.Unlock()

	h, err := w.explorer.GetHotel(ctx, hotelID)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = false
	if err != nil {
		return fmt.Errorf("load hotel %s: %w", hotelID, err)
	}
	w.selected = &h
	w.step = StepDetails
	observability.ObserveTransition(StepSearch.String(), StepDetails.String())
	return nil
}

// ConfirmBooking moves details -> payment by creating the booking. On failure
// the workflow stays in details and no booking id is retained.
func (w *BookingWorkflow) ConfirmBooking(ctx context.Context) error {
	sess, signedIn := w.sessions.Current()

	w.mu.Lock()
	if w.step != StepDetails {
		w.mu.Unlock()
		return fmt.Errorf("confirm booking from %s: %w", w.step, domain.ErrInvalidTransition)
	}
	if w.busy {
		w.mu.Unlock()
		return domain.ErrRequestInFlight
	}
	if !signedIn {
		w.mu.Unlock()
		return fmt.Errorf("confirm booking: %w", domain.ErrSignInRequired)
	}
	if w.selected == nil {
		w.mu.Unlock()
		return fmt.Errorf("confirm booking: no hotel selected")
	}
	nights := w.nightsLocked()
	if nights <= 0 {
		w.mu.Unlock()
		return fmt.Errorf("confirm booking: checkout must be after checkin")
	}
	req := domain.BookingRequest{
		HotelID:       w.selected.ID,
		UserEmail:     sess.User.Email,
		RoomType:      w.roomType,
		Checkin:       w.checkin.Format(domain.DateLayout),
		Checkout:      w.checkout.Format(domain.DateLayout),
		Nights:        nights,
		PricePerNight: w.priceLocked(),
		Total:         w.totalLocked(),
	}
	w.busy = true
	w.mu.Unlock()

	b, err := w.backend.CreateBooking(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = false
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	w.bookingID = b.ID
	// one idempotency key per booking: payment retries reuse it, so the backend
	// can collapse an accidental double submission
	w.payKey = uuid.NewString()
	w.step = StepPayment
	observability.ObserveTransition(StepDetails.String(), StepPayment.String())
	return nil
}

// Pay moves payment -> success. The draft must validate and the clamped final
// amount is checked before anything is sent. A second Pay while one is
// outstanding returns ErrRequestInFlight without issuing a request.
func (w *BookingWorkflow) Pay(ctx context.Context, draft PaymentDraft, availablePoints int) error {
	sess, signedIn := w.sessions.Current()

	w.mu.Lock()
	if w.step != StepPayment {
		w.mu.Unlock()
		return fmt.Errorf("pay from %s: %w", w.step, domain.ErrInvalidTransition)
	}
	if w.busy {
		w.mu.Unlock()
		return domain.ErrRequestInFlight
	}
	if !signedIn {
		w.mu.Unlock()
		return fmt.Errorf("pay: %w", domain.ErrSignInRequired)
	}
	if w.bookingID == "" {
		w.mu.Unlock()
		return fmt.Errorf("pay: no booking id: %w", domain.ErrInvalidTransition)
	}
	if err := draft.Validate(); err != nil {
		w.mu.Unlock()
		return err
	}
	total := w.totalLocked()
	points := ClampPoints(draft.PointsToUse, availablePoints, total)
	if FinalAmount(total, points).IsNegative() {
		// unreachable given the clamp, checked anyway
		w.mu.Unlock()
		return fmt.Errorf("pay: negative final amount")
	}
	var details any
	if draft.Method == domain.PayUPI {
		details = draft.UPI
	} else {
		details = draft.Card
	}
	req := domain.PaymentRequest{
		BookingID:         w.bookingID,
		UserEmail:         sess.User.Email,
		Amount:            total,
		Method:            draft.Method,
		Details:           details,
		LoyaltyPointsUsed: points,
		IdempotencyKey:    w.payKey,
	}
	w.busy = true
	w.mu.Unlock()

	_, err := w.backend.CreatePayment(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = false
	if err != nil {
		return fmt.Errorf("payment: %w", err)
	}
	w.step = StepSuccess
	observability.ObserveTransition(StepPayment.String(), StepSuccess.String())
	return nil
}

// BackToDetails abandons the in-progress payment draft. The booking id is kept;
// a payment retry must reuse it.
func (w *BookingWorkflow) BackToDetails() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepPayment {
		return fmt.Errorf("back to details from %s: %w", w.step, domain.ErrInvalidTransition)
	}
	w.step = StepDetails
	observability.ObserveTransition(StepPayment.String(), StepDetails.String())
	return nil
}

// BackToSearch leaves the detail view; the fetched detail is discarded, the
// result set stays.
func (w *BookingWorkflow) BackToSearch() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepDetails {
		return fmt.Errorf("back to search from %s: %w", w.step, domain.ErrInvalidTransition)
	}
	w.selected = nil
	w.step = StepSearch
	observability.ObserveTransition(StepDetails.String(), StepSearch.String())
	return nil
}

// Reset starts a fresh workflow instance after success (or abandonment),
// keeping only the last result set.
func (w *BookingWorkflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	from := w.step
	w.selected = nil
	w.bookingID = ""
	w.payKey = ""
	w.busy = false
	w.step = StepSearch
	observability.ObserveTransition(from.String(), StepSearch.String())
}
