package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"smarthotel/internal/app"
	"smarthotel/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func signedInSessions(t *testing.T) *app.SessionService {
	t.Helper()
	s := app.NewSessionService(&memStore{})
	if err := s.SignIn("tok", domain.User{Email: "guest@example.com", Role: domain.RoleGuest}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	return s
}

func testHotel() domain.HotelDetail {
	return domain.HotelDetail{
		ID:       "h1",
		Name:     "Grand Palm",
		Location: "Goa",
		Rooms: map[domain.RoomType]domain.RoomOffer{
			domain.RoomStandard: {Price: decimal.NewFromInt(100), Available: 4},
			domain.RoomDeluxe:   {Price: decimal.NewFromInt(150), Available: 2},
		},
	}
}

func newWorkflow(be *fakeBackend, sessions *app.SessionService) *app.BookingWorkflow {
	explorer := app.NewExplorer(be, nil, time.Minute)
	return app.NewBookingWorkflow(explorer, be, sessions)
}

func TestNights_Formula(t *testing.T) {
	cases := []struct {
		checkin, checkout string
		want              int
	}{
		{"2024-06-01", "2024-06-04", 3},
		{"2024-06-01", "2024-06-02", 1},
		{"2024-06-01", "2024-06-01", 0},
		{"2024-06-04", "2024-06-01", 0}, // inverted range floors at 0
	}
	for _, tc := range cases {
		w := newWorkflow(&fakeBackend{}, signedInSessions(t))
		w.SetDates(day(tc.checkin), day(tc.checkout))
		if got := w.Nights(); got != tc.want {
			t.Fatalf("nights(%s,%s) = %d, want %d", tc.checkin, tc.checkout, got, tc.want)
		}
	}

	// unset dates count as zero nights
	w := newWorkflow(&fakeBackend{}, signedInSessions(t))
	if w.Nights() != 0 {
		t.Fatal("empty dates must yield 0 nights")
	}
}

func TestWorkflow_HappyPath(t *testing.T) {
	var bookingReq domain.BookingRequest
	var paymentReq domain.PaymentRequest
	be := &fakeBackend{
		searchFn: func(q domain.HotelQuery) ([]domain.HotelSummary, error) {
			return []domain.HotelSummary{{ID: "h1", Name: "Grand Palm", Price: decimal.NewFromInt(100)}}, nil
		},
		getHotelFn: func(id string) (domain.HotelDetail, error) { return testHotel(), nil },
		createBookingFn: func(req domain.BookingRequest) (domain.Booking, error) {
			bookingReq = req
			return domain.Booking{ID: "b7", Status: domain.BookingPendingPayment}, nil
		},
		createPaymentFn: func(req domain.PaymentRequest) (domain.Payment, error) {
			paymentReq = req
			return domain.Payment{ID: "p1", BookingID: req.BookingID}, nil
		},
	}
	w := newWorkflow(be, signedInSessions(t))
	ctx := context.Background()

	if err := w.Search(ctx, domain.HotelQuery{Location: "goa", RoomType: domain.RoomStandard}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(w.Results()) != 1 {
		t.Fatalf("results = %d", len(w.Results()))
	}

	if err := w.OpenDetails(ctx, "h1"); err != nil {
		t.Fatalf("open details: %v", err)
	}
	if w.Step() != app.StepDetails {
		t.Fatalf("step = %s", w.Step())
	}

	w.SetDates(day("2024-06-01"), day("2024-06-04"))
	if !w.CanConfirm() {
		t.Fatal("confirm must be enabled for 3 nights")
	}
	if got := w.Total(); !got.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("total = %s, want 300", got)
	}

	if err := w.ConfirmBooking(ctx); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if w.Step() != app.StepPayment || w.BookingID() != "b7" {
		t.Fatalf("step=%s bookingID=%s", w.Step(), w.BookingID())
	}
	if bookingReq.Nights != 3 || !bookingReq.Total.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("booking request: %+v", bookingReq)
	}
	if bookingReq.Checkin != "2024-06-01" || bookingReq.Checkout != "2024-06-04" {
		t.Fatalf("booking dates: %+v", bookingReq)
	}

	draft := app.PaymentDraft{Method: domain.PayUPI, UPI: domain.UPIDetails{VPA: "guest@okbank"}, PointsToUse: 80}
	if !w.CanPay(draft, 50) {
		t.Fatal("pay must be enabled for a valid draft")
	}
	if err := w.Pay(ctx, draft, 50); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if w.Step() != app.StepSuccess {
		t.Fatalf("step = %s", w.Step())
	}
	if paymentReq.LoyaltyPointsUsed != 50 {
		t.Fatalf("points not clamped: %d", paymentReq.LoyaltyPointsUsed)
	}
	if !paymentReq.Amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("amount = %s", paymentReq.Amount)
	}
	if paymentReq.IdempotencyKey == "" {
		t.Fatal("payment must carry an idempotency key")
	}
}

func TestWorkflow_DetailFetchFailureStaysInSearch(t *testing.T) {
	be := &fakeBackend{
		getHotelFn: func(id string) (domain.HotelDetail, error) {
			return domain.HotelDetail{}, domain.ErrNotFound
		},
	}
	w := newWorkflow(be, signedInSessions(t))

	err := w.OpenDetails(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if w.Step() != app.StepSearch {
		t.Fatalf("step = %s, want search", w.Step())
	}
	if _, ok := w.Selected(); ok {
		t.Fatal("no hotel may be selected after a failed fetch")
	}
	if w.Busy() {
		t.Fatal("loading flag stuck after failure")
	}
}

func TestWorkflow_ConfirmPreconditions(t *testing.T) {
	be := &fakeBackend{getHotelFn: func(id string) (domain.HotelDetail, error) { return testHotel(), nil }}

	// nights <= 0 blocks
	w := newWorkflow(be, signedInSessions(t))
	ctx := context.Background()
	if err := w.OpenDetails(ctx, "h1"); err != nil {
		t.Fatal(err)
	}
	w.SetDates(day("2024-06-04"), day("2024-06-01"))
	if w.CanConfirm() {
		t.Fatal("confirm enabled with inverted dates")
	}
	if err := w.ConfirmBooking(ctx); err == nil {
		t.Fatal("confirm must fail with 0 nights")
	}
	if w.Step() != app.StepDetails || w.BookingID() != "" {
		t.Fatalf("failed confirm changed state: step=%s id=%q", w.Step(), w.BookingID())
	}

	// no session blocks
	anon := app.NewSessionService(&memStore{})
	w2 := newWorkflow(be, anon)
	if err := w2.OpenDetails(ctx, "h1"); err != nil {
		t.Fatal(err)
	}
	w2.SetDates(day("2024-06-01"), day("2024-06-04"))
	if err := w2.ConfirmBooking(ctx); !errors.Is(err, domain.ErrSignInRequired) {
		t.Fatalf("expected sign-in error, got %v", err)
	}
}

func TestWorkflow_BookingFailureRetainsNoID(t *testing.T) {
	be := &fakeBackend{
		getHotelFn: func(id string) (domain.HotelDetail, error) { return testHotel(), nil },
		createBookingFn: func(req domain.BookingRequest) (domain.Booking, error) {
			return domain.Booking{}, fmt.Errorf("rooms sold out")
		},
	}
	w := newWorkflow(be, signedInSessions(t))
	ctx := context.Background()
	if err := w.OpenDetails(ctx, "h1"); err != nil {
		t.Fatal(err)
	}
	w.SetDates(day("2024-06-01"), day("2024-06-04"))

	if err := w.ConfirmBooking(ctx); err == nil {
		t.Fatal("expected booking failure")
	}
	if w.Step() != app.StepDetails || w.BookingID() != "" {
		t.Fatalf("failure leaked state: step=%s id=%q", w.Step(), w.BookingID())
	}
}

func TestWorkflow_InvalidTransitionsRejected(t *testing.T) {
	w := newWorkflow(&fakeBackend{}, signedInSessions(t))
	ctx := context.Background()

	if err := w.ConfirmBooking(ctx); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("confirm from search: %v", err)
	}
	draft := app.PaymentDraft{Method: domain.PayUPI, UPI: domain.UPIDetails{VPA: "a@b"}}
	if err := w.Pay(ctx, draft, 0); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("pay from search: %v", err)
	}
	if err := w.BackToDetails(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("back from search: %v", err)
	}
}

func TestWorkflow_InvalidPaymentInputBlocksRequest(t *testing.T) {
	var calls atomic.Int32
	be := &fakeBackend{
		getHotelFn: func(id string) (domain.HotelDetail, error) { return testHotel(), nil },
		createBookingFn: func(req domain.BookingRequest) (domain.Booking, error) {
			return domain.Booking{ID: "b1"}, nil
		},
		createPaymentFn: func(req domain.PaymentRequest) (domain.Payment, error) {
			calls.Add(1)
			return domain.Payment{}, nil
		},
	}
	w := newWorkflow(be, signedInSessions(t))
	ctx := context.Background()
	if err := w.OpenDetails(ctx, "h1"); err != nil {
		t.Fatal(err)
	}
	w.SetDates(day("2024-06-01"), day("2024-06-04"))
	if err := w.ConfirmBooking(ctx); err != nil {
		t.Fatal(err)
	}

	bad := app.PaymentDraft{Method: domain.PayCard, Card: domain.CardDetails{Number: "1234"}}
	if w.CanPay(bad, 0) {
		t.Fatal("pay enabled for an invalid draft")
	}
	if err := w.Pay(ctx, bad, 0); err == nil {
		t.Fatal("invalid card accepted")
	}
	if calls.Load() != 0 {
		t.Fatal("validation failure must not reach the network")
	}
	if w.Step() != app.StepPayment {
		t.Fatalf("step = %s", w.Step())
	}
}

func TestWorkflow_DuplicatePaySendsOneRequest(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	be := &fakeBackend{
		getHotelFn: func(id string) (domain.HotelDetail, error) { return testHotel(), nil },
		createBookingFn: func(req domain.BookingRequest) (domain.Booking, error) {
			return domain.Booking{ID: "b1"}, nil
		},
		createPaymentFn: func(req domain.PaymentRequest) (domain.Payment, error) {
			calls.Add(1)
			close(started)
			<-release
			return domain.Payment{ID: "p1"}, nil
		},
	}
	w := newWorkflow(be, signedInSessions(t))
	ctx := context.Background()
	if err := w.OpenDetails(ctx, "h1"); err != nil {
		t.Fatal(err)
	}
	w.SetDates(day("2024-06-01"), day("2024-06-04"))
	if err := w.ConfirmBooking(ctx); err != nil {
		t.Fatal(err)
	}

	draft := app.PaymentDraft{Method: domain.PayUPI, UPI: domain.UPIDetails{VPA: "guest@okbank"}}
	done := make(chan error, 1)
	go func() { done <- w.Pay(ctx, draft, 0) }()
	<-started

	// second click while the first request is outstanding
	if err := w.Pay(ctx, draft, 0); !errors.Is(err, domain.ErrRequestInFlight) {
		t.Fatalf("second pay: %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first pay: %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("payment requests sent = %d, want 1", n)
	}
	if w.Step() != app.StepSuccess {
		t.Fatalf("step = %s", w.Step())
	}
}

func TestWorkflow_StaleSearchDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	be := &fakeBackend{
		searchFn: func(q domain.HotelQuery) ([]domain.HotelSummary, error) {
			if q.Location == "slow" {
				close(firstStarted)
				<-releaseFirst
				return []domain.HotelSummary{{ID: "old"}}, nil
			}
			return []domain.HotelSummary{{ID: "new"}}, nil
		},
	}
	w := newWorkflow(be, signedInSessions(t))
	ctx := context.Background()

	first := make(chan error, 1)
	go func() {
		first <- w.Search(ctx, domain.HotelQuery{Location: "slow", RoomType: domain.RoomStandard})
	}()
	<-firstStarted

	// newer search wins the slot
	if err := w.Search(ctx, domain.HotelQuery{Location: "fast", RoomType: domain.RoomStandard}); err != nil {
		t.Fatalf("second search: %v", err)
	}

	close(releaseFirst)
	if err := <-first; !errors.Is(err, domain.ErrStale) {
		t.Fatalf("superseded search: %v", err)
	}

	res := w.Results()
	if len(res) != 1 || res[0].ID != "new" {
		t.Fatalf("late response overwrote newer results: %+v", res)
	}
	if w.Busy() {
		t.Fatal("busy flag stuck after superseded search")
	}
}

func TestWorkflow_BackTransitions(t *testing.T) {
	be := &fakeBackend{
		getHotelFn: func(id string) (domain.HotelDetail, error) { return testHotel(), nil },
		createBookingFn: func(req domain.BookingRequest) (domain.Booking, error) {
			return domain.Booking{ID: "b3"}, nil
		},
	}
	w := newWorkflow(be, signedInSessions(t))
	ctx := context.Background()
	if err := w.OpenDetails(ctx, "h1"); err != nil {
		t.Fatal(err)
	}
	w.SetDates(day("2024-06-01"), day("2024-06-04"))
	if err := w.ConfirmBooking(ctx); err != nil {
		t.Fatal(err)
	}

	if err := w.BackToDetails(); err != nil {
		t.Fatal(err)
	}
	if w.Step() != app.StepDetails || w.BookingID() != "b3" {
		t.Fatalf("back to details: step=%s id=%q", w.Step(), w.BookingID())
	}

	if err := w.BackToSearch(); err != nil {
		t.Fatal(err)
	}
	if _, ok := w.Selected(); ok {
		t.Fatal("back to search must drop the selected hotel")
	}
}

func TestWorkflow_FailedPaymentAllowsRetry(t *testing.T) {
	var keys []string
	be := &fakeBackend{
		getHotelFn: func(id string) (domain.HotelDetail, error) { return testHotel(), nil },
		createBookingFn: func(req domain.BookingRequest) (domain.Booking, error) {
			return domain.Booking{ID: "b9"}, nil
		},
		createPaymentFn: func(req domain.PaymentRequest) (domain.Payment, error) {
			keys = append(keys, req.IdempotencyKey)
			if len(keys) == 1 {
				return domain.Payment{}, fmt.Errorf("gateway timeout")
			}
			return domain.Payment{ID: "p1"}, nil
		},
	}
	w := newWorkflow(be, signedInSessions(t))
	ctx := context.Background()
	if err := w.OpenDetails(ctx, "h1"); err != nil {
		t.Fatal(err)
	}
	w.SetDates(day("2024-06-01"), day("2024-06-04"))
	if err := w.ConfirmBooking(ctx); err != nil {
		t.Fatal(err)
	}

	draft := app.PaymentDraft{Method: domain.PayUPI, UPI: domain.UPIDetails{VPA: "guest@okbank"}}
	if err := w.Pay(ctx, draft, 0); err == nil {
		t.Fatal("expected first payment to fail")
	}
	if w.Step() != app.StepPayment {
		t.Fatalf("failed payment moved step to %s", w.Step())
	}
	if w.BookingID() != "b9" {
		t.Fatal("booking id must survive a failed payment for a retry")
	}

	// retry from the payment step reuses the idempotency key
	if err := w.Pay(ctx, draft, 0); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(keys) != 2 || keys[0] != keys[1] || keys[0] == "" {
		t.Fatalf("retry must reuse the idempotency key: %v", keys)
	}

	w.Reset()
	if w.Step() != app.StepSearch || w.BookingID() != "" {
		t.Fatal("reset must return to search with no booking")
	}
}
