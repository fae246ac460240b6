package app_test

import (
	"context"

	"smarthotel/internal/domain"
)

// ---- fakes ----

// fakeBackend implements domain.Backend with overridable hooks; methods without
// a hook return zero values.
type fakeBackend struct {
	loginFn         func(email, password string) (domain.LoginResult, error)
	searchFn        func(q domain.HotelQuery) ([]domain.HotelSummary, error)
	getHotelFn      func(id string) (domain.HotelDetail, error)
	createBookingFn func(req domain.BookingRequest) (domain.Booking, error)
	createPaymentFn func(req domain.PaymentRequest) (domain.Payment, error)
	addReviewFn     func(req domain.ReviewRequest) (domain.Review, error)
	addHotelFn      func(h domain.NewHotel) error
	adminHotelsFn   func(st domain.HotelStatus) ([]domain.HotelRecord, error)
	setStatusFn     func(id string, st domain.HotelStatus) error
	deleteHotelFn   func(id string) error
	loyaltyFn       func() (domain.LoyaltyInfo, error)
	redeemFn        func(points int) (domain.LoyaltyInfo, error)
}

func (f *fakeBackend) Login(_ context.Context, email, password string) (domain.LoginResult, error) {
	if f.loginFn != nil {
		return f.loginFn(email, password)
	}
	return domain.LoginResult{}, nil
}

func (f *fakeBackend) Register(context.Context, string, string, string, domain.Role) error {
	return nil
}

func (f *fakeBackend) SearchHotels(_ context.Context, q domain.HotelQuery) ([]domain.HotelSummary, error) {
	if f.searchFn != nil {
		return f.searchFn(q)
	}
	return nil, nil
}

func (f *fakeBackend) GetHotel(_ context.Context, id string) (domain.HotelDetail, error) {
	if f.getHotelFn != nil {
		return f.getHotelFn(id)
	}
	return domain.HotelDetail{}, nil
}

func (f *fakeBackend) CreateBooking(_ context.Context, req domain.BookingRequest) (domain.Booking, error) {
	if f.createBookingFn != nil {
		return f.createBookingFn(req)
	}
	return domain.Booking{}, nil
}

func (f *fakeBackend) ListBookings(context.Context) ([]domain.Booking, error) { return nil, nil }

func (f *fakeBackend) CreatePayment(_ context.Context, req domain.PaymentRequest) (domain.Payment, error) {
	if f.createPaymentFn != nil {
		return f.createPaymentFn(req)
	}
	return domain.Payment{}, nil
}

func (f *fakeBackend) ListPayments(context.Context) ([]domain.Payment, error) { return nil, nil }

func (f *fakeBackend) AddReview(_ context.Context, req domain.ReviewRequest) (domain.Review, error) {
	if f.addReviewFn != nil {
		return f.addReviewFn(req)
	}
	return domain.Review{}, nil
}

func (f *fakeBackend) ListReviews(context.Context) ([]domain.Review, error) { return nil, nil }

func (f *fakeBackend) Loyalty(context.Context) (domain.LoyaltyInfo, error) {
	if f.loyaltyFn != nil {
		return f.loyaltyFn()
	}
	return domain.LoyaltyInfo{}, nil
}

func (f *fakeBackend) RedeemLoyalty(_ context.Context, points int) (domain.LoyaltyInfo, error) {
	if f.redeemFn != nil {
		return f.redeemFn(points)
	}
	return domain.LoyaltyInfo{}, nil
}

func (f *fakeBackend) ManagerHotels(context.Context) ([]domain.HotelRecord, error) { return nil, nil }

func (f *fakeBackend) AddHotel(_ context.Context, h domain.NewHotel) error {
	if f.addHotelFn != nil {
		return f.addHotelFn(h)
	}
	return nil
}

func (f *fakeBackend) ManagerBookings(context.Context) ([]domain.Booking, error) { return nil, nil }
func (f *fakeBackend) ManagerReviews(context.Context) ([]domain.Review, error)   { return nil, nil }
func (f *fakeBackend) ReplyToReview(context.Context, string, string) error       { return nil }

func (f *fakeBackend) AdminHotels(_ context.Context, st domain.HotelStatus) ([]domain.HotelRecord, error) {
	if f.adminHotelsFn != nil {
		return f.adminHotelsFn(st)
	}
	return nil, nil
}

func (f *fakeBackend) AdminAllHotels(context.Context) ([]domain.HotelRecord, error) {
	return nil, nil
}

func (f *fakeBackend) SetHotelStatus(_ context.Context, id string, st domain.HotelStatus) error {
	if f.setStatusFn != nil {
		return f.setStatusFn(id, st)
	}
	return nil
}

func (f *fakeBackend) DeleteHotel(_ context.Context, id string) error {
	if f.deleteHotelFn != nil {
		return f.deleteHotelFn(id)
	}
	return nil
}

func (f *fakeBackend) AdminUsers(context.Context) ([]domain.AdminUser, error)   { return nil, nil }
func (f *fakeBackend) SetUserRole(context.Context, string, domain.Role) error   { return nil }
func (f *fakeBackend) DeleteUser(context.Context, string) error                 { return nil }
func (f *fakeBackend) DashboardStats(context.Context) (domain.Stats, error)     { return domain.Stats{}, nil }

// memStore is an in-memory SessionStore.
type memStore struct {
	sess    *domain.Session
	saveErr error
}

func (m *memStore) Load() (domain.Session, bool) {
	if m.sess == nil {
		return domain.Session{}, false
	}
	return *m.sess, true
}

func (m *memStore) Save(s domain.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sess = &s
	return nil
}

func (m *memStore) Clear() error {
	m.sess = nil
	return nil
}

// fakeCache is an in-memory Cache keyed by string.
type fakeCache struct {
	store map[string][]domain.HotelSummary
	hotel map[string]domain.HotelDetail
}

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	switch d := dst.(type) {
	case *[]domain.HotelSummary:
		if v, ok := c.store[key]; ok {
			*d = v
			return true, nil
		}
	case *domain.HotelDetail:
		if v, ok := c.hotel[key]; ok {
			*d = v
			return true, nil
		}
	}
	return false, nil
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ int) error {
	switch t := v.(type) {
	case []domain.HotelSummary:
		if c.store == nil {
			c.store = map[string][]domain.HotelSummary{}
		}
		c.store[key] = t
	case domain.HotelDetail:
		if c.hotel == nil {
			c.hotel = map[string]domain.HotelDetail{}
		}
		c.hotel[key] = t
	}
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	delete(c.store, key)
	delete(c.hotel, key)
	return nil
}
