package domain

import "context"

// Backend is the client's view of the Smart Hotel REST API. The backend owns all
// durable truth; everything the client holds is a transient projection of these
// responses.
type Backend interface {
	// Auth
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Register(ctx context.Context, name, email, password string, role Role) error

	// Guest
	SearchHotels(ctx context.Context, q HotelQuery) ([]HotelSummary, error)
	GetHotel(ctx context.Context, id string) (HotelDetail, error)
	CreateBooking(ctx context.Context, req BookingRequest) (Booking, error)
	ListBookings(ctx context.Context) ([]Booking, error)
	CreatePayment(ctx context.Context, req PaymentRequest) (Payment, error)
	ListPayments(ctx context.Context) ([]Payment, error)
	AddReview(ctx context.Context, req ReviewRequest) (Review, error)
	ListReviews(ctx context.Context) ([]Review, error)
	Loyalty(ctx context.Context) (LoyaltyInfo, error)
	RedeemLoyalty(ctx context.Context, points int) (LoyaltyInfo, error)

	// Manager
	ManagerHotels(ctx context.Context) ([]HotelRecord, error)
	AddHotel(ctx context.Context, h NewHotel) error
	ManagerBookings(ctx context.Context) ([]Booking, error)
	ManagerReviews(ctx context.Context) ([]Review, error)
	ReplyToReview(ctx context.Context, reviewID, reply string) error

	// Admin
	AdminHotels(ctx context.Context, status HotelStatus) ([]HotelRecord, error)
	AdminAllHotels(ctx context.Context) ([]HotelRecord, error)
	SetHotelStatus(ctx context.Context, id string, status HotelStatus) error
	DeleteHotel(ctx context.Context, id string) error
	AdminUsers(ctx context.Context) ([]AdminUser, error)
	SetUserRole(ctx context.Context, id string, role Role) error
	DeleteUser(ctx context.Context, id string) error
	DashboardStats(ctx context.Context) (Stats, error)
}

// LoginResult is the raw login response; role strings are normalized by the
// session layer.
type LoginResult struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	JWTToken string   `json:"jwtToken"`
}

// SessionStore persists the single session blob across process restarts.
type SessionStore interface {
	// Load reports ok=false when no session is persisted. A corrupt or
	// unreadable blob is treated the same as absent, never as an error.
	Load() (Session, bool)
	Save(s Session) error
	Clear() error
}

// Cache is a read-through projection cache for search results and hotel details.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
