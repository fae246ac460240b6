package backend

import (
	"context"
	"net/http"
	"net/url"

	"smarthotel/internal/domain"
)

// Wire values for Role on the register endpoint; the backend speaks ROLE_* and
// calls guests "user".
func wireRole(r domain.Role) string {
	switch r {
	case domain.RoleManager:
		return "ROLE_MANAGER"
	case domain.RoleAdmin:
		return "ROLE_ADMIN"
	default:
		return "ROLE_USER"
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	var out domain.LoginResult
	in := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, in, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, name, email, password string, role domain.Role) error {
	in := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     wireRole(role),
	}
	return c.do(ctx, http.MethodPost, "/api/auth/register", nil, in, nil)
}

func (c *Client) SearchHotels(ctx context.Context, q domain.HotelQuery) ([]domain.HotelSummary, error) {
	v := url.Values{}
	v.Set("location", q.Location)
	v.Set("roomType", string(q.RoomType))
	var out []domain.HotelSummary
	err := c.do(ctx, http.MethodGet, "/api/hotels", v, nil, &out)
	return out, err
}

func (c *Client) GetHotel(ctx context.Context, id string) (domain.HotelDetail, error) {
	var out domain.HotelDetail
	err := c.do(ctx, http.MethodGet, "/api/hotels/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	var out domain.Booking
	err := c.do(ctx, http.MethodPost, "/api/user/bookings", nil, req, &out)
	return out, err
}

func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	err := c.do(ctx, http.MethodGet, "/api/user/bookings", nil, nil, &out)
	return out, err
}

func (c *Client) CreatePayment(ctx context.Context, req domain.PaymentRequest) (domain.Payment, error) {
	var out domain.Payment
	err := c.do(ctx, http.MethodPost, "/api/user/payments", nil, req, &out)
	return out, err
}

func (c *Client) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	err := c.do(ctx, http.MethodGet, "/api/user/payments", nil, nil, &out)
	return out, err
}

func (c *Client) AddReview(ctx context.Context, req domain.ReviewRequest) (domain.Review, error) {
	var out reviewDTO
	err := c.do(ctx, http.MethodPost, "/api/user/reviews", nil, req, &out)
	return out.normalize(), err
}

func (c *Client) ListReviews(ctx context.Context) ([]domain.Review, error) {
	return c.reviews(ctx, "/api/user/reviews")
}

func (c *Client) Loyalty(ctx context.Context) (domain.LoyaltyInfo, error) {
	var out domain.LoyaltyInfo
	err := c.do(ctx, http.MethodGet, "/api/user/loyalty", nil, nil, &out)
	return out, err
}

func (c *Client) RedeemLoyalty(ctx context.Context, points int) (domain.LoyaltyInfo, error) {
	var out domain.LoyaltyInfo
	in := map[string]int{"points": points}
	err := c.do(ctx, http.MethodPost, "/api/user/loyalty/redeem", nil, in, &out)
	return out, err
}

func (c *Client) ManagerHotels(ctx context.Context) ([]domain.HotelRecord, error) {
	var out []domain.HotelRecord
	err := c.do(ctx, http.MethodGet, "/api/manager/hotels", nil, nil, &out)
	return out, err
}

func (c *Client) AddHotel(ctx context.Context, h domain.NewHotel) error {
	return c.do(ctx, http.MethodPost, "/api/manager/hotels", nil, h, nil)
}

func (c *Client) ManagerBookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	err := c.do(ctx, http.MethodGet, "/api/manager/bookings", nil, nil, &out)
	return out, err
}

func (c *Client) ManagerReviews(ctx context.Context) ([]domain.Review, error) {
	return c.reviews(ctx, "/api/manager/reviews")
}

func (c *Client) ReplyToReview(ctx context.Context, reviewID, reply string) error {
	in := map[string]string{"reply": reply}
	return c.do(ctx, http.MethodPost, "/api/manager/reviews/"+url.PathEscape(reviewID)+"/reply", nil, in, nil)
}

func (c *Client) AdminHotels(ctx context.Context, status domain.HotelStatus) ([]domain.HotelRecord, error) {
	var out []domain.HotelRecord
	err := c.do(ctx, http.MethodGet, "/api/admin/hotels/"+string(status), nil, nil, &out)
	return out, err
}

func (c *Client) AdminAllHotels(ctx context.Context) ([]domain.HotelRecord, error) {
	var out []domain.HotelRecord
	err := c.do(ctx, http.MethodGet, "/api/admin/hotels", nil, nil, &out)
	return out, err
}

func (c *Client) SetHotelStatus(ctx context.Context, id string, status domain.HotelStatus) error {
	action := map[domain.HotelStatus]string{
		domain.StatusApproved: "approve",
		domain.StatusRejected: "reject",
		domain.StatusPending:  "pending",
	}[status]
	return c.do(ctx, http.MethodPut, "/api/admin/hotels/"+url.PathEscape(id)+"/"+action, nil, nil, nil)
}

func (c *Client) DeleteHotel(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/hotels/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) AdminUsers(ctx context.Context) ([]domain.AdminUser, error) {
	var out []adminUserDTO
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, nil, &out); err != nil {
		return nil, err
	}
	users := make([]domain.AdminUser, 0, len(out))
	for _, u := range out {
		users = append(users, u.normalize())
	}
	return users, nil
}

func (c *Client) SetUserRole(ctx context.Context, id string, role domain.Role) error {
	in := map[string]string{"role": wireRole(role)}
	return c.do(ctx, http.MethodPut, "/api/admin/users/"+url.PathEscape(id)+"/role", nil, in, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/users/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) DashboardStats(ctx context.Context) (domain.Stats, error) {
	var out domain.Stats
	err := c.do(ctx, http.MethodGet, "/api/admin/dashboard/stats", nil, nil, &out)
	return out, err
}

func (c *Client) reviews(ctx context.Context, path string) ([]domain.Review, error) {
	var out []reviewDTO
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	rs := make([]domain.Review, 0, len(out))
	for _, r := range out {
		rs = append(rs, r.normalize())
	}
	return rs, nil
}

var _ domain.Backend = (*Client)(nil)
