package backend

import (
	"encoding/json"

	"smarthotel/internal/domain"
)

// The backend is loose about a few response shapes; everything here folds them
// into the canonical domain types before workflow code sees them.

// reviewDTO tolerates the reply field arriving as an object, a one-element list,
// or a flattened replyText string.
type reviewDTO struct {
	ID        string          `json:"id"`
	BookingID string          `json:"bookingId"`
	HotelID   string          `json:"hotelId"`
	HotelName string          `json:"hotelName"`
	UserEmail string          `json:"userEmail"`
	Rating    int             `json:"rating"`
	Comment   string          `json:"comment"`
	CreatedAt string          `json:"createdAt"`
	Reply     json.RawMessage `json:"reply"`
	ReplyText string          `json:"replyText"`
}

func (d reviewDTO) normalize() domain.Review {
	r := domain.Review{
		ID:        d.ID,
		BookingID: d.BookingID,
		HotelID:   d.HotelID,
		HotelName: d.HotelName,
		UserEmail: d.UserEmail,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
		Reply:     normalizeReply(d.Reply),
	}
	if r.Reply == nil && d.ReplyText != "" {
		r.Reply = &domain.ReviewReply{Text: d.ReplyText}
	}
	return r
}

// normalizeReply accepts both reply shapes: a single object or a list (first
// element wins). Anything else decodes to no reply.
func normalizeReply(raw json.RawMessage) *domain.ReviewReply {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var one domain.ReviewReply
	if err := json.Unmarshal(raw, &one); err == nil && one.Text != "" {
		return &one
	}
	var many []domain.ReviewReply
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 && many[0].Text != "" {
		return &many[0]
	}
	return nil
}

// adminUserDTO tolerates the ROLE_* role strings on the users listing.
type adminUserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (d adminUserDTO) normalize() domain.AdminUser {
	return domain.AdminUser{
		ID:    d.ID,
		Email: d.Email,
		Name:  d.Name,
		Role:  domain.ParseRole(d.Role),
	}
}
