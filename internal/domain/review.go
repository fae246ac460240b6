package domain

// ReviewReply is the manager's answer to a guest review. The backend serves it
// either as a single object or as a list; the backend adapter normalizes both
// shapes into this one before a review reaches workflow code.
type ReviewReply struct {
	ManagerEmail string `json:"managerEmail"`
	Text         string `json:"text"`
	CreatedAt    string `json:"createdAt"`
}

type Review struct {
	ID        string       `json:"id"`
	BookingID string       `json:"bookingId"`
	HotelID   string       `json:"hotelId"`
	HotelName string       `json:"hotelName"`
	UserEmail string       `json:"userEmail"`
	Rating    int          `json:"rating"` // 1..5
	Comment   string       `json:"comment"`
	CreatedAt string       `json:"createdAt"`
	Reply     *ReviewReply `json:"reply,omitempty"`
}

type ReviewRequest struct {
	BookingID string `json:"bookingId"`
	HotelID   string `json:"hotelId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
