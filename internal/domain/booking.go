package domain

import "github.com/shopspring/decimal"

// DateLayout is the wire format for checkin/checkout dates.
const DateLayout = "2006-01-02"

type BookingStatus string

const (
	BookingPendingPayment BookingStatus = "pending_payment"
	BookingPaid           BookingStatus = "paid"
)

// Booking is a server-confirmed reservation. The backend owns its lifecycle;
// status moves to paid only through a successful payment call.
type Booking struct {
	ID            string          `json:"id"`
	HotelID       string          `json:"hotelId"`
	HotelName     string          `json:"hotelName"`
	UserEmail     string          `json:"userEmail"`
	RoomType      RoomType        `json:"roomType"`
	Checkin       string          `json:"checkin"`
	Checkout      string          `json:"checkout"`
	Nights        int             `json:"nights"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	Total         decimal.Decimal `json:"total"`
	Status        BookingStatus   `json:"status"`
}

// BookingRequest is the creation payload sent once the guest confirms dates and
// room type. Derived fields (nights, total) are included as computed client-side.
type BookingRequest struct {
	HotelID       string          `json:"hotelId"`
	UserEmail     string          `json:"userEmail"`
	RoomType      RoomType        `json:"roomType"`
	Checkin       string          `json:"checkin"`
	Checkout      string          `json:"checkout"`
	Nights        int             `json:"nights"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	Total         decimal.Decimal `json:"total"`
}

type PaymentMethod string

const (
	PayUPI  PaymentMethod = "upi"
	PayCard PaymentMethod = "card"
)

// CardDetails are the raw card fields as entered; validated before any request
// leaves the client, never persisted.
type CardDetails struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// UPIDetails carries the virtual payment address for UPI payments.
type UPIDetails struct {
	VPA string `json:"vpa"`
}

// PaymentRequest is the payment submission for a booking. Amount is the original
// order amount; the backend applies the loyalty discount from LoyaltyPointsUsed.
// IdempotencyKey is generated client-side once per booking so an accidental
// resubmission cannot charge twice.
type PaymentRequest struct {
	BookingID         string          `json:"bookingId"`
	UserEmail         string          `json:"userEmail"`
	Amount            decimal.Decimal `json:"amount"`
	Method            PaymentMethod   `json:"method"`
	Details           any             `json:"details"`
	LoyaltyPointsUsed int             `json:"loyaltyPointsUsed"`
	IdempotencyKey    string          `json:"idempotencyKey,omitempty"`
}

type Payment struct {
	ID        string          `json:"id"`
	BookingID string          `json:"bookingId"`
	UserEmail string          `json:"userEmail"`
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
	CreatedAt string          `json:"createdAt"`
}
