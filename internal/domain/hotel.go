package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoomType is the closed set of bookable room categories.
type RoomType string

const (
	RoomStandard RoomType = "standard"
	RoomDeluxe   RoomType = "deluxe"
	RoomSuite    RoomType = "suite"
)

func ParseRoomType(s string) (RoomType, bool) {
	switch RoomType(strings.ToLower(strings.TrimSpace(s))) {
	case RoomStandard:
		return RoomStandard, true
	case RoomDeluxe:
		return RoomDeluxe, true
	case RoomSuite:
		return RoomSuite, true
	}
	return "", false
}

// RoomOffer is the per-type price and remaining availability of a hotel.
type RoomOffer struct {
	Price     decimal.Decimal `json:"price"`
	Available int             `json:"available"`
}

// HotelSummary is one search result row. Price is for the queried room type.
type HotelSummary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Amenities []string        `json:"amenities"`
	Rating    float64         `json:"rating"`
	Price     decimal.Decimal `json:"price"`
	Location  string          `json:"location"`
}

type HotelDetail struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Images    []string               `json:"images"`
	Amenities []string               `json:"amenities"`
	Rating    float64                `json:"rating"`
	Location  string                 `json:"location"`
	Rooms     map[RoomType]RoomOffer `json:"rooms"`
}

type HotelQuery struct {
	Location string
	RoomType RoomType
}

// HotelStatus is the admin approval state of a hotel record.
type HotelStatus string

const (
	StatusPending  HotelStatus = "pending"
	StatusApproved HotelStatus = "approved"
	StatusRejected HotelStatus = "rejected"
)

func ParseHotelStatus(s string) (HotelStatus, bool) {
	switch HotelStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	}
	return "", false
}

// RoomRow is one editable room-type line of a manager hotel submission.
type RoomRow struct {
	Type      RoomType        `json:"type"`
	Price     decimal.Decimal `json:"price"`
	Available int             `json:"available"`
}

// NewHotel is the composite manager submission: hotel fields plus the full room
// list, sent as one atomic creation request.
type NewHotel struct {
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Amenities   []string  `json:"amenities"`
	Rooms       []RoomRow `json:"rooms"`
}

// HotelRecord is the managed/moderated view of a hotel: the submission plus its
// approval status. Served by the manager and admin endpoints.
type HotelRecord struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Location     string      `json:"location"`
	Description  string      `json:"description"`
	ImageURL     string      `json:"imageUrl"`
	Amenities    []string    `json:"amenities"`
	Rooms        []RoomRow   `json:"rooms"`
	ManagerEmail string      `json:"managerEmail"`
	Status       HotelStatus `json:"status"`
	CreatedAt    string      `json:"createdAt"`
}
