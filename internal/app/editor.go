package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"smarthotel/internal/domain"
)

// HotelEditor holds the manager's add-hotel form: hotel fields, free-text
// amenities and an ordered, independently editable room-row list. Submission is
// one atomic request; on failure the input is kept so the manager can retry
// without retyping.
type HotelEditor struct {
	backend domain.Backend

	Name        string
	Location    string
	Description string
	ImageURL    string
	Amenities   string // comma-separated free text, split on submit

	rows    []domain.RoomRow
	busy    bool
	created bool
}

func defaultRows() []domain.RoomRow {
	return []domain.RoomRow{
		{Type: domain.RoomStandard, Price: decimal.NewFromInt(100)},
		{Type: domain.RoomDeluxe, Price: decimal.NewFromInt(150)},
		{Type: domain.RoomSuite, Price: decimal.NewFromInt(220)},
	}
}

func NewHotelEditor(b domain.Backend) *HotelEditor {
	return &HotelEditor{backend: b, rows: defaultRows()}
}

func (e *HotelEditor) Rows() []domain.RoomRow {
	out := make([]domain.RoomRow, len(e.rows))
	copy(out, e.rows)
	return out
}

// AddRow appends the default row: standard, price 0, available 0.
func (e *HotelEditor) AddRow() {
	e.rows = append(e.rows, domain.RoomRow{Type: domain.RoomStandard})
}

func (e *HotelEditor) RemoveRow(i int) error {
	if i < 0 || i >= len(e.rows) {
		return fmt.Errorf("no room row at position %d", i)
	}
	e.rows = append(e.rows[:i], e.rows[i+1:]...)
	return nil
}

func (e *HotelEditor) UpdateRow(i int, row domain.RoomRow) error {
	if i < 0 || i >= len(e.rows) {
		return fmt.Errorf("no room row at position %d", i)
	}
	if _, ok := domain.ParseRoomType(string(row.Type)); !ok {
		return fmt.Errorf("unknown room type %q", row.Type)
	}
	e.rows[i] = row
	return nil
}

// Created reports whether the last Submit succeeded; cleared on the next edit.
func (e *HotelEditor) Created() bool { return e.created }

// SplitAmenities turns comma-separated free text into a trimmed list with
// empties dropped.
func SplitAmenities(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Submit sends the hotel and its full room list as one request. Success resets
// the form to its defaults; failure keeps everything for a retry.
func (e *HotelEditor) Submit(ctx context.Context) error {
	if e.busy {
		return domain.ErrRequestInFlight
	}
	if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Location) == "" {
		return fmt.Errorf("hotel name and location are required")
	}
	if len(e.rows) == 0 {
		return fmt.Errorf("at least one room row is required")
	}
	payload := domain.NewHotel{
		Name:        e.Name,
		Location:    e.Location,
		Description: e.Description,
		ImageURL:    e.ImageURL,
		Amenities:   SplitAmenities(e.Amenities),
		Rooms:       e.Rows(),
	}

	e.busy = true
	e.created = false
	err := e.backend.AddHotel(ctx, payload)
	e.busy = false
	if err != nil {
		return fmt.Errorf("add hotel: %w", err)
	}

	e.Name, e.Location, e.Description, e.ImageURL, e.Amenities = "", "", "", "", ""
	e.rows = defaultRows()
	e.created = true
	return nil
}
