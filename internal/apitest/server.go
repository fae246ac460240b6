// Package apitest hosts an in-memory implementation of the hotel backend API
// for integration tests. It speaks the same wire contract as the real service,
// including bearer-token auth, role-gated route groups and the duplicate
// payment conflict, so the client and the flows above it can be exercised
// end to end against httptest.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"smarthotel/internal/domain"
)

const reviewRewardPoints = 50

type account struct {
	Name     string
	Email    string
	Password string
	Role     string // ROLE_USER | ROLE_MANAGER | ROLE_ADMIN
}

type bookingRec struct {
	domain.Booking
	PaymentKey string
}

// Server is the in-memory backend. All state is guarded by one mutex; the
// traffic in a test is far too small for that to matter.
type Server struct {
	mux    *chi.Mux
	secret []byte

	mu       sync.Mutex
	seq      int
	accounts map[string]*account // by email
	hotels   map[string]*domain.HotelRecord
	bookings map[string]*bookingRec
	payments []domain.Payment
	reviews  map[string]*domain.Review
	loyalty  map[string]*domain.LoyaltyInfo // by email
}

func New() *Server {
	s := &Server{
		secret:   []byte("apitest-signing-key"),
		accounts: map[string]*account{},
		hotels:   map[string]*domain.HotelRecord{},
		bookings: map[string]*bookingRec{},
		reviews:  map[string]*domain.Review{},
		loyalty:  map[string]*domain.LoyaltyInfo{},
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

// SeedUser registers an account directly, bypassing the register endpoint's
// role restriction so tests can create admins.
func (s *Server) SeedUser(name, email, password, wireRole string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = &account{Name: name, Email: email, Password: password, Role: wireRole}
	s.loyalty[email] = &domain.LoyaltyInfo{}
}

// SeedHotel inserts a hotel record and returns its id.
func (s *Server) SeedHotel(h domain.HotelRecord) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextIDLocked()
	h.ID = id
	if h.Status == "" {
		h.Status = domain.StatusApproved
	}
	s.hotels[id] = &h
	return id
}

// GrantPoints adds loyalty balance out of band.
func (s *Server) GrantPoints(email string, points int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.loyaltyLocked(email)
	l.Points += points
	l.Available += points
	l.TotalEarned += points
}

func (s *Server) nextIDLocked() string {
	s.seq++
	return fmt.Sprintf("%d", s.seq)
}

func (s *Server) loyaltyLocked(email string) *domain.LoyaltyInfo {
	l, ok := s.loyalty[email]
	if !ok {
		l = &domain.LoyaltyInfo{}
		s.loyalty[email] = l
	}
	return l
}

// ---- routing ----

func (s *Server) routes() {
	m := chi.NewRouter()
	m.Use(chimw.Recoverer)

	m.Post("/api/auth/register", s.register)
	m.Post("/api/auth/login", s.login)
	m.Get("/api/hotels", s.searchHotels)
	m.Get("/api/hotels/{id}", s.getHotel)

	m.Route("/api/user", func(r chi.Router) {
		r.Use(s.auth("ROLE_USER", "ROLE_MANAGER", "ROLE_ADMIN"))
		r.Post("/bookings", s.createBooking)
		r.Get("/bookings", s.listBookings)
		r.Post("/payments", s.createPayment)
		r.Get("/payments", s.listPayments)
		r.Post("/reviews", s.addReview)
		r.Get("/reviews", s.listUserReviews)
		r.Get("/loyalty", s.getLoyalty)
		r.Post("/loyalty/redeem", s.redeemLoyalty)
	})

	m.Route("/api/manager", func(r chi.Router) {
		r.Use(s.auth("ROLE_MANAGER", "ROLE_ADMIN"))
		r.Get("/hotels", s.managerHotels)
		r.Post("/hotels", s.addHotel)
		r.Get("/bookings", s.managerBookings)
		r.Get("/reviews", s.managerReviews)
		r.Post("/reviews/{id}/reply", s.replyToReview)
	})

	m.Route("/api/admin", func(r chi.Router) {
		r.Use(s.auth("ROLE_ADMIN"))
		r.Get("/hotels", s.adminAllHotels)
		r.Get("/hotels/{status}", s.adminHotelsByStatus)
		r.Put("/hotels/{id}/approve", s.setStatus(domain.StatusApproved))
		r.Put("/hotels/{id}/reject", s.setStatus(domain.StatusRejected))
		r.Put("/hotels/{id}/pending", s.setStatus(domain.StatusPending))
		r.Delete("/hotels/{id}", s.deleteHotel)
		r.Get("/users", s.adminUsers)
		r.Put("/users/{id}/role", s.setUserRole)
		r.Delete("/users/{id}", s.deleteUser)
		r.Get("/dashboard/stats", s.dashboardStats)
	})

	s.mux = m
}

// ---- auth ----

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(a *account) (string, error) {
	claims := tokenClaims{
		Role: a.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.Email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) auth(roles ...string) func(http.Handler) http.Handler {
	allowed := map[string]bool{}
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				writeErr(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			var claims tokenClaims
			_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
				return s.secret, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil {
				writeErr(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if !allowed[claims.Role] {
				writeErr(w, http.StatusForbidden, "insufficient role")
				return
			}
			r.Header.Set("X-Test-Email", claims.Subject)
			r.Header.Set("X-Test-Role", claims.Role)
			next.ServeHTTP(w, r)
		})
	}
}

func caller(r *http.Request) (email, role string) {
	return r.Header.Get("X-Test-Email"), r.Header.Get("X-Test-Role")
}

// ---- auth handlers ----

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in struct{ Name, Email, Password, Role string }
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	if in.Role == "ROLE_ADMIN" {
		writeErr(w, http.StatusForbidden, "admin accounts cannot self-register")
		return
	}
	if in.Role == "" {
		in.Role = "ROLE_USER"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[in.Email]; exists {
		writeErr(w, http.StatusConflict, "email already registered")
		return
	}
	s.accounts[in.Email] = &account{Name: in.Name, Email: in.Email, Password: in.Password, Role: in.Role}
	s.loyalty[in.Email] = &domain.LoyaltyInfo{}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct{ Email, Password string }
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	s.mu.Lock()
	a, ok := s.accounts[in.Email]
	s.mu.Unlock()
	if !ok || a.Password != in.Password {
		writeErr(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	tok, err := s.issueToken(a)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "token signing failed")
		return
	}
	writeJSON(w, http.StatusOK, domain.LoginResult{
		Username: a.Name,
		Roles:    []string{a.Role},
		JWTToken: tok,
	})
}

// ---- public hotel handlers ----

func (s *Server) searchHotels(w http.ResponseWriter, r *http.Request) {
	loc := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("location")))
	rt, ok := domain.ParseRoomType(r.URL.Query().Get("roomType"))
	if !ok {
		rt = domain.RoomStandard
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.HotelSummary{}
	for _, h := range s.hotels {
		if h.Status != domain.StatusApproved {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(h.Location), loc) {
			continue
		}
		sum := domain.HotelSummary{
			ID:        h.ID,
			Name:      h.Name,
			Image:     h.ImageURL,
			Amenities: h.Amenities,
			Location:  h.Location,
		}
		for _, row := range h.Rooms {
			if row.Type == rt {
				sum.Price = row.Price
			}
		}
		out = append(out, sum)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getHotel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hotels[chi.URLParam(r, "id")]
	if !ok || h.Status != domain.StatusApproved {
		writeErr(w, http.StatusNotFound, "hotel not found")
		return
	}
	det := domain.HotelDetail{
		ID:        h.ID,
		Name:      h.Name,
		Images:    []string{h.ImageURL},
		Amenities: h.Amenities,
		Location:  h.Location,
		Rooms:     map[domain.RoomType]domain.RoomOffer{},
	}
	for _, row := range h.Rooms {
		det.Rooms[row.Type] = domain.RoomOffer{Price: row.Price, Available: row.Available}
	}
	writeJSON(w, http.StatusOK, det)
}

// ---- guest handlers ----

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	email, _ := caller(r)
	var req domain.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hotels[req.HotelID]
	if !ok {
		writeErr(w, http.StatusNotFound, "hotel not found")
		return
	}
	if req.Nights <= 0 {
		writeErr(w, http.StatusBadRequest, "checkout must be after checkin")
		return
	}
	b := &bookingRec{Booking: domain.Booking{
		ID:            s.nextIDLocked(),
		HotelID:       h.ID,
		HotelName:     h.Name,
		UserEmail:     email,
		RoomType:      req.RoomType,
		Checkin:       req.Checkin,
		Checkout:      req.Checkout,
		Nights:        req.Nights,
		PricePerNight: req.PricePerNight,
		Total:         req.Total,
		Status:        domain.BookingPendingPayment,
	}}
	s.bookings[b.ID] = b
	writeJSON(w, http.StatusCreated, b.Booking)
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	email, _ := caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Booking{}
	for _, b := range s.bookings {
		if b.UserEmail == email {
			out = append(out, b.Booking)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createPayment(w http.ResponseWriter, r *http.Request) {
	email, _ := caller(r)
	var req domain.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[req.BookingID]
	if !ok {
		writeErr(w, http.StatusNotFound, "booking not found")
		return
	}
	if b.Status == domain.BookingPaid && req.IdempotencyKey != "" && req.IdempotencyKey == b.PaymentKey {
		// same submission replayed: return the recorded payment, charge nothing
		for _, p := range s.payments {
			if p.BookingID == b.ID {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
	}
	if b.Status == domain.BookingPaid {
		writeErr(w, http.StatusConflict, "payment already completed for this booking")
		return
	}

	l := s.loyaltyLocked(email)
	if req.LoyaltyPointsUsed > 0 {
		if req.LoyaltyPointsUsed > l.Available {
			writeErr(w, http.StatusBadRequest, "insufficient loyalty points")
			return
		}
		l.Available -= req.LoyaltyPointsUsed
		l.Points -= req.LoyaltyPointsUsed
		l.TotalRedeemed += req.LoyaltyPointsUsed
		l.History = append(l.History, domain.LoyaltyEntry{
			ID:          s.nextIDLocked(),
			Type:        "redeemed",
			Points:      req.LoyaltyPointsUsed,
			Description: "redeemed on booking " + b.ID,
			Date:        time.Now().Format(domain.DateLayout),
		})
	}

	charged := req.Amount.Sub(decimal.NewFromInt(int64(req.LoyaltyPointsUsed)))
	if charged.IsNegative() {
		charged = decimal.Zero
	}
	p := domain.Payment{
		ID:        s.nextIDLocked(),
		BookingID: b.ID,
		UserEmail: email,
		Amount:    charged,
		Method:    req.Method,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	s.payments = append(s.payments, p)
	b.Status = domain.BookingPaid
	b.PaymentKey = req.IdempotencyKey
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	email, _ := caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Payment{}
	for _, p := range s.payments {
		if p.UserEmail == email {
			out = append(out, p)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) addReview(w http.ResponseWriter, r *http.Request) {
	email, _ := caller(r)
	var req domain.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeErr(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	if len(strings.TrimSpace(req.Comment)) < 10 {
		writeErr(w, http.StatusBadRequest, "comment must be at least 10 characters")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[req.BookingID]
	if !ok || b.UserEmail != email {
		writeErr(w, http.StatusNotFound, "booking not found")
		return
	}
	rev := &domain.Review{
		ID:        s.nextIDLocked(),
		BookingID: b.ID,
		HotelID:   b.HotelID,
		HotelName: b.HotelName,
		UserEmail: email,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	s.reviews[rev.ID] = rev

	// reviews earn a fixed reward
	l := s.loyaltyLocked(email)
	l.Points += reviewRewardPoints
	l.Available += reviewRewardPoints
	l.TotalEarned += reviewRewardPoints
	l.History = append(l.History, domain.LoyaltyEntry{
		ID:          s.nextIDLocked(),
		Type:        "earned",
		Points:      reviewRewardPoints,
		Description: "review of " + b.HotelName,
		Date:        time.Now().Format(domain.DateLayout),
	})

	writeJSON(w, http.StatusCreated, rev)
}

func (s *Server) listUserReviews(w http.ResponseWriter, r *http.Request) {
	email, _ := caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*domain.Review{}
	for _, rev := range s.reviews {
		if rev.UserEmail == email {
			out = append(out, rev)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getLoyalty(w http.ResponseWriter, r *http.Request) {
	email, _ := caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.loyaltyLocked(email))
}

func (s *Server) redeemLoyalty(w http.ResponseWriter, r *http.Request) {
	email, _ := caller(r)
	var in struct {
		Points int `json:"points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.loyaltyLocked(email)
	if in.Points <= 0 || in.Points > l.Available {
		writeErr(w, http.StatusBadRequest, "insufficient loyalty points")
		return
	}
	l.Points -= in.Points
	l.Available -= in.Points
	l.TotalRedeemed += in.Points
	l.History = append(l.History, domain.LoyaltyEntry{
		ID:          s.nextIDLocked(),
		Type:        "redeemed",
		Points:      in.Points,
		Description: "standalone redemption",
		Date:        time.Now().Format(domain.DateLayout),
	})
	writeJSON(w, http.StatusOK, l)
}

// ---- manager handlers ----

func (s *Server) managerHotels(w http.ResponseWriter, r *http.Request) {
	email, _ := caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*domain.HotelRecord{}
	for _, h := range s.hotels {
		if h.ManagerEmail == email {
			out = append(out, h)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) addHotel(w http.ResponseWriter, r *http.Request) {
	email, _ := caller(r)
	var in domain.NewHotel
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Location) == "" {
		writeErr(w, http.StatusBadRequest, "name and location are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &domain.HotelRecord{
		ID:           s.nextIDLocked(),
		Name:         in.Name,
		Location:     in.Location,
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		Amenities:    in.Amenities,
		Rooms:        in.Rooms,
		ManagerEmail: email,
		Status:       domain.StatusPending,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}
	s.hotels[h.ID] = h
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) managerBookings(w http.ResponseWriter, r *http.Request) {
	email, _ := caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Booking{}
	for _, b := range s.bookings {
		if h, ok := s.hotels[b.HotelID]; ok && h.ManagerEmail == email {
			out = append(out, b.Booking)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) managerReviews(w http.ResponseWriter, r *http.Request) {
	email, _ := caller(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*domain.Review{}
	for _, rev := range s.reviews {
		if h, ok := s.hotels[rev.HotelID]; ok && h.ManagerEmail == email {
			out = append(out, rev)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) replyToReview(w http.ResponseWriter, r *http.Request) {
	email, _ := caller(r)
	var in struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rev, ok := s.reviews[chi.URLParam(r, "id")]
	if !ok {
		writeErr(w, http.StatusNotFound, "review not found")
		return
	}
	rev.Reply = &domain.ReviewReply{
		ManagerEmail: email,
		Text:         in.Reply,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, rev)
}

// ---- admin handlers ----

func (s *Server) adminAllHotels(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*domain.HotelRecord{}
	for _, h := range s.hotels {
		out = append(out, h)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) adminHotelsByStatus(w http.ResponseWriter, r *http.Request) {
	st, ok := domain.ParseHotelStatus(chi.URLParam(r, "status"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "unknown status")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*domain.HotelRecord{}
	for _, h := range s.hotels {
		if h.Status == st {
			out = append(out, h)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) setStatus(st domain.HotelStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		h, ok := s.hotels[chi.URLParam(r, "id")]
		if !ok {
			writeErr(w, http.StatusNotFound, "hotel not found")
			return
		}
		h.Status = st
		writeJSON(w, http.StatusOK, h)
	}
}

func (s *Server) deleteHotel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	if _, ok := s.hotels[id]; !ok {
		writeErr(w, http.StatusNotFound, "hotel not found")
		return
	}
	delete(s.hotels, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []map[string]string{}
	for _, a := range s.accounts {
		out = append(out, map[string]string{
			"id":    a.Email,
			"email": a.Email,
			"name":  a.Name,
			"role":  a.Role,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) setUserRole(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[chi.URLParam(r, "id")]
	if !ok {
		writeErr(w, http.StatusNotFound, "user not found")
		return
	}
	a.Role = in.Role
	w.WriteHeader(http.StatusOK)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	if _, ok := s.accounts[id]; !ok {
		writeErr(w, http.StatusNotFound, "user not found")
		return
	}
	delete(s.accounts, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) dashboardStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := domain.Stats{
		TotalHotels:   len(s.hotels),
		TotalUsers:    len(s.accounts),
		TotalBookings: len(s.bookings),
	}
	for _, h := range s.hotels {
		if h.Status == domain.StatusPending {
			st.PendingHotels++
		}
	}
	writeJSON(w, http.StatusOK, st)
}

// ---- response helpers ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
