package domain

// LoyaltyEntry is one accrual or redemption line in the loyalty history.
type LoyaltyEntry struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // earned|redeemed
	Points      int    `json:"points"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// LoyaltyInfo is the server-owned loyalty snapshot. The client never mutates it
// directly; redemption requests return a fresh snapshot that replaces the old one.
type LoyaltyInfo struct {
	Points        int            `json:"points"`
	Available     int            `json:"available"`
	TotalEarned   int            `json:"totalEarned"`
	TotalRedeemed int            `json:"totalRedeemed"`
	History       []LoyaltyEntry `json:"history"`
}

// AdminUser is one row of the admin users view.
type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalHotels   int `json:"totalHotels"`
	TotalUsers    int `json:"totalUsers"`
	TotalBookings int `json:"totalBookings"`
	PendingHotels int `json:"pendingHotels"`
}
