package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"smarthotel/internal/domain"
)

// Loyalty math: 1 point = 1 currency unit of discount. Points usable on an
// order are bounded both by the balance and by the order amount itself.

// MaxUsablePoints returns min(available, floor(orderAmount)), never negative.
func MaxUsablePoints(available int, orderAmount decimal.Decimal) int {
	if available < 0 {
		available = 0
	}
	floor := int(orderAmount.Floor().IntPart())
	if floor < 0 {
		floor = 0
	}
	if available < floor {
		return available
	}
	return floor
}

// ClampPoints forces a requested redemption into [0, MaxUsablePoints]. Applied
// on every change so an out-of-range value can never reach a payment request.
func ClampPoints(requested, available int, orderAmount decimal.Decimal) int {
	limit := MaxUsablePoints(available, orderAmount)
	if requested < 0 {
		return 0
	}
	if requested > limit {
		return limit
	}
	return requested
}

// PointsDiscount converts points to a currency discount.
func PointsDiscount(points int) decimal.Decimal {
	if points < 0 {
		points = 0
	}
	return decimal.NewFromInt(int64(points))
}

// FinalAmount is the payable amount after the loyalty discount, floored at zero.
func FinalAmount(orderAmount decimal.Decimal, points int) decimal.Decimal {
	out := orderAmount.Sub(PointsDiscount(points))
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

var (
	upiRe    = regexp.MustCompile(`^\S+@\S+$`)
	expiryRe = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvRe    = regexp.MustCompile(`^\d{3,4}$`)
	wsRe     = regexp.MustCompile(`\s+`)
)

// ValidateUPI checks the virtual payment address shape.
func ValidateUPI(vpa string) error {
	if !upiRe.MatchString(vpa) {
		return fmt.Errorf("UPI ID must look like name@bank")
	}
	return nil
}

// ValidateCard checks the card fields: number of at least 12 characters with
// all whitespace stripped, a non-empty holder name, MM/YY expiry and a 3-4
// digit CVV.
func ValidateCard(c domain.CardDetails) error {
	if len(wsRe.ReplaceAllString(c.Number, "")) < 12 {
		return fmt.Errorf("card number is too short")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("cardholder name is required")
	}
	if !expiryRe.MatchString(c.Expiry) {
		return fmt.Errorf("expiry must be MM/YY")
	}
	if !cvvRe.MatchString(c.CVV) {
		return fmt.Errorf("CVV must be 3 or 4 digits")
	}
	return nil
}

// Rewards wraps the loyalty endpoints for the loyalty section: the server owns
// the balance, the client only requests redemption and replaces its snapshot.
type Rewards struct {
	backend domain.Backend
}

func NewRewards(b domain.Backend) *Rewards { return &Rewards{backend: b} }

func (r *Rewards) Info(ctx context.Context) (domain.LoyaltyInfo, error) {
	return r.backend.Loyalty(ctx)
}

// MinRedeem is the smallest standalone redemption the loyalty section accepts.
const MinRedeem = 100

// Redeem validates against the current snapshot before asking the server, then
// returns the server's refreshed snapshot.
func (r *Rewards) Redeem(ctx context.Context, info domain.LoyaltyInfo, points int) (domain.LoyaltyInfo, error) {
	if points < MinRedeem {
		return info, fmt.Errorf("minimum redemption is %d points", MinRedeem)
	}
	if points > info.Available {
		return info, fmt.Errorf("insufficient points: %d available, %d requested", info.Available, points)
	}
	return r.backend.RedeemLoyalty(ctx, points)
}
