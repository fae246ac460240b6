package app

import (
	"context"
	"fmt"
	"strings"

	"smarthotel/internal/domain"
)

// MinReviewComment is the shortest comment a review may carry, in characters
// after trimming.
const MinReviewComment = 10

// ValidateReview checks a review before anything is sent: rating is an integer
// in [1,5] and the comment is long enough to say something.
func ValidateReview(req domain.ReviewRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if len(strings.TrimSpace(req.Comment)) < MinReviewComment {
		return fmt.Errorf("comment must be at least %d characters", MinReviewComment)
	}
	return nil
}

// Reviews wraps the review endpoints for the reviews section. A submission
// never reaches the network until it validates.
type Reviews struct {
	backend domain.Backend
}

func NewReviews(b domain.Backend) *Reviews { return &Reviews{backend: b} }

func (r *Reviews) Submit(ctx context.Context, req domain.ReviewRequest) (domain.Review, error) {
	if err := ValidateReview(req); err != nil {
		return domain.Review{}, err
	}
	return r.backend.AddReview(ctx, req)
}

func (r *Reviews) List(ctx context.Context) ([]domain.Review, error) {
	return r.backend.ListReviews(ctx)
}
