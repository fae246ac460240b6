package app_test

import (
	"context"
	"testing"

	"smarthotel/internal/app"
	"smarthotel/internal/domain"
)

func TestValidateReview(t *testing.T) {
	valid := domain.ReviewRequest{BookingID: "b1", HotelID: "h1", Rating: 4, Comment: "clean rooms, helpful staff"}
	if err := app.ValidateReview(valid); err != nil {
		t.Fatalf("valid review rejected: %v", err)
	}

	bad := []domain.ReviewRequest{
		{Rating: 0, Comment: valid.Comment},             // rating below range
		{Rating: 6, Comment: valid.Comment},             // rating above range
		{Rating: 9, Comment: "bad"},                     // both wrong
		{Rating: 4, Comment: "too short"},               // 9 chars
		{Rating: 4, Comment: "   padded    "},           // 6 chars after trim
		{Rating: 4, Comment: ""},                        // empty
	}
	for i, r := range bad {
		if err := app.ValidateReview(r); err == nil {
			t.Fatalf("case %d accepted: %+v", i, r)
		}
	}
}

func TestReviews_InvalidSubmissionNeverReachesBackend(t *testing.T) {
	calls := 0
	be := &fakeBackend{
		addReviewFn: func(req domain.ReviewRequest) (domain.Review, error) {
			calls++
			return domain.Review{ID: "r1", Rating: req.Rating, Comment: req.Comment}, nil
		},
	}
	r := app.NewReviews(be)
	ctx := context.Background()

	if _, err := r.Submit(ctx, domain.ReviewRequest{Rating: 9, Comment: "bad"}); err == nil {
		t.Fatal("invalid review accepted")
	}
	if calls != 0 {
		t.Fatalf("invalid review reached the backend, calls = %d", calls)
	}

	rev, err := r.Submit(ctx, domain.ReviewRequest{BookingID: "b1", Rating: 5, Comment: "spotless rooms, great view"})
	if err != nil {
		t.Fatalf("valid review rejected: %v", err)
	}
	if calls != 1 || rev.ID != "r1" {
		t.Fatalf("valid review not submitted: calls=%d rev=%+v", calls, rev)
	}
}
