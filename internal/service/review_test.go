package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/service"
)

func TestReviewService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := service.NewReviewService(f.reviews, f.events)
	event := f.newEvent(t, f.newUser(t, domain.RoleOrganizer))
	user := f.newUser(t, domain.RoleParticipant)

	first, err := svc.AddReview(ctx, user.Session(), event.ID, 4, "  Muito bom  ")
	require.NoError(t, err)
	assert.Equal(t, "Muito bom", first.Comment)
	assert.Equal(t, user.ID, first.UserID)

	_, err = svc.AddReview(ctx, user.Session(), event.ID, 2, "")
	require.NoError(t, err)

	for _, rating := range []int{0, 6} {
		_, err = svc.AddReview(ctx, user.Session(), event.ID, rating, "")
		assert.ErrorIs(t, err, service.ErrInvalidRating)
	}

	_, err = svc.AddReview(ctx, user.Session(), uuid.New(), 3, "")
	assert.ErrorIs(t, err, service.ErrEventNotFound)

	reviews, err := svc.ListReviews(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	require.NotNil(t, reviews[0].User)
	assert.Equal(t, user.Name, reviews[0].User.Name)

	reloaded, err := f.events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, reloaded.AverageRating, 0.001)
	assert.EqualValues(t, 2, reloaded.TotalReviews)
}
