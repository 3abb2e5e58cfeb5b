package request

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colaai/colaai-api/internal/domain"
)

func TestCreateEventRequest(t *testing.T) {
	start := time.Date(2030, 5, 1, 19, 0, 0, 0, time.UTC)
	categoryID := uuid.NewString()

	valid := func() CreateEventRequest {
		return CreateEventRequest{
			Title:           "Go Meetup",
			Description:     "Talks",
			StartDate:       start,
			EndDate:         start.Add(2 * time.Hour),
			Location:        "Recife",
			MaxParticipants: 30,
			CategoryID:      categoryID,
		}
	}

	t.Run("Defaults to a free public event", func(t *testing.T) {
		req := valid()
		require.NoError(t, req.Validate())

		event := req.Event()
		assert.True(t, event.IsPublic)
		assert.Zero(t, event.Price)
		assert.Equal(t, categoryID, event.CategoryID.String())
	})

	t.Run("Explicit price and visibility", func(t *testing.T) {
		req := valid()
		price := 49.9
		public := false
		req.Price = &price
		req.IsPublic = &public
		require.NoError(t, req.Validate())

		event := req.Event()
		assert.False(t, event.IsPublic)
		assert.Equal(t, 49.9, event.Price)
	})

	invalid := map[string]func(r *CreateEventRequest){
		"Missing title":       func(r *CreateEventRequest) { r.Title = "" },
		"Missing start":       func(r *CreateEventRequest) { r.StartDate = time.Time{} },
		"Zero capacity":       func(r *CreateEventRequest) { r.MaxParticipants = 0 },
		"Negative price":      func(r *CreateEventRequest) { p := -1.0; r.Price = &p },
		"Latitude off range":  func(r *CreateEventRequest) { l := 91.0; r.Latitude = &l },
		"Unknown status":      func(r *CreateEventRequest) { r.Status = "OPEN" },
		"Category is no UUID": func(r *CreateEventRequest) { r.CategoryID = "tech" },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			req := valid()
			mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestUpdateEventRequest(t *testing.T) {
	title := ""
	req := UpdateEventRequest{Title: &title}
	assert.Error(t, req.Validate())

	capacity := 0
	req = UpdateEventRequest{MaxParticipants: &capacity}
	assert.Error(t, req.Validate())

	status := "CANCELLED"
	categoryID := uuid.NewString()
	capacity = 20
	req = UpdateEventRequest{Status: &status, CategoryID: &categoryID, MaxParticipants: &capacity}
	require.NoError(t, req.Validate())

	update := req.Update()
	require.NotNil(t, update.Status)
	assert.Equal(t, domain.EventCancelled, *update.Status)
	require.NotNil(t, update.CategoryID)
	assert.Equal(t, categoryID, update.CategoryID.String())
	assert.Equal(t, 20, *update.MaxParticipants)
	assert.Nil(t, update.Title)

	assert.NoError(t, (&UpdateEventRequest{}).Validate())

	empty := ""
	req = UpdateEventRequest{CategoryID: &empty}
	assert.Error(t, req.Validate())

	notUUID := "tech"
	req = UpdateEventRequest{CategoryID: &notUUID}
	assert.Error(t, req.Validate())
}

func TestListEventsQuery(t *testing.T) {
	organizerID := uuid.NewString()
	q := ListEventsQuery{
		Search:      "go",
		StartDate:   "2030-01-01",
		EndDate:     "2030-02-01T10:00:00-03:00",
		OrganizerID: organizerID,
	}
	require.NoError(t, q.Validate())

	filter := q.Filter()
	assert.Equal(t, "go", filter.Search)
	require.NotNil(t, filter.StartFrom)
	assert.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), *filter.StartFrom)
	require.NotNil(t, filter.StartUntil)
	assert.Equal(t, time.Date(2030, 2, 1, 13, 0, 0, 0, time.UTC), *filter.StartUntil)
	require.NotNil(t, filter.OrganizerID)
	assert.Equal(t, organizerID, filter.OrganizerID.String())

	empty := ListEventsQuery{}
	require.NoError(t, empty.Validate())
	assert.Equal(t, domain.EventFilter{}, empty.Filter())

	assert.Error(t, (&ListEventsQuery{StartDate: "01/02/2030"}).Validate())
	assert.Error(t, (&ListEventsQuery{OrganizerID: "me"}).Validate())
}
