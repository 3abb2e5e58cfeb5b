package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/service"
)

func newEventInput(categoryID uuid.UUID) domain.Event {
	start := time.Now().Add(72 * time.Hour)

	return domain.Event{
		Title:           "GopherCon Brasil",
		Description:     "Two days of Go",
		StartDate:       start,
		EndDate:         start.Add(8 * time.Hour),
		Location:        "Florianópolis",
		MaxParticipants: 100,
		Price:           150,
		IsPublic:        true,
		CategoryID:      categoryID,
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		role    domain.Role
		mutate  func(e *domain.Event)
		wantErr error
	}{
		{
			name: "Organizer creates a published event",
			role: domain.RoleOrganizer,
		},
		{
			name: "Admin may organize",
			role: domain.RoleAdmin,
		},
		{
			name:    "Participant cannot create events",
			role:    domain.RoleParticipant,
			wantErr: service.ErrPermissionDenied,
		},
		{
			name:    "End before start",
			role:    domain.RoleOrganizer,
			mutate:  func(e *domain.Event) { e.EndDate = e.StartDate.Add(-time.Minute) },
			wantErr: service.ErrInvalidEventDates,
		},
		{
			name:    "End equal to start",
			role:    domain.RoleOrganizer,
			mutate:  func(e *domain.Event) { e.EndDate = e.StartDate },
			wantErr: service.ErrInvalidEventDates,
		},
		{
			name: "Start in the past",
			role: domain.RoleOrganizer,
			mutate: func(e *domain.Event) {
				e.StartDate = time.Now().Add(-time.Hour)
				e.EndDate = time.Now().Add(time.Hour)
			},
			wantErr: service.ErrEventStartInPast,
		},
		{
			name:    "Zero capacity",
			role:    domain.RoleOrganizer,
			mutate:  func(e *domain.Event) { e.MaxParticipants = 0 },
			wantErr: service.ErrInvalidCapacity,
		},
		{
			name:    "Negative price",
			role:    domain.RoleOrganizer,
			mutate:  func(e *domain.Event) { e.Price = -1 },
			wantErr: service.ErrInvalidPrice,
		},
		{
			name:    "Unknown category",
			role:    domain.RoleOrganizer,
			mutate:  func(e *domain.Event) { e.CategoryID = uuid.New() },
			wantErr: service.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := service.NewEventService(f.events, f.categories)
			user := f.newUser(t, tt.role)

			input := newEventInput(f.category.ID)
			if tt.mutate != nil {
				tt.mutate(&input)
			}

			created, err := svc.CreateEvent(ctx, user.Session(), input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.EventPublished, created.Status)
			assert.Equal(t, user.ID, created.OrganizerID)
			require.NotNil(t, created.Category)
			assert.Equal(t, f.category.Name, created.Category.Name)
			require.NotNil(t, created.Organizer)
			assert.Equal(t, user.ID, created.Organizer.ID)
			assert.EqualValues(t, 100, created.AvailableSpots)
		})
	}
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner updates some fields", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewEventService(f.events, f.categories)
		organizer := f.newUser(t, domain.RoleOrganizer)
		event := f.newEvent(t, organizer)

		updated, err := svc.UpdateEvent(ctx, organizer.Session(), event.ID, domain.EventUpdate{
			Title:    ptr("Go Meetup #2"),
			Price:    ptr(25.5),
			IsPublic: ptr(false),
		})
		require.NoError(t, err)

		assert.Equal(t, "Go Meetup #2", updated.Title)
		assert.Equal(t, 25.5, updated.Price)
		assert.False(t, updated.IsPublic)
		assert.Equal(t, event.Location, updated.Location)
		assert.Equal(t, event.MaxParticipants, updated.MaxParticipants)
	})

	t.Run("Only the owner may update", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewEventService(f.events, f.categories)
		event := f.newEvent(t, f.newUser(t, domain.RoleOrganizer))

		_, err := svc.UpdateEvent(ctx, f.newUser(t, domain.RoleAdmin).Session(), event.ID, domain.EventUpdate{Title: ptr("x")})
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("Dates are checked after merging", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewEventService(f.events, f.categories)
		organizer := f.newUser(t, domain.RoleOrganizer)
		event := f.newEvent(t, organizer)

		_, err := svc.UpdateEvent(ctx, organizer.Session(), event.ID, domain.EventUpdate{
			StartDate: ptr(event.EndDate.Add(time.Hour)),
		})
		assert.ErrorIs(t, err, service.ErrInvalidEventDates)
	})

	t.Run("Capacity cannot drop below held seats", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewEventService(f.events, f.categories)
		inscriptions := service.NewInscriptionService(f.inscriptions)
		organizer := f.newUser(t, domain.RoleOrganizer)
		event := f.newEvent(t, organizer, withCapacity(5))

		for i := 0; i < 3; i++ {
			_, err := inscriptions.Register(ctx, f.newUser(t, domain.RoleParticipant).Session(), event.ID, "")
			require.NoError(t, err)
		}

		_, err := svc.UpdateEvent(ctx, organizer.Session(), event.ID, domain.EventUpdate{MaxParticipants: ptr(2)})
		assert.ErrorIs(t, err, service.ErrCapacityBelowSeats)

		updated, err := svc.UpdateEvent(ctx, organizer.Session(), event.ID, domain.EventUpdate{MaxParticipants: ptr(3)})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.MaxParticipants)
		assert.Zero(t, updated.AvailableSpots)
	})

	t.Run("Unknown category", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewEventService(f.events, f.categories)
		organizer := f.newUser(t, domain.RoleOrganizer)
		event := f.newEvent(t, organizer)

		_, err := svc.UpdateEvent(ctx, organizer.Session(), event.ID, domain.EventUpdate{CategoryID: ptr(uuid.New())})
		assert.ErrorIs(t, err, service.ErrCategoryNotFound)
	})

	t.Run("Unknown event", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewEventService(f.events, f.categories)

		_, err := svc.UpdateEvent(ctx, f.newUser(t, domain.RoleOrganizer).Session(), uuid.New(), domain.EventUpdate{Title: ptr("x")})
		assert.ErrorIs(t, err, service.ErrEventNotFound)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Blocked while seats are held", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewEventService(f.events, f.categories)
		inscriptions := service.NewInscriptionService(f.inscriptions)
		organizer := f.newUser(t, domain.RoleOrganizer)
		participant := f.newUser(t, domain.RoleParticipant)
		event := f.newEvent(t, organizer)

		ins, err := inscriptions.Register(ctx, participant.Session(), event.ID, "")
		require.NoError(t, err)

		err = svc.DeleteEvent(ctx, organizer.Session(), event.ID)
		assert.ErrorIs(t, err, service.ErrEventHasInscriptions)

		_, err = inscriptions.Cancel(ctx, participant.Session(), ins.ID)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteEvent(ctx, organizer.Session(), event.ID))

		_, err = svc.GetEvent(ctx, event.ID)
		assert.ErrorIs(t, err, service.ErrEventNotFound)

		_, err = f.inscriptions.FindByID(ctx, ins.ID)
		assert.ErrorIs(t, err, service.ErrInscriptionNotFound)
	})

	t.Run("Admin may delete any event", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewEventService(f.events, f.categories)
		event := f.newEvent(t, f.newUser(t, domain.RoleOrganizer))

		assert.NoError(t, svc.DeleteEvent(ctx, f.newUser(t, domain.RoleAdmin).Session(), event.ID))
	})

	t.Run("Other organizers may not", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewEventService(f.events, f.categories)
		event := f.newEvent(t, f.newUser(t, domain.RoleOrganizer))

		err := svc.DeleteEvent(ctx, f.newUser(t, domain.RoleOrganizer).Session(), event.ID)
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})
}

func TestEventService_ListEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := service.NewEventService(f.events, f.categories)
	organizer := f.newUser(t, domain.RoleOrganizer)

	later := f.newEvent(t, organizer, withStart(time.Now().Add(96*time.Hour)))
	sooner := f.newEvent(t, organizer, withStart(time.Now().Add(24*time.Hour)))
	f.newEvent(t, organizer, private())
	f.newEvent(t, organizer, withStatus("DRAFT"))

	t.Run("Public listing is published, public and ordered by start", func(t *testing.T) {
		events, err := svc.ListEvents(ctx, domain.EventFilter{})
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, sooner.ID, events[0].ID)
		assert.Equal(t, later.ID, events[1].ID)
	})

	t.Run("Organizer listing includes every status", func(t *testing.T) {
		events, err := svc.ListEvents(ctx, domain.EventFilter{OrganizerID: &organizer.ID})
		require.NoError(t, err)
		assert.Len(t, events, 4)
	})

	t.Run("Search is case insensitive", func(t *testing.T) {
		events, err := svc.ListEvents(ctx, domain.EventFilter{Search: "  MEETUP "})
		require.NoError(t, err)
		assert.Len(t, events, 2)

		events, err = svc.ListEvents(ctx, domain.EventFilter{Search: "rust"})
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("Category and location filters", func(t *testing.T) {
		events, err := svc.ListEvents(ctx, domain.EventFilter{Category: "tecnologia", Location: "paulo"})
		require.NoError(t, err)
		assert.Len(t, events, 2)

		events, err = svc.ListEvents(ctx, domain.EventFilter{Category: "Negócios"})
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("Start date range", func(t *testing.T) {
		from := time.Now().Add(48 * time.Hour).UTC()
		events, err := svc.ListEvents(ctx, domain.EventFilter{StartFrom: &from})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, later.ID, events[0].ID)
	})
}
