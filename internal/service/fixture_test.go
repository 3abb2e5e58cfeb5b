package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/colaai/colaai-api/internal/db"
	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/repository"
	"github.com/colaai/colaai-api/internal/repository/dao"
)

type fixture struct {
	db           *gorm.DB
	users        *repository.UserRepository
	categories   *repository.CategoryRepository
	events       *repository.EventRepository
	inscriptions *repository.InscriptionRepository
	reviews      *repository.ReviewRepository
	category     domain.EventCategory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	database, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(database))
	t.Cleanup(func() {
		sqlDB, err := database.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &fixture{
		db:           database,
		users:        repository.NewUserRepository(dao.NewUserDAO(database)),
		categories:   repository.NewCategoryRepository(dao.NewCategoryDAO(database)),
		events:       repository.NewEventRepository(dao.NewEventDAO(database)),
		inscriptions: repository.NewInscriptionRepository(dao.NewInscriptionDAO(database)),
		reviews:      repository.NewReviewRepository(dao.NewReviewDAO(database)),
	}

	f.category, err = f.categories.Create(context.Background(), domain.EventCategory{Name: "Tecnologia", Color: "#3B82F6"})
	require.NoError(t, err)

	return f
}

func (f *fixture) newUser(t *testing.T, role domain.Role) domain.User {
	t.Helper()

	user, err := f.users.Create(context.Background(), domain.User{
		Name:     "User " + string(role),
		Email:    uuid.NewString() + "@test.com",
		Password: "not-a-hash",
		Role:     role,
	})
	require.NoError(t, err)

	return user
}

// newEvent stores an event straight through the dao so tests can create
// events the service would refuse, such as ones that already started.
func (f *fixture) newEvent(t *testing.T, organizer domain.User, opts ...func(*dao.Event)) domain.Event {
	t.Helper()

	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	event := dao.Event{
		Title:           "Go Meetup",
		Description:     "Talks about Go",
		StartDate:       start,
		EndDate:         start.Add(3 * time.Hour),
		Location:        "São Paulo",
		MaxParticipants: 10,
		IsPublic:        true,
		Status:          dao.EventStatusPublished,
		OrganizerID:     organizer.ID,
		CategoryID:      f.category.ID,
	}
	for _, opt := range opts {
		opt(&event)
	}

	created, err := dao.NewEventDAO(f.db).Insert(context.Background(), event)
	require.NoError(t, err)

	found, err := f.events.FindByID(context.Background(), created.ID)
	require.NoError(t, err)

	return found
}

func withCapacity(n int) func(*dao.Event) {
	return func(e *dao.Event) { e.MaxParticipants = n }
}

func withPrice(price float64) func(*dao.Event) {
	return func(e *dao.Event) { e.Price = price }
}

func withStart(start time.Time) func(*dao.Event) {
	return func(e *dao.Event) {
		e.StartDate = start.UTC()
		e.EndDate = start.UTC().Add(2 * time.Hour)
	}
}

func withStatus(status string) func(*dao.Event) {
	return func(e *dao.Event) { e.Status = status }
}

func private() func(*dao.Event) {
	return func(e *dao.Event) { e.IsPublic = false }
}

func ptr[T any](v T) *T {
	return &v
}
