package db_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/colaai/colaai-api/internal/db"
	"github.com/colaai/colaai-api/internal/repository/dao"
)

// startPostgres runs a throwaway postgres container. The test is skipped when
// no Docker daemon is reachable.
func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=colaai",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=colaai",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })
	_ = resource.Expire(120)

	url := fmt.Sprintf("postgres://colaai:secret@%s/colaai?sslmode=disable", resource.GetHostPort("5432/tcp"))

	var database *gorm.DB
	pool.MaxWait = time.Minute
	err = pool.Retry(func() error {
		database, err = db.OpenPostgresWithURL(url)
		if err != nil {
			return err
		}
		sqlDB, err := database.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, dao.InitTables(database))

	return database
}

func TestPostgres(t *testing.T) {
	database := startPostgres(t)
	ctx := context.Background()

	require.NoError(t, dao.Seed(ctx, database))

	users := dao.NewUserDAO(database)

	t.Run("Duplicate email maps to sentinel", func(t *testing.T) {
		_, err := users.Insert(ctx, dao.User{Name: "Again", Email: "admin@test.com", Password: "hash", Role: "PARTICIPANT"})
		assert.ErrorIs(t, err, dao.ErrUserEmailExists)
	})

	t.Run("Registrations never exceed capacity", func(t *testing.T) {
		organizer, err := users.FindByEmail(ctx, "org@test.com")
		require.NoError(t, err)

		var category dao.EventCategory
		require.NoError(t, database.Where("name = ?", "Tecnologia").First(&category).Error)

		start := time.Now().UTC().Add(48 * time.Hour)
		event, err := dao.NewEventDAO(database).Insert(ctx, dao.Event{
			Title:           "Pg Conf",
			Description:     "Talks",
			StartDate:       start,
			EndDate:         start.Add(time.Hour),
			Location:        "Curitiba",
			MaxParticipants: 3,
			IsPublic:        true,
			Status:          dao.EventStatusPublished,
			OrganizerID:     organizer.ID,
			CategoryID:      category.ID,
		})
		require.NoError(t, err)

		errFull := errors.New("full")
		register := func(event dao.Event, seats int64, _ *dao.Inscription) (dao.Inscription, error) {
			if seats >= int64(event.MaxParticipants) {
				return dao.Inscription{}, errFull
			}
			return dao.Inscription{
				Status:          "ACTIVE",
				PaymentStatus:   "PAID",
				Paid:            true,
				TicketCode:      uuid.NewString(),
				InscriptionDate: time.Now().UTC(),
			}, nil
		}

		const attempts = 12
		participants := make([]uuid.UUID, attempts)
		for i := range participants {
			u, err := users.Insert(ctx, dao.User{
				Name:     fmt.Sprintf("Participant %d", i),
				Email:    fmt.Sprintf("p%d@test.com", i),
				Password: "hash",
				Role:     "PARTICIPANT",
			})
			require.NoError(t, err)
			participants[i] = u.ID
		}

		inscriptions := dao.NewInscriptionDAO(database)

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			won  int
			full int
		)
		for _, participantID := range participants {
			wg.Add(1)
			go func(participantID uuid.UUID) {
				defer wg.Done()

				_, err := inscriptions.Register(ctx, event.ID, participantID, register)

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					won++
				case errors.Is(err, errFull):
					full++
				}
			}(participantID)
		}
		wg.Wait()

		assert.Equal(t, 3, won)
		assert.Equal(t, attempts-3, full)
	})
}
