package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
)

type EventInscriptionLister interface {
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Inscription, error)
}

type StatsService struct {
	events       EventFinder
	inscriptions EventInscriptionLister
}

func NewStatsService(events EventFinder, inscriptions EventInscriptionLister) *StatsService {
	return &StatsService{
		events:       events,
		inscriptions: inscriptions,
	}
}

// EventStats summarises registrations, revenue and reviews of one event for
// its owner or an admin. Revenue counts paid inscriptions that were not
// cancelled; days are UTC calendar days.
func (s *StatsService) EventStats(ctx context.Context, session domain.Session, eventID uuid.UUID) (domain.EventStats, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return domain.EventStats{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	if !session.CanManage(event.OrganizerID) {
		return domain.EventStats{}, ErrPermissionDenied
	}

	inscriptions, err := s.inscriptions.FindByEvent(ctx, eventID)
	if err != nil {
		return domain.EventStats{}, fmt.Errorf("s.inscriptions.FindByEvent -> %w", err)
	}

	stats := domain.EventStats{
		EventID:            eventID,
		TotalRegistrations: int64(len(inscriptions)),
		AverageRating:      event.AverageRating,
		TotalReviews:       event.TotalReviews,
	}

	registrations := map[string]int64{}
	revenue := map[string]float64{}
	for _, ins := range inscriptions {
		day := ins.InscriptionDate.UTC().Format("2006-01-02")
		registrations[day]++

		if ins.HoldsSeat() {
			stats.ActiveRegistrations++
		}
		if ins.Status == domain.InscriptionCheckedIn {
			stats.CheckedInCount++
		}
		if ins.Paid && ins.Status != domain.InscriptionCancelled && !event.IsFree() {
			stats.TotalRevenue += event.Price
			revenue[day] += event.Price
		}
	}

	stats.RegistrationsByDay = make([]domain.DayCount, 0, len(registrations))
	for day, n := range registrations {
		stats.RegistrationsByDay = append(stats.RegistrationsByDay, domain.DayCount{Date: day, Count: n})
	}
	sort.Slice(stats.RegistrationsByDay, func(i, j int) bool {
		return stats.RegistrationsByDay[i].Date < stats.RegistrationsByDay[j].Date
	})

	stats.RevenueByDay = make([]domain.DayAmount, 0, len(revenue))
	for day, amount := range revenue {
		stats.RevenueByDay = append(stats.RevenueByDay, domain.DayAmount{Date: day, Amount: amount})
	}
	sort.Slice(stats.RevenueByDay, func(i, j int) bool {
		return stats.RevenueByDay[i].Date < stats.RevenueByDay[j].Date
	})

	return stats, nil
}
