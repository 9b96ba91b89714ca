package service

import (
	"context"
	"time"

	"event_planner/model"
	"event_planner/service/ports"
	"event_planner/utils"
)

const analyticsMonths = 12

type StatsService struct {
	repo ports.StatsRepo
	now  func() time.Time
}

func NewStatsService(repo ports.StatsRepo) *StatsService {
	return &StatsService{repo: repo, now: time.Now}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// fillMonths returns one entry per month from since onwards, zero where counts has none.
func fillMonths(since time.Time, months int, counts []model.MonthCount) []model.MonthCount {
	byMonth := make(map[string]int64, len(counts))
	for _, c := range counts {
		byMonth[c.Month] = c.Count
	}
	out := make([]model.MonthCount, months)
	for i := range out {
		key := since.AddDate(0, i, 0).Format("2006-01")
		out[i] = model.MonthCount{Month: key, Count: byMonth[key]}
	}
	return out
}

func (s *StatsService) Analytics(ctx context.Context) (*model.Analytics, error) {
	var (
		out model.Analytics
		err error
	)
	thisMonth := monthStart(s.now())
	lastMonth := thisMonth.AddDate(0, -1, 0)
	since := thisMonth.AddDate(0, -(analyticsMonths - 1), 0)

	if out.EventsByStatus, err = s.repo.EventsByStatus(ctx); err != nil {
		return nil, err
	}
	perMonth, err := s.repo.EventsPerMonth(ctx, since)
	if err != nil {
		return nil, err
	}
	out.EventsPerMonth = fillMonths(since, analyticsMonths, perMonth)
	if out.PackagePopularity, err = s.repo.PackagePopularity(ctx); err != nil {
		return nil, err
	}
	if out.ConfirmedBudget, err = s.repo.ConfirmedBudget(ctx); err != nil {
		return nil, err
	}

	current, err := s.repo.CountEventsCreated(ctx, thisMonth, thisMonth.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	previous, err := s.repo.CountEventsCreated(ctx, lastMonth, thisMonth)
	if err != nil {
		return nil, err
	}
	out.EventGrowth = model.Growth{
		ThisMonth: current,
		LastMonth: previous,
		Percent:   utils.CalculateGrowth(float64(current), float64(previous)),
	}

	if out.Guests, err = s.repo.GuestTotals(ctx); err != nil {
		return nil, err
	}
	if out.Gallery, err = s.repo.GalleryTotals(ctx); err != nil {
		return nil, err
	}
	if out.UsersByRole, err = s.repo.UsersByRole(ctx); err != nil {
		return nil, err
	}
	if out.UnreadChatMessages, err = s.repo.UnreadUserMessages(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}
