package service

import (
	"context"
	"testing"
	"time"

	"event_planner/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatsRepo struct {
	since   time.Time
	ranges  [][2]time.Time
	perMon  []model.MonthCount
	created map[string]int64
}

func (r *fakeStatsRepo) EventsByStatus(context.Context) ([]model.StatusCount, error) {
	return []model.StatusCount{{Status: "pending", Count: 3}}, nil
}

func (r *fakeStatsRepo) EventsPerMonth(_ context.Context, since time.Time) ([]model.MonthCount, error) {
	r.since = since
	return r.perMon, nil
}

func (r *fakeStatsRepo) PackagePopularity(context.Context) ([]model.PackageCount, error) {
	return []model.PackageCount{{PackageName: "Gold", Count: 2}}, nil
}

func (r *fakeStatsRepo) ConfirmedBudget(context.Context) (float64, error) { return 250000, nil }

func (r *fakeStatsRepo) CountEventsCreated(_ context.Context, from, to time.Time) (int64, error) {
	r.ranges = append(r.ranges, [2]time.Time{from, to})
	return r.created[from.Format("2006-01")], nil
}

func (r *fakeStatsRepo) GuestTotals(context.Context) (model.GuestTotals, error) {
	return model.GuestTotals{Guests: 10, Attending: 6}, nil
}

func (r *fakeStatsRepo) GalleryTotals(context.Context) (model.GalleryTotals, error) {
	return model.GalleryTotals{Published: 4}, nil
}

func (r *fakeStatsRepo) UsersByRole(context.Context) ([]model.StatusCount, error) {
	return []model.StatusCount{{Status: "user", Count: 8}}, nil
}

func (r *fakeStatsRepo) UnreadUserMessages(context.Context) (int64, error) { return 5, nil }

func TestFillMonthsPadsGaps(t *testing.T) {
	since := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	got := fillMonths(since, 4, []model.MonthCount{{Month: "2025-12", Count: 3}, {Month: "2026-02", Count: 1}})

	assert.Equal(t, []model.MonthCount{
		{Month: "2025-11", Count: 0},
		{Month: "2025-12", Count: 3},
		{Month: "2026-01", Count: 0},
		{Month: "2026-02", Count: 1},
	}, got)
}

func TestAnalytics(t *testing.T) {
	repo := &fakeStatsRepo{
		perMon:  []model.MonthCount{{Month: "2026-03", Count: 6}},
		created: map[string]int64{"2026-03": 6, "2026-02": 4},
	}
	svc := NewStatsService(repo)
	svc.now = func() time.Time { return time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC) }

	out, err := svc.Analytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), repo.since)
	require.Len(t, out.EventsPerMonth, 12)
	assert.Equal(t, "2025-04", out.EventsPerMonth[0].Month)
	assert.Equal(t, model.MonthCount{Month: "2026-03", Count: 6}, out.EventsPerMonth[11])

	assert.Equal(t, model.Growth{ThisMonth: 6, LastMonth: 4, Percent: 50}, out.EventGrowth)
	require.Len(t, repo.ranges, 2)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), repo.ranges[0][1])

	assert.Equal(t, 250000.0, out.ConfirmedBudget)
	assert.Equal(t, int64(5), out.UnreadChatMessages)
	assert.Equal(t, int64(6), out.Guests.Attending)
	assert.Equal(t, int64(4), out.Gallery.Published)
}
