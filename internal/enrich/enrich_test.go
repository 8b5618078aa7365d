package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"actadash/internal/models"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) string {
	return fixedNow.AddDate(0, 0, -n).Format(time.RFC3339)
}

func newTestPipeline(checker DocumentChecker) *Pipeline {
	return New(checker, DefaultStalenessDays).WithClock(func() time.Time { return fixedNow })
}

type stubChecker struct {
	exists     bool
	modifiedAt *time.Time
	err        error
	calls      int
}

func (s *stubChecker) DocumentInfo(ctx context.Context, projectID string) (bool, *time.Time, error) {
	s.calls++
	return s.exists, s.modifiedAt, s.err
}

func TestDaysSince(t *testing.T) {
	tests := []struct {
		name string
		ts   string
		want int
	}{
		{"empty", "", models.DaysUnknown},
		{"malformed", "yesterday-ish", models.DaysUnknown},
		{"zulu suffix", "2026-10-04T12:00:00Z", 10},
		{"explicit offset", "2026-10-04T14:00:00+02:00", 10},
		{"fractional seconds", "2026-10-13T11:59:59.123456Z", 1},
		{"fraction short of a day", "2026-10-13T12:00:00.123456Z", 0},
		{"naive timestamp", "2026-09-14T12:00:00", 30},
		{"date only", "2026-10-01", 13},
		{"partial day rounds down", "2026-10-13T13:00:00Z", 0},
		{"future clamps to zero", "2027-01-01T00:00:00Z", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysSince(tt.ts, fixedNow); got != tt.want {
				t.Errorf("DaysSince(%q) = %d, want %d", tt.ts, got, tt.want)
			}
		})
	}
}

func TestPriority(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, models.PriorityLow},
		{14, models.PriorityLow},
		{15, models.PriorityMedium},
		{30, models.PriorityMedium},
		{31, models.PriorityHigh},
		{models.DaysUnknown, models.PriorityHigh},
	}

	for _, tt := range tests {
		if got := Priority(tt.days); got != tt.want {
			t.Errorf("Priority(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestDocumentStatus(t *testing.T) {
	recent := fixedNow.AddDate(0, 0, -30)
	old := fixedNow.AddDate(0, 0, -31)

	tests := []struct {
		name        string
		has         bool
		generatedAt *time.Time
		want        string
	}{
		{"no document", false, &recent, models.DocumentMissing},
		{"no document no date", false, nil, models.DocumentMissing},
		{"thirty days is current", true, &recent, models.DocumentCurrent},
		{"older than threshold", true, &old, models.DocumentOutdated},
		{"unknown age", true, nil, models.DocumentOutdated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DocumentStatus(tt.has, tt.generatedAt, fixedNow, DefaultStalenessDays); got != tt.want {
				t.Errorf("DocumentStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnrichUsesRecordFlag(t *testing.T) {
	p := newTestPipeline(nil)
	rec := models.ProjectRecord{
		ID:                "PRJ-1",
		LastUpdated:       daysAgo(20),
		HasActaDocument:   true,
		ActaLastGenerated: daysAgo(2),
	}

	view, err := p.Enrich(context.Background(), rec, Options{IncludeActaStatus: true})
	require.NoError(t, err)
	require.True(t, view.HasDocument)
	require.Equal(t, models.DocumentCurrent, view.DocumentStatus)
	require.Equal(t, 20, view.DaysSinceUpdate)
	require.Equal(t, models.PriorityMedium, view.Priority)
	require.NotNil(t, view.DocumentGeneratedAt)
	require.Equal(t, "PRJ-1", view.ID)
}

func TestEnrichResolvesDocumentWhenRequested(t *testing.T) {
	modified := fixedNow.AddDate(0, 0, -45)
	checker := &stubChecker{exists: true, modifiedAt: &modified}
	p := newTestPipeline(checker)

	rec := models.ProjectRecord{ID: "PRJ-2", HasActaDocument: false}

	view, err := p.Enrich(context.Background(), rec, Options{})
	require.NoError(t, err)
	require.False(t, view.HasDocument)
	require.Zero(t, checker.calls)

	view, err = p.Enrich(context.Background(), rec, Options{IncludeActaStatus: true})
	require.NoError(t, err)
	require.Equal(t, 1, checker.calls)
	require.True(t, view.HasDocument)
	require.Equal(t, models.DocumentOutdated, view.DocumentStatus)
	require.Equal(t, modified, *view.DocumentGeneratedAt)
	require.Equal(t, models.DaysUnknown, view.DaysSinceUpdate)
	require.Equal(t, models.PriorityHigh, view.Priority)
}

func TestEnrichPropagatesCheckerFailure(t *testing.T) {
	p := newTestPipeline(&stubChecker{err: errors.New("access denied")})

	_, err := p.Enrich(context.Background(), models.ProjectRecord{ID: "PRJ-3"}, Options{IncludeActaStatus: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "PRJ-3")
}

func TestEnrichAllSummary(t *testing.T) {
	p := newTestPipeline(nil)

	t.Run("empty collection", func(t *testing.T) {
		views, summary, err := p.EnrichAll(context.Background(), nil, Options{})
		require.NoError(t, err)
		require.Empty(t, views)
		require.NotNil(t, views)
		require.Equal(t, models.CollectionSummary{}, summary)
	})

	t.Run("all documented", func(t *testing.T) {
		recs := []models.ProjectRecord{
			{ID: "a", HasActaDocument: true, LastUpdated: daysAgo(1)},
			{ID: "b", HasActaDocument: true, LastUpdated: daysAgo(40)},
		}
		views, summary, err := p.EnrichAll(context.Background(), recs, Options{})
		require.NoError(t, err)
		require.Len(t, views, 2)
		require.Equal(t, len(views), summary.WithDocument)
		require.Zero(t, summary.WithoutDocument)
		require.Equal(t, 1, summary.RecentlyUpdated)
	})

	t.Run("mixed", func(t *testing.T) {
		recs := []models.ProjectRecord{
			{ID: "a", HasActaDocument: true, LastUpdated: daysAgo(7)},
			{ID: "b", LastUpdated: daysAgo(8)},
			{ID: "c"},
		}
		views, summary, err := p.EnrichAll(context.Background(), recs, Options{})
		require.NoError(t, err)
		require.Equal(t, len(views), summary.Total())
		require.Equal(t, models.CollectionSummary{WithDocument: 1, WithoutDocument: 2, RecentlyUpdated: 1}, summary)
	})
}
