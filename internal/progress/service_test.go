package progress_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-l10n/internal/progress"
	l10nprogress "github.com/goliatone/go-l10n/progress"
	"github.com/google/uuid"
)

func newProgressService() progress.Service {
	return progress.NewService(
		progress.NewMemoryStatsRepository(),
		progress.NewMemoryActivityRepository(),
		progress.WithClock(func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }),
	)
}

func TestSnapshotDefaultsToZero(t *testing.T) {
	svc := newProgressService()

	snap, err := svc.Snapshot(context.Background(), l10nprogress.ProjectScope(uuid.New()))
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Total != 0 || snap.Missing() != 0 {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}

func TestSetSnapshotRejectsNegativeCounts(t *testing.T) {
	svc := newProgressService()

	_, err := svc.SetSnapshot(context.Background(), l10nprogress.ProjectScope(uuid.New()), l10nprogress.Snapshot{Total: -1})
	if !errors.Is(err, l10nprogress.ErrSnapshotInvalid) {
		t.Fatalf("expected ErrSnapshotInvalid, got %v", err)
	}
}

func TestSetSnapshotRejectsInvalidScope(t *testing.T) {
	svc := newProgressService()

	_, err := svc.SetSnapshot(context.Background(), l10nprogress.Scope{Kind: l10nprogress.ScopeProject}, l10nprogress.Snapshot{})
	if !errors.Is(err, l10nprogress.ErrScopeInvalid) {
		t.Fatalf("expected ErrScopeInvalid, got %v", err)
	}
}

func TestAdjustProjectLocaleRollsUp(t *testing.T) {
	svc := newProgressService()
	ctx := context.Background()

	projectID := uuid.New()
	localeID := uuid.New()

	err := svc.AdjustProjectLocale(ctx, projectID, localeID, l10nprogress.Diff{Total: 50, Approved: 10, Unreviewed: 3})
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}

	pair, err := svc.Snapshot(ctx, l10nprogress.ProjectLocaleScope(projectID, localeID))
	if err != nil {
		t.Fatalf("pair snapshot: %v", err)
	}
	if pair.Total != 50 || pair.Approved != 10 {
		t.Fatalf("unexpected pair snapshot %+v", pair)
	}

	project, err := svc.Snapshot(ctx, l10nprogress.ProjectScope(projectID))
	if err != nil {
		t.Fatalf("project snapshot: %v", err)
	}
	if project.Total != 50 {
		t.Fatalf("expected project rollup, got %+v", project)
	}

	locale, err := svc.Snapshot(ctx, l10nprogress.LocaleScope(localeID))
	if err != nil {
		t.Fatalf("locale snapshot: %v", err)
	}
	if locale.Unreviewed != 3 {
		t.Fatalf("expected locale rollup, got %+v", locale)
	}
}

func TestRecomputeProjectSumsPairs(t *testing.T) {
	svc := newProgressService()
	ctx := context.Background()

	projectID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	if _, err := svc.SetSnapshot(ctx, l10nprogress.ProjectLocaleScope(projectID, first), l10nprogress.Snapshot{Total: 100, Approved: 60}); err != nil {
		t.Fatalf("set first pair: %v", err)
	}
	if _, err := svc.SetSnapshot(ctx, l10nprogress.ProjectLocaleScope(projectID, second), l10nprogress.Snapshot{Total: 100, Approved: 20}); err != nil {
		t.Fatalf("set second pair: %v", err)
	}

	total, err := svc.RecomputeProject(ctx, projectID)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if total.Total != 200 || total.Approved != 80 {
		t.Fatalf("unexpected recompute result %+v", total)
	}

	avg, err := svc.AvgStringCount(ctx, projectID)
	if err != nil {
		t.Fatalf("avg string count: %v", err)
	}
	if avg != 100 {
		t.Fatalf("expected avg 100, got %d", avg)
	}
}

func TestChartUsesStoredSnapshot(t *testing.T) {
	svc := newProgressService()
	ctx := context.Background()

	localeID := uuid.New()
	if _, err := svc.SetSnapshot(ctx, l10nprogress.LocaleScope(localeID), l10nprogress.Snapshot{Total: 4, Approved: 3}); err != nil {
		t.Fatalf("set snapshot: %v", err)
	}

	chart, err := svc.Chart(ctx, l10nprogress.LocaleScope(localeID))
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	if chart.CompletionPercent != 75 || chart.ApprovedShare != 75 {
		t.Fatalf("unexpected chart %+v", chart)
	}
}

func TestRecordActivityAndLatest(t *testing.T) {
	svc := newProgressService()
	ctx := context.Background()

	projectID := uuid.New()
	localeID := uuid.New()
	otherLocale := uuid.New()

	early := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)

	if _, err := svc.RecordActivity(ctx, progress.RecordActivityRequest{
		ProjectID: projectID, LocaleID: localeID, Verb: l10nprogress.VerbSubmitted, OccurredAt: &early,
	}); err != nil {
		t.Fatalf("record first: %v", err)
	}
	if _, err := svc.RecordActivity(ctx, progress.RecordActivityRequest{
		ProjectID: projectID, LocaleID: otherLocale, Verb: l10nprogress.VerbApproved, OccurredAt: &late,
	}); err != nil {
		t.Fatalf("record second: %v", err)
	}

	latest, err := svc.LatestActivity(ctx, l10nprogress.ProjectScope(projectID))
	if err != nil {
		t.Fatalf("latest activity: %v", err)
	}
	if latest == nil || !latest.OccurredAt.Equal(late) {
		t.Fatalf("expected latest event, got %+v", latest)
	}

	scoped, err := svc.LatestActivity(ctx, l10nprogress.ProjectLocaleScope(projectID, localeID))
	if err != nil {
		t.Fatalf("latest pair activity: %v", err)
	}
	if scoped == nil || !scoped.OccurredAt.Equal(early) {
		t.Fatalf("expected pair-scoped event, got %+v", scoped)
	}

	none, err := svc.LatestActivity(ctx, l10nprogress.LocaleScope(uuid.New()))
	if err != nil {
		t.Fatalf("latest activity on empty scope: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil for empty scope, got %+v", none)
	}

	if _, err := svc.RecordActivity(ctx, progress.RecordActivityRequest{
		ProjectID: projectID, LocaleID: localeID, Verb: "deleted",
	}); !errors.Is(err, l10nprogress.ErrVerbInvalid) {
		t.Fatalf("expected ErrVerbInvalid, got %v", err)
	}
}
