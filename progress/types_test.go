package progress_test

import (
	"testing"

	"github.com/goliatone/go-l10n/progress"
)

func TestSnapshotMissing(t *testing.T) {
	snap := progress.Snapshot{
		Total:         100,
		Approved:      40,
		Pretranslated: 10,
		Errors:        5,
		Warnings:      15,
		Unreviewed:    12,
	}

	if got := snap.Missing(); got != 30 {
		t.Fatalf("expected 30 missing, got %d", got)
	}
	if got := snap.CompletedStrings(); got != 65 {
		t.Fatalf("expected 65 completed, got %d", got)
	}
	if snap.Complete() {
		t.Fatal("snapshot must not be complete with missing strings")
	}
}

func TestSnapshotComplete(t *testing.T) {
	snap := progress.Snapshot{Total: 10, Approved: 8, Warnings: 2}
	if !snap.Complete() {
		t.Fatal("expected complete snapshot")
	}

	// Pending suggestions do not block completion once every string has a
	// usable translation.
	withUnreviewed := progress.Snapshot{Total: 10, Approved: 8, Warnings: 2, Unreviewed: 3}
	if !withUnreviewed.Complete() {
		t.Fatal("unreviewed suggestions must not keep the snapshot incomplete")
	}

	withErrors := progress.Snapshot{Total: 10, Approved: 8, Errors: 2}
	if withErrors.Complete() {
		t.Fatal("strings with errors must keep the snapshot incomplete")
	}
}

func TestChartSharesRoundAndFloor(t *testing.T) {
	snap := progress.Snapshot{
		Total:         3,
		Approved:      1,
		Pretranslated: 1,
		Warnings:      0,
		Errors:        0,
		Unreviewed:    1,
	}

	chart := progress.ChartOf(snap)
	if chart.ApprovedShare != 33 {
		t.Fatalf("expected rounded approved share 33, got %d", chart.ApprovedShare)
	}
	if chart.UnreviewedShare != 33 {
		t.Fatalf("expected rounded unreviewed share 33, got %d", chart.UnreviewedShare)
	}
	// 2/3 completed = 66.66..., floored to 66.
	if chart.CompletionPercent != 66 {
		t.Fatalf("expected floored completion 66, got %d", chart.CompletionPercent)
	}
}

func TestChartOfEmptySnapshot(t *testing.T) {
	chart := progress.ChartOf(progress.Snapshot{})
	if chart.CompletionPercent != 0 || chart.ApprovedShare != 0 {
		t.Fatalf("expected zeroed chart, got %+v", chart)
	}
}

func TestApplyClampsAtZero(t *testing.T) {
	snap := progress.Snapshot{Total: 5, Approved: 1}
	next := snap.Apply(progress.Diff{Approved: -3, Total: 2})
	if next.Approved != 0 {
		t.Fatalf("expected clamped approved count, got %d", next.Approved)
	}
	if next.Total != 7 {
		t.Fatalf("expected total 7, got %d", next.Total)
	}
}

func TestTopInstances(t *testing.T) {
	rows := []progress.Ranked{
		{Name: "firefox", Snapshot: progress.Snapshot{Total: 500, Approved: 100, Unreviewed: 5}},
		{Name: "fenix", Snapshot: progress.Snapshot{Total: 200, Approved: 180, Unreviewed: 15}},
		{Name: "vpn", Snapshot: progress.Snapshot{Total: 200, Approved: 20, Unreviewed: 15}},
	}

	top := progress.TopInstances(rows)
	if top.MostStrings != "firefox" {
		t.Fatalf("expected firefox for most strings, got %q", top.MostStrings)
	}
	if top.MostTranslations != "fenix" {
		t.Fatalf("expected fenix for most translations, got %q", top.MostTranslations)
	}
	// fenix and vpn tie on suggestions; alphabetical order wins.
	if top.MostSuggestions != "fenix" {
		t.Fatalf("expected fenix for most suggestions, got %q", top.MostSuggestions)
	}
	if top.MostMissing != "firefox" {
		t.Fatalf("expected firefox for most missing, got %q", top.MostMissing)
	}

	if empty := progress.TopInstances(nil); empty.MostStrings != "" {
		t.Fatalf("expected empty result, got %+v", empty)
	}
}
