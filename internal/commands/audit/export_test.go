package auditcmd_test

import (
	"context"
	"sync"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/team"
	"github.com/goliatone/go-l10n/pkg/interfaces"
	"github.com/google/uuid"

	auditcmd "github.com/goliatone/go-l10n/internal/commands/audit"
)

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Trace(msg string, _ ...any) { l.log(msg) }
func (l *recordingLogger) Debug(msg string, _ ...any) { l.log(msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.log(msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.log(msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.log(msg) }
func (l *recordingLogger) Fatal(msg string, _ ...any) { l.log(msg) }

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *recordingLogger) count(msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, recorded := range l.messages {
		if recorded == msg {
			total++
		}
	}
	return total
}

type exportFixture struct {
	access   access.Service
	localeID uuid.UUID
}

func setupExportFixture(t *testing.T) *exportFixture {
	t.Helper()
	ctx := context.Background()

	projects := catalog.NewMemoryProjectRepository()
	locales := catalog.NewMemoryLocaleRepository()
	projectLocales := catalog.NewMemoryProjectLocaleRepository()
	catalogSvc := catalog.NewService(projects, locales, projectLocales)

	contributors := team.NewMemoryContributorRepository()
	memberships := team.NewMemoryMembershipRepository()
	teamSvc := team.NewService(contributors, memberships)

	changes := team.NewMemoryPermissionChangeRepository()
	accessSvc := access.NewService(memberships, projectLocales, projects, changes)

	locale, err := catalogSvc.CreateLocale(ctx, catalog.CreateLocaleRequest{Code: "sl", Name: "Slovenian"})
	if err != nil {
		t.Fatalf("create locale: %v", err)
	}
	manager, err := teamSvc.AddContributor(ctx, team.AddContributorRequest{Email: "manager@example.com"})
	if err != nil {
		t.Fatalf("add contributor: %v", err)
	}
	translator, err := teamSvc.AddContributor(ctx, team.AddContributorRequest{Email: "translator@example.com"})
	if err != nil {
		t.Fatalf("add contributor: %v", err)
	}

	if _, err := accessSvc.ApplyMatrix(ctx, access.ApplyMatrixRequest{
		LocaleID:    locale.ID,
		PerformedBy: manager.ID,
		Managers:    []uuid.UUID{manager.ID},
		Translators: []uuid.UUID{translator.ID},
	}); err != nil {
		t.Fatalf("apply matrix: %v", err)
	}

	return &exportFixture{access: accessSvc, localeID: locale.ID}
}

func TestExportRequiresLocale(t *testing.T) {
	fixture := setupExportFixture(t)
	handler := auditcmd.NewExportHandler(fixture.access, nil)

	err := handler.Execute(context.Background(), auditcmd.ExportPermissionLogCommand{})
	if err == nil {
		t.Fatal("expected validation error for missing locale")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestExportLogsRecordedChanges(t *testing.T) {
	fixture := setupExportFixture(t)
	logger := &recordingLogger{}
	handler := auditcmd.NewExportHandler(fixture.access, logger)

	if err := handler.Execute(context.Background(), auditcmd.ExportPermissionLogCommand{
		LocaleID: fixture.localeID,
	}); err != nil {
		t.Fatalf("execute export: %v", err)
	}

	if got := logger.count("permissions.command.export.change"); got != 2 {
		t.Fatalf("expected 2 exported changes, got %d", got)
	}
	if got := logger.count("permissions.command.export.completed"); got != 1 {
		t.Fatalf("expected completion entry, got %d", got)
	}
}

func TestExportHonoursMaxRecords(t *testing.T) {
	fixture := setupExportFixture(t)
	logger := &recordingLogger{}
	handler := auditcmd.NewExportHandler(fixture.access, logger)

	limit := 1
	if err := handler.Execute(context.Background(), auditcmd.ExportPermissionLogCommand{
		LocaleID:   fixture.localeID,
		MaxRecords: &limit,
	}); err != nil {
		t.Fatalf("execute export: %v", err)
	}
	if got := logger.count("permissions.command.export.change"); got != 1 {
		t.Fatalf("expected 1 exported change, got %d", got)
	}
}
