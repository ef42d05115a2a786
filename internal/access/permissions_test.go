package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-l10n/internal/access"
)

func TestSetAllowsExactAndWildcardTokens(t *testing.T) {
	set := access.NewSet(access.ProjectsRead, "locales:*")

	if !set.Allowed(access.ProjectsRead) {
		t.Fatal("expected exact token allowed")
	}
	if !set.Allowed(access.LocalesUpdate) {
		t.Fatal("expected resource wildcard allowed")
	}
	if set.Allowed(access.PermissionsManage) {
		t.Fatal("expected unrelated token denied")
	}

	super := access.NewSet("*")
	if !super.Allowed(access.WidgetsDelete) {
		t.Fatal("expected global wildcard allowed")
	}
}

func TestAllowedDefaultsWhenNoChecker(t *testing.T) {
	if !access.Allowed(context.Background(), access.ProjectsRead) {
		t.Fatal("expected allow-all without checker")
	}
}

func TestRequireReturnsTypedError(t *testing.T) {
	ctx := access.WithPermissions(context.Background(), access.DashboardsRead)

	if err := access.Require(ctx, access.DashboardsRead); err != nil {
		t.Fatalf("expected granted permission, got %v", err)
	}

	err := access.Require(ctx, access.PermissionsManage)
	if err == nil {
		t.Fatal("expected denial")
	}
	if !errors.Is(err, access.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	var typed access.Error
	if !errors.As(err, &typed) || typed.Permission != access.PermissionsManage {
		t.Fatalf("expected typed error with token, got %v", err)
	}
}

func TestCheckerFromContextHandlesSliceValues(t *testing.T) {
	ctx := access.WithChecker(context.Background(), access.NewSet(access.ProjectsCreate))
	checker := access.CheckerFromContext(ctx)
	if checker == nil || !checker.Allowed(access.ProjectsCreate) {
		t.Fatal("expected checker from context")
	}
}

func TestResourcePermissionsList(t *testing.T) {
	perms := access.ResourcePermissions(access.ResourceProjects, true)
	list := perms.List()
	if len(list) != 5 {
		t.Fatalf("expected 5 tokens, got %d", len(list))
	}
	if perms.Manage != "projects:manage" {
		t.Fatalf("unexpected manage token %q", perms.Manage)
	}
}
