package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yourorg/rentledger/internal/domain"
)

func TestEnsureSchemaIdempotent(t *testing.T) {
	ctx := context.Background()
	path := UserDBPath(t.TempDir(), "alice")

	db, err := Open(ctx, path, nil)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer db.Close()

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("first ensure failed: %v", err)
	}
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
}

func TestSessionManager(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	m := NewSessionManager(dataDir, nil)
	defer m.CloseAll()

	if err := m.Provision(ctx, "alice"); err != nil {
		t.Fatalf("provision failed: %v", err)
	}
	if _, err := os.Stat(UserDBPath(dataDir, "alice")); err != nil {
		t.Fatalf("expected database file after provision: %v", err)
	}

	s1, err := m.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	s2, err := m.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if s1 != s2 {
		t.Fatalf("expected one session per username")
	}

	if _, err := m.Get(ctx, ""); err == nil {
		t.Fatalf("expected error for empty username")
	}

	if err := m.Deprovision("alice"); err != nil {
		t.Fatalf("deprovision failed: %v", err)
	}
	if _, err := os.Stat(UserDBPath(dataDir, "alice")); !os.IsNotExist(err) {
		t.Fatalf("expected database file removed, got %v", err)
	}
}

func TestSessionPersistence(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	m := NewSessionManager(dataDir, nil)
	defer m.CloseAll()

	s, err := m.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	p := &domain.Property{
		ID:          "P001",
		Address:     "12 High Street",
		MonthlyRent: 950,
		Status:      domain.StatusRented,
	}
	if err := s.Properties.Save(p); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// reopen through a fresh manager; the row survives
	if err := m.Close("alice"); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	m2 := NewSessionManager(dataDir, nil)
	defer m2.CloseAll()

	s2, err := m2.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got, err := s2.Properties.Get("P001")
	if err != nil {
		t.Fatalf("get property failed: %v", err)
	}
	if got.Address != "12 High Street" {
		t.Fatalf("unexpected property: %+v", got)
	}
}

func TestBackupAndRestore(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	m := NewSessionManager(dataDir, nil)
	defer m.CloseAll()

	s, err := m.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	p := &domain.Property{ID: "P001", Address: "12 High Street", Status: domain.StatusVacant}
	if err := s.Properties.Save(p); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	backupPath := UserDBPath(t.TempDir(), "alice") + ".bak"
	if err := s.Backup(ctx, backupPath); err != nil {
		t.Fatalf("backup failed: %v", err)
	}

	// mutate after the backup, then restore the snapshot
	if err := s.Properties.Delete("P001"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.Restore(ctx, backupPath); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	got, err := s.Properties.Get("P001")
	if err != nil {
		t.Fatalf("expected property back after restore: %v", err)
	}
	if got.Address != "12 High Street" {
		t.Fatalf("unexpected property after restore: %+v", got)
	}
}

func TestDeleteRenumbersWithoutTouchingTenants(t *testing.T) {
	ctx := context.Background()
	m := NewSessionManager(t.TempDir(), nil)
	defer m.CloseAll()

	s, err := m.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	for _, p := range []*domain.Property{
		{ID: "P001", Address: "1 First Road", Status: domain.StatusVacant},
		{ID: "P002", Address: "2 Second Road", Status: domain.StatusVacant},
		{ID: "P003", Address: "3 Third Road", Status: domain.StatusRented},
	} {
		if err := s.Properties.Save(p); err != nil {
			t.Fatalf("save %s failed: %v", p.ID, err)
		}
	}
	tenant := &domain.Tenant{
		Name:           "Carol Tenant",
		PropertyID:     "P003",
		LeaseStartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.Tenants.Save(tenant); err != nil {
		t.Fatalf("tenant save failed: %v", err)
	}

	if err := s.Properties.Delete("P002"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	props, err := s.Properties.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("expected 2 properties after delete, got %d", len(props))
	}
	if props[0].ID != "P001" || props[1].ID != "P002" {
		t.Fatalf("expected renumbered ids P001, P002, got %s, %s", props[0].ID, props[1].ID)
	}
	if props[1].Address != "3 Third Road" {
		t.Fatalf("expected former P003 to become P002, got %+v", props[1])
	}

	// tenant rows are not renumbered with their property; the old id dangles
	tenants, err := s.Tenants.ListAll()
	if err != nil {
		t.Fatalf("list tenants failed: %v", err)
	}
	if len(tenants) != 1 {
		t.Fatalf("expected tenant row to survive delete, got %d rows", len(tenants))
	}
	if tenants[0].PropertyID != "P003" {
		t.Fatalf("expected tenant to keep property id P003, got %s", tenants[0].PropertyID)
	}
}

func TestRepositoriesSurviveRestoreRebind(t *testing.T) {
	ctx := context.Background()
	m := NewSessionManager(t.TempDir(), nil)
	defer m.CloseAll()

	s, err := m.Get(ctx, "bob")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	tenant := &domain.Tenant{
		Name:           "Alice Tenant",
		PropertyID:     "P001",
		LeaseStartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.Tenants.Save(tenant); err != nil {
		t.Fatalf("tenant save failed: %v", err)
	}
	if tenant.ID == 0 {
		t.Fatalf("expected assigned tenant id")
	}

	backupPath := s.Path() + ".bak"
	if err := s.Backup(ctx, backupPath); err != nil {
		t.Fatalf("backup failed: %v", err)
	}

	// the rebound repositories must work against the reopened handle
	tenants, err := s.Tenants.ListAll()
	if err != nil {
		t.Fatalf("list after backup failed: %v", err)
	}
	if len(tenants) != 1 || tenants[0].Name != "Alice Tenant" {
		t.Fatalf("unexpected tenants after rebind: %+v", tenants)
	}
}
