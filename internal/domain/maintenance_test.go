package domain

import (
	"testing"
	"time"
)

func TestIsOverdue_Thresholds(t *testing.T) {
	reported := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		priority string
		days     int
		overdue  bool
	}{
		{PriorityUrgent, 1, false},
		{PriorityUrgent, 2, true},
		{PriorityHigh, 3, false},
		{PriorityHigh, 4, true},
		{PriorityMedium, 7, false},
		{PriorityMedium, 8, true},
		{PriorityLow, 14, false},
		{PriorityLow, 15, true},
	}

	for _, tc := range cases {
		m := NewMaintenanceRequest("P001", "leaking tap", tc.priority, reported)
		now := reported.AddDate(0, 0, tc.days)
		if got := m.IsOverdue(now); got != tc.overdue {
			t.Errorf("%s after %d days: expected overdue=%v, got %v", tc.priority, tc.days, tc.overdue, got)
		}
	}
}

func TestIsOverdue_TerminalStatesNeverOverdue(t *testing.T) {
	reported := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := reported.AddDate(0, 0, 60)

	m := NewMaintenanceRequest("P001", "broken boiler", PriorityUrgent, reported)
	m.Complete(250, now)
	if m.IsOverdue(now) {
		t.Fatalf("completed request must not be overdue")
	}

	m2 := NewMaintenanceRequest("P001", "broken boiler", PriorityUrgent, reported)
	m2.Cancel("tenant resolved it")
	if m2.IsOverdue(now) {
		t.Fatalf("cancelled request must not be overdue")
	}
}

func TestComplete(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	m := NewMaintenanceRequest("P001", "leaking tap", PriorityMedium, now.AddDate(0, 0, -2))
	m.Complete(85.50, now)

	if m.Status != MaintenanceCompleted {
		t.Fatalf("expected status %s, got %s", MaintenanceCompleted, m.Status)
	}
	if m.Cost != 85.50 {
		t.Fatalf("expected cost 85.50, got %v", m.Cost)
	}
	if !m.CompletedDate.Equal(now) {
		t.Fatalf("expected completed date %v, got %v", now, m.CompletedDate)
	}
}

func TestCancel(t *testing.T) {
	m := NewMaintenanceRequest("P001", "leaking tap", PriorityMedium, time.Now())
	m.Cancel("duplicate report")

	if m.Status != MaintenanceCancelled {
		t.Fatalf("expected status %s, got %s", MaintenanceCancelled, m.Status)
	}
	if m.Notes != "duplicate report" {
		t.Fatalf("expected cancel reason in notes, got %q", m.Notes)
	}
}
