package domain

import (
	"testing"
	"time"
)

func TestDocumentList(t *testing.T) {
	tn := &Tenant{}
	if got := tn.DocumentList(); got != nil {
		t.Fatalf("expected nil document list, got %v", got)
	}

	tn.AddDocument("/docs/lease.pdf")
	tn.AddDocument("/docs/inventory.pdf")
	docs := tn.DocumentList()
	if len(docs) != 2 || docs[0] != "/docs/lease.pdf" || docs[1] != "/docs/inventory.pdf" {
		t.Fatalf("unexpected document list: %v", docs)
	}

	tn.RemoveDocument("/docs/lease.pdf")
	docs = tn.DocumentList()
	if len(docs) != 1 || docs[0] != "/docs/inventory.pdf" {
		t.Fatalf("unexpected document list after removal: %v", docs)
	}
}

func TestNextRentDue(t *testing.T) {
	tn := &Tenant{}

	// mid-month rolls forward to the first of next month
	now := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)
	due := tn.NextRentDue(now)
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !due.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, due)
	}

	// exactly midnight on the first is due that day
	first := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	due = tn.NextRentDue(first)
	if !due.Equal(first) {
		t.Fatalf("expected due %v, got %v", first, due)
	}
}

func TestUpdateLastContact(t *testing.T) {
	tn := &Tenant{}
	now := time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC)
	tn.UpdateLastContact(ContactEmail, now)

	if tn.LastContactType != ContactEmail {
		t.Fatalf("expected contact type %s, got %s", ContactEmail, tn.LastContactType)
	}
	if !tn.LastContactDate.Equal(now) {
		t.Fatalf("expected contact date %v, got %v", now, tn.LastContactDate)
	}
}
