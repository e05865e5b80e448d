package notify

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yourorg/rentledger/internal/domain"
)

func configuredMailer(baseURL string) *Mailer {
	m := NewMailer(&Settings{Email: "landlord@example.com", APIKey: "SG.test"}, nil)
	m.SetBaseURL(baseURL)
	return m
}

func TestSend_NotConfigured(t *testing.T) {
	m := NewMailer(&Settings{}, nil)
	err := m.Send("tenant@example.com", "Hello", TemplateGeneralAnnouncement, nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSend(t *testing.T) {
	var gotAuth string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mail/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := configuredMailer(srv.URL)
	err := m.Send("tenant@example.com", "Notice", TemplateGeneralAnnouncement, map[string]string{
		"TENANT_NAME":       "Alice",
		"ANNOUNCEMENT_TEXT": "The water will be off on Tuesday.",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if gotAuth != "Bearer SG.test" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}

	var mail sendGridMail
	if err := json.Unmarshal(gotBody, &mail); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if mail.From.Email != "landlord@example.com" {
		t.Fatalf("unexpected sender %s", mail.From.Email)
	}
	if len(mail.Personalizations) != 1 || mail.Personalizations[0].To[0].Email != "tenant@example.com" {
		t.Fatalf("unexpected recipient: %+v", mail.Personalizations)
	}
	if len(mail.Content) != 1 || mail.Content[0].Type != "text/plain" {
		t.Fatalf("unexpected content: %+v", mail.Content)
	}
}

func TestSend_ProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := configuredMailer(srv.URL)
	err := m.Send("tenant@example.com", "Notice", TemplateGeneralAnnouncement, nil)
	if err == nil {
		t.Fatalf("expected error on 401 from provider")
	}
}

func TestSend_DryRunSkipsProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("provider must not be called in dry run")
	}))
	defer srv.Close()

	m := configuredMailer(srv.URL)
	m.SetDryRun(true)
	if err := m.Send("tenant@example.com", "Notice", TemplateGeneralAnnouncement, nil); err != nil {
		t.Fatalf("dry run send failed: %v", err)
	}
}

// Bulk sends skip tenants who opted out or have no address, and stamp the
// last-contact fields on everyone actually emailed.
func TestSendBulk(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := configuredMailer(srv.URL)
	tenants := []*domain.Tenant{
		{Name: "Alice", Email: "alice@example.com", EmailNotify: true},
		{Name: "Bob", Email: "bob@example.com", EmailNotify: false},
		{Name: "Carol", Email: "", EmailNotify: true},
	}

	before := time.Now()
	err := m.SendBulk(tenants, "Notice", TemplateGeneralAnnouncement, map[string]string{
		"ANNOUNCEMENT_TEXT": "Annual inspection next month.",
	})
	if err != nil {
		t.Fatalf("bulk send failed: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", calls)
	}
	if tenants[0].LastContactType != domain.ContactEmail || tenants[0].LastContactDate.Before(before) {
		t.Fatalf("expected Alice stamped as contacted")
	}
	if !tenants[1].LastContactDate.IsZero() || !tenants[2].LastContactDate.IsZero() {
		t.Fatalf("skipped tenants must not be stamped")
	}
}
