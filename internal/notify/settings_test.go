package notify

import (
	"path/filepath"
	"testing"
)

func TestLoadSettings_MissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.properties"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if s.Valid() {
		t.Fatalf("empty settings must not be valid")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "email_settings.properties")

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	s.Email = "landlord@example.com"
	s.APIKey = "SG.test-key"
	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	reloaded, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Email != "landlord@example.com" || reloaded.APIKey != "SG.test-key" {
		t.Fatalf("round trip lost values: %+v", reloaded)
	}
	if !reloaded.Valid() {
		t.Fatalf("expected reloaded settings to be valid")
	}
}
