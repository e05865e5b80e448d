package featureflags

import "testing"

func TestEnabled(t *testing.T) {
	cases := map[string]bool{
		"1": true, "true": true, "yes": true, "on": true, "TRUE": true,
		"0": false, "false": false, "off": false, "": false, "maybe": false,
	}

	for value, want := range cases {
		t.Setenv("FLAG_EMAIL_DRY_RUN", value)
		if got := Enabled(EmailDryRun); got != want {
			t.Errorf("value %q: expected %v, got %v", value, want, got)
		}
	}
}
