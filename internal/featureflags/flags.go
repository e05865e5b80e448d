package featureflags

import (
	"os"
	"strings"
)

// Known flags. EmailDryRun makes the mailer log instead of calling SendGrid,
// which is useful when exercising notification flows against test data.
const (
	EmailDryRun = "email_dry_run"
)

// Enabled returns true if a flag is enabled via environment variable.
// Flags are read from env as FLAG_<NAME>=true/1/yes (case-insensitive)
func Enabled(name string) bool {
	v := os.Getenv("FLAG_" + strings.ToUpper(name))
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
