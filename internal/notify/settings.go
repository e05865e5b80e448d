package notify

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Settings holds the configured sender address and SendGrid API key. They
// live in a local key=value file that is read at startup and rewritten on
// every save.
type Settings struct {
	path   string
	Email  string
	APIKey string
}

// LoadSettings reads the settings file at path. A missing file yields empty
// settings, not an error.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{path: path}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "email":
			s.Email = strings.TrimSpace(value)
		case "api_key":
			s.APIKey = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return s, nil
}

// Save rewrites the settings file with the current values
func (s *Settings) Save() error {
	var b strings.Builder
	b.WriteString("# Email Settings\n")
	fmt.Fprintf(&b, "email=%s\n", s.Email)
	fmt.Fprintf(&b, "api_key=%s\n", s.APIKey)

	if err := os.WriteFile(s.path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to save settings file: %w", err)
	}
	return nil
}

// Valid reports whether both the sender address and the API key are set
func (s *Settings) Valid() bool {
	return s.Email != "" && s.APIKey != ""
}
