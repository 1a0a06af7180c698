// Package config loads, prompts for, and persists the GTMHub API credential.
package config

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const appName = "mokuhyo"

// Credentials is the stored credential pair. A credential is usable iff the
// token is non-empty; an empty token is treated exactly like a missing one.
type Credentials struct {
	AccountID string `mapstructure:"account_id"`
	APIToken  string `mapstructure:"api_token"`
}

// Usable reports whether the credential can authenticate a request.
func (c Credentials) Usable() bool { return c.APIToken != "" }

// StoreError reports a failed credential write-back. Read failures are
// never surfaced as errors; they route through the prompt instead.
type StoreError struct {
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("config: write %s: %v", e.Path, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store is a viper-backed credential file. The zero path resolves to the
// per-user default location.
type Store struct {
	path string
}

// NewStore creates a store for the given file path, or for the default
// per-user path when path is empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve user config dir: %w", err)
		}
		path = filepath.Join(dir, appName, "config.yaml")
	}
	return &Store{path: path}, nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// Load reads the credential file. Any failure (missing file, parse error)
// is returned as-is; callers decide whether it is fatal.
func (s *Store) Load() (Credentials, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return Credentials{}, fmt.Errorf("config: read %s: %w", s.path, err)
	}

	var creds Credentials
	if err := v.Unmarshal(&creds); err != nil {
		return Credentials{}, fmt.Errorf("config: parse %s: %w", s.path, err)
	}
	return creds, nil
}

// Save writes the credential file, creating the parent directory if needed.
func (s *Store) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return &StoreError{Path: s.path, Err: err}
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")
	v.Set("account_id", creds.AccountID)
	v.Set("api_token", creds.APIToken)
	if err := v.WriteConfigAs(s.path); err != nil {
		return &StoreError{Path: s.path, Err: err}
	}
	return nil
}

// Prompter supplies credentials when the store has none. It is an
// interface so non-interactive environments and tests can substitute one.
type Prompter interface {
	Prompt() (Credentials, error)
}

// TerminalPrompter reads the account id and API token as two lines from In,
// writing prompts to Out.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p *TerminalPrompter) Prompt() (Credentials, error) {
	reader := bufio.NewReader(p.In)

	accountID, err := p.readLine(reader, "Enter the GTMHub account id: ")
	if err != nil {
		return Credentials{}, err
	}
	apiToken, err := p.readLine(reader, "Enter the GTMHub API token: ")
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{AccountID: accountID, APIToken: apiToken}, nil
}

func (p *TerminalPrompter) readLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("config: read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Resolve returns a usable credential. Stored credentials win; any load
// failure or an empty stored token routes to the prompter, and the prompted
// credentials are persisted so the next invocation does not prompt again.
// Only the persistence step can fail the resolution.
func Resolve(store *Store, prompter Prompter) (Credentials, error) {
	creds, err := store.Load()
	if err == nil && creds.Usable() {
		return creds, nil
	}
	if err != nil {
		slog.Debug("credential load failed, prompting", "path", store.Path(), "error", err)
	}

	entered, err := prompter.Prompt()
	if err != nil {
		return Credentials{}, err
	}
	if err := store.Save(entered); err != nil {
		return Credentials{}, err
	}
	return entered, nil
}

// FromEnv returns credentials from GTMHUB_ACCOUNT_ID and GTMHUB_API_TOKEN
// when both are set. This is the non-interactive path for CI and scripts.
func FromEnv() (Credentials, bool) {
	creds := Credentials{
		AccountID: os.Getenv("GTMHUB_ACCOUNT_ID"),
		APIToken:  os.Getenv("GTMHUB_API_TOKEN"),
	}
	if creds.AccountID == "" || !creds.Usable() {
		return Credentials{}, false
	}
	return creds, true
}
