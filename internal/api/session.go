package api

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Session is the token pair obtained from POST /token/. It is created on
// login, passed explicitly to the adapter, and destroyed on logout or on
// the first 401. There is no ambient token state.
type Session struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// sessionFile returns the on-disk location of the persisted session,
// <user config dir>/linkvault/session.json.
func sessionFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate user config dir: %w", err)
	}
	return filepath.Join(dir, "linkvault", "session.json"), nil
}

// LoadSession reads the persisted session, if any. A missing file yields
// (nil, nil): the user simply is not logged in.
func LoadSession() (*Session, error) {
	path, err := sessionFile()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read session file: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", path, err)
	}
	if s.Access == "" {
		return nil, nil
	}
	return &s, nil
}

// Save persists the session for later CLI invocations. The file is
// mode 0600: it holds bearer tokens.
func (s *Session) Save() error {
	path, err := sessionFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("cannot create config dir: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("cannot write session file: %w", err)
	}
	return nil
}

// ClearSession removes the persisted session. Clearing an absent session
// is not an error.
func ClearSession() error {
	path, err := sessionFile()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot remove session file: %w", err)
	}
	return nil
}
