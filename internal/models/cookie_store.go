package models

import (
	"os"
	"path/filepath"
	"strings"
)

// CookieStore persists the raw cookie string the CLI sends along with its requests
type CookieStore struct {
	CookieFile string
}

func NewCookieStore(configDir string) *CookieStore {
	return &CookieStore{
		CookieFile: filepath.Join(configDir, "cookies"),
	}
}

func (cs *CookieStore) SaveCookies(raw string) error {
	return os.WriteFile(cs.CookieFile, []byte(strings.TrimSpace(raw)), 0600) // Restricted permissions
}

// CookieString returns the stored cookie string, or "" when nothing has been saved yet
func (cs *CookieStore) CookieString() (string, error) {
	data, err := os.ReadFile(cs.CookieFile)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (cs *CookieStore) ClearCookies() error {
	if _, err := os.Stat(cs.CookieFile); os.IsNotExist(err) {
		return nil // File doesn't exist, nothing to clear
	}
	return os.Remove(cs.CookieFile)
}
