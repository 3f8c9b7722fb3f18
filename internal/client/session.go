package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ZhuneIDS/apitareas/internal/model"
	"github.com/ZhuneIDS/apitareas/internal/storage/local"
)

// SessionStore persists the current session in a local file.
type SessionStore struct {
	disk *local.Disk
	key  string
}

// NewSessionStore keeps the session at path, creating its directory.
func NewSessionStore(path string) (*SessionStore, error) {
	disk, err := local.NewDisk(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	return &SessionStore{disk: disk, key: filepath.Base(path)}, nil
}

// Load returns the saved session, or nil when there is none.
func (s *SessionStore) Load(ctx context.Context) (*Session, error) {
	rc, err := s.disk.Download(ctx, s.key)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var session Session
	if err := json.NewDecoder(rc).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if !session.LoggedIn() {
		return nil, nil
	}
	return &session, nil
}

// Save replaces the saved session.
func (s *SessionStore) Save(ctx context.Context, session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.disk.Upload(ctx, s.key, bytes.NewReader(raw))
}

// Clear removes the saved session.
func (s *SessionStore) Clear(_ context.Context) error {
	return s.disk.Remove(s.key)
}
