// Package storage provides the device-local durable key-value store
// backing the offline task queue and the mobile settings.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Blob keys used by the mobile client. The server URL lives inside the
// settings blob rather than under a key of its own.
const (
	KeyOfflineTasks  = "offline_tasks"
	KeyOfflineImages = "offline_images"
	KeySettings      = "settings"
)

// Store is a durable store of named string blobs scoped to the device.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// schemaVersion tags every persisted blob so a future format change can
// branch on load instead of breaking silently.
const schemaVersion = 1

type envelope struct {
	Schema int             `json:"schema"`
	Data   json.RawMessage `json:"data"`
}

// EncodeBlob wraps v in the versioned envelope and serializes it.
func EncodeBlob(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode blob: %w", err)
	}
	b, err := json.Marshal(envelope{Schema: schemaVersion, Data: data})
	if err != nil {
		return "", fmt.Errorf("encode blob envelope: %w", err)
	}
	return string(b), nil
}

// DecodeBlob unwraps the versioned envelope into v.
func DecodeBlob(blob string, v interface{}) error {
	var env envelope
	if err := json.Unmarshal([]byte(blob), &env); err != nil {
		return fmt.Errorf("decode blob envelope: %w", err)
	}
	if env.Schema != schemaVersion {
		return fmt.Errorf("unsupported blob schema %d", env.Schema)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decode blob: %w", err)
	}
	return nil
}

// Settings is the flat device configuration object, persisted as a
// whole (read-modify-write of the entire object, not per-field).
type Settings struct {
	ServerURL     string `json:"server_url"`
	AutoSync      bool   `json:"auto_sync"`
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme"`
}

// DefaultSettings mirrors the initial state of a freshly installed app.
func DefaultSettings() Settings {
	return Settings{
		ServerURL:     "http://localhost:3001",
		AutoSync:      true,
		Notifications: true,
		Theme:         "light",
	}
}

// LoadSettings reads the settings blob, falling back to defaults when
// nothing has been saved yet.
func LoadSettings(ctx context.Context, s Store) (Settings, error) {
	blob, ok, err := s.Get(ctx, KeySettings)
	if err != nil {
		return Settings{}, err
	}
	if !ok {
		return DefaultSettings(), nil
	}
	var settings Settings
	if err := DecodeBlob(blob, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func SaveSettings(ctx context.Context, s Store, settings Settings) error {
	blob, err := EncodeBlob(settings)
	if err != nil {
		return err
	}
	return s.Set(ctx, KeySettings, blob)
}
