package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "mobile.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, KeyOfflineTasks)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, KeyOfflineTasks, "ena"))
	value, ok, err := store.Get(ctx, KeyOfflineTasks)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ena", value)

	// Set overwrites in place
	require.NoError(t, store.Set(ctx, KeyOfflineTasks, "dve"))
	value, _, err = store.Get(ctx, KeyOfflineTasks)
	require.NoError(t, err)
	assert.Equal(t, "dve", value)

	require.NoError(t, store.Remove(ctx, KeyOfflineTasks))
	_, ok, err = store.Get(ctx, KeyOfflineTasks)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mobile.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, KeySettings, "ohranjeno"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, KeySettings)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ohranjeno", value)
}

func TestBlobEnvelopeRoundTrip(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	blob, err := EncodeBlob(payload{Name: "klima", Count: 3})
	require.NoError(t, err)

	var env struct {
		Schema int             `json:"schema"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(blob), &env))
	assert.Equal(t, 1, env.Schema)

	var out payload
	require.NoError(t, DecodeBlob(blob, &out))
	assert.Equal(t, payload{Name: "klima", Count: 3}, out)
}

func TestDecodeBlobRejectsUnknownSchema(t *testing.T) {
	var out map[string]string
	err := DecodeBlob(`{"schema":99,"data":{}}`, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema 99")
}

func TestDecodeBlobRejectsUnwrappedLegacyValue(t *testing.T) {
	// a bare array written without the envelope must not decode silently
	var out []string
	err := DecodeBlob(`["a","b"]`, &out)
	assert.Error(t, err)
}

func TestLoadSettingsFallsBackToDefaults(t *testing.T) {
	store := openTestStore(t)

	settings, err := LoadSettings(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
	assert.True(t, settings.AutoSync)
	assert.Equal(t, "http://localhost:3001", settings.ServerURL)
}

func TestSettingsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	saved := Settings{
		ServerURL:     "http://192.168.1.40:3001",
		AutoSync:      false,
		Notifications: true,
		Theme:         "dark",
	}
	require.NoError(t, SaveSettings(ctx, store, saved))

	loaded, err := LoadSettings(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}
