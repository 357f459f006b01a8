package main

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vzdrzevanje/internal/mobile/api"
	"vzdrzevanje/internal/mobile/storage"
	"vzdrzevanje/internal/models"
)

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type recordingRemote struct {
	created []api.TaskForm
}

func (r *recordingRemote) CreateTask(_ context.Context, form api.TaskForm) (api.CreateResult, error) {
	r.created = append(r.created, form)
	return api.CreateResult{ID: int64(len(r.created))}, nil
}

func (r *recordingRemote) ListTasks(_ context.Context, _ api.TaskFilters) ([]models.TaskWithDetails, error) {
	return nil, nil
}

func (r *recordingRemote) UploadImages(_ context.Context, _ int64, _ []string) error {
	return nil
}

type switchMonitor struct {
	connected bool
	listeners []func(bool)
}

func (m *switchMonitor) IsConnected() bool { return m.connected }

func (m *switchMonitor) OnChange(l func(bool)) { m.listeners = append(m.listeners, l) }

func (m *switchMonitor) set(connected bool) {
	if m.connected == connected {
		return
	}
	m.connected = connected
	for _, l := range m.listeners {
		l(connected)
	}
}

func TestBuildQueueSyncsOnReconnectWhenAutoSyncEnabled(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	remote := &recordingRemote{}
	monitor := &switchMonitor{}

	settings := storage.DefaultSettings() // auto_sync on by default
	require.True(t, settings.AutoSync)
	queue := buildQueue(ctx, store, remote, monitor, settings)

	_, err := queue.SubmitTask(ctx, api.TaskForm{ClientID: 1, Title: "Servis"}, nil)
	require.NoError(t, err)
	require.Empty(t, remote.created)

	monitor.set(true)

	require.Len(t, remote.created, 1)
	assert.Equal(t, "Servis", remote.created[0].Title)
	_, ok, err := store.Get(ctx, storage.KeyOfflineTasks)
	require.NoError(t, err)
	assert.False(t, ok, "queue blob drained by the reconnect hook")
}

func TestBuildQueueLeavesQueueAloneWhenAutoSyncDisabled(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	remote := &recordingRemote{}
	monitor := &switchMonitor{}

	settings := storage.DefaultSettings()
	settings.AutoSync = false
	queue := buildQueue(ctx, store, remote, monitor, settings)

	_, err := queue.SubmitTask(ctx, api.TaskForm{ClientID: 1, Title: "Servis"}, nil)
	require.NoError(t, err)

	monitor.set(true)

	assert.Empty(t, remote.created, "no replay without auto-sync")
	_, ok, err := store.Get(ctx, storage.KeyOfflineTasks)
	require.NoError(t, err)
	assert.True(t, ok, "task stays queued until an explicit sync")
}
