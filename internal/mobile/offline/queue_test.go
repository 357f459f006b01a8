package offline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vzdrzevanje/internal/mobile/api"
	"vzdrzevanje/internal/mobile/storage"
	"vzdrzevanje/internal/models"
)

// memStore is an in-memory stand-in for the device store. Reloading a
// Queue over the same memStore simulates a process restart.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
	fail bool
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", false, errors.New("storage failure")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("storage failure")
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// fakeRemote records create calls and can be scripted to fail for
// specific task titles.
type fakeRemote struct {
	mu       sync.Mutex
	created  []api.TaskForm
	uploads  map[int64][]string
	failFor  map[string]error
	listing  []models.TaskWithDetails
	listErr  error
	nextID   int64
	downAll  bool
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{uploads: map[int64][]string{}, failFor: map[string]error{}, nextID: 100}
}

func (f *fakeRemote) CreateTask(_ context.Context, form api.TaskForm) (api.CreateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.downAll {
		return api.CreateResult{}, errors.New("connection refused")
	}
	if err := f.failFor[form.Title]; err != nil {
		return api.CreateResult{}, err
	}
	f.nextID++
	f.created = append(f.created, form)
	return api.CreateResult{ID: f.nextID, Message: "Nalog uspesno ustvarjen"}, nil
}

func (f *fakeRemote) ListTasks(_ context.Context, _ api.TaskFilters) ([]models.TaskWithDetails, error) {
	return f.listing, f.listErr
}

func (f *fakeRemote) UploadImages(_ context.Context, taskID int64, paths []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads[taskID] = append(f.uploads[taskID], paths...)
	return nil
}

func (f *fakeRemote) createdTitles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	titles := make([]string, len(f.created))
	for i, c := range f.created {
		titles[i] = c.Title
	}
	return titles
}

// fakeMonitor flips reachability on demand and fires listeners like the
// real probe monitor does.
type fakeMonitor struct {
	mu        sync.Mutex
	connected bool
	listeners []func(bool)
}

func (m *fakeMonitor) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *fakeMonitor) OnChange(l func(bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

func (m *fakeMonitor) set(connected bool) {
	m.mu.Lock()
	changed := m.connected != connected
	m.connected = connected
	listeners := append([]func(bool){}, m.listeners...)
	m.mu.Unlock()
	if !changed {
		return
	}
	for _, l := range listeners {
		l(connected)
	}
}

func newQueue(connected bool) (*Queue, *memStore, *fakeRemote, *fakeMonitor) {
	store := newMemStore()
	remote := newFakeRemote()
	monitor := &fakeMonitor{connected: connected}
	return New(store, remote, monitor), store, remote, monitor
}

func queuedTasks(t *testing.T, store *memStore) []QueuedTask {
	t.Helper()
	blob, ok, err := store.Get(context.Background(), storage.KeyOfflineTasks)
	require.NoError(t, err)
	if !ok {
		return nil
	}
	var queued []QueuedTask
	require.NoError(t, storage.DecodeBlob(blob, &queued))
	return queued
}

func TestSubmitTaskOnlineGoesDirect(t *testing.T) {
	q, store, remote, _ := newQueue(true)

	result, err := q.SubmitTask(context.Background(), api.TaskForm{
		ClientID: 7, Title: "Menjava filtra",
	}, nil)
	require.NoError(t, err)

	assert.False(t, result.Queued)
	assert.NotZero(t, result.TaskID)
	assert.Len(t, remote.created, 1, "remote create should be invoked exactly once")
	assert.Empty(t, queuedTasks(t, store), "nothing may be appended to the offline queue")
}

func TestSubmitTaskOnlineUploadsImages(t *testing.T) {
	q, _, remote, _ := newQueue(true)

	result, err := q.SubmitTask(context.Background(), api.TaskForm{
		ClientID: 7, Title: "Menjava filtra",
	}, []string{"/tmp/a.jpg", "/tmp/b.jpg"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/tmp/a.jpg", "/tmp/b.jpg"}, remote.uploads[result.TaskID])
}

func TestSubmitTaskOfflineIsDurablyQueued(t *testing.T) {
	q, store, remote, _ := newQueue(false)

	result, err := q.SubmitTask(context.Background(), api.TaskForm{
		ClientID: 7, Title: "Popravilo klime",
	}, nil)
	require.NoError(t, err)

	assert.True(t, result.Queued)
	assert.NotEmpty(t, result.LocalID)
	assert.Empty(t, remote.created)

	queued := queuedTasks(t, store)
	require.Len(t, queued, 1)
	assert.True(t, queued[0].Offline)
	assert.Equal(t, result.LocalID, queued[0].LocalID)
	assert.Equal(t, "Popravilo klime", queued[0].Title)
	assert.Equal(t, int64(7), queued[0].ClientID)

	// simulated restart: a fresh queue over the same store still sees it
	q2 := New(store, remote, &fakeMonitor{})
	pending, err := q2.Pending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}

func TestSubmitTaskOfflineStoresImagePaths(t *testing.T) {
	q, store, _, _ := newQueue(false)

	result, err := q.SubmitTask(context.Background(), api.TaskForm{
		ClientID: 7, Title: "Popravilo klime",
	}, []string{"/sdcard/1.jpg"})
	require.NoError(t, err)

	blob, ok, err := store.Get(context.Background(), storage.KeyOfflineImages)
	require.NoError(t, err)
	require.True(t, ok)
	var images map[string][]string
	require.NoError(t, storage.DecodeBlob(blob, &images))
	assert.Equal(t, []string{"/sdcard/1.jpg"}, images[result.LocalID])
}

func TestSubmitTaskOfflineStorageFailurePropagates(t *testing.T) {
	q, store, _, _ := newQueue(false)
	store.fail = true

	_, err := q.SubmitTask(context.Background(), api.TaskForm{ClientID: 7, Title: "X"}, nil)
	assert.Error(t, err, "a failed durable write must not be reported as success")
}

func TestSubmitTaskRemoteFailureIsNotRedirectedToQueue(t *testing.T) {
	// stale "connected" reading: the monitor says online but the call fails
	q, store, remote, _ := newQueue(true)
	remote.downAll = true

	_, err := q.SubmitTask(context.Background(), api.TaskForm{ClientID: 7, Title: "X"}, nil)
	require.Error(t, err)
	assert.Empty(t, queuedTasks(t, store))
}

func TestRapidDoubleSubmissionKeepsBothTasks(t *testing.T) {
	q, store, _, _ := newQueue(false)

	var wg sync.WaitGroup
	for _, title := range []string{"Prvi", "Drugi"} {
		wg.Add(1)
		go func(title string) {
			defer wg.Done()
			_, err := q.SubmitTask(context.Background(), api.TaskForm{ClientID: 1, Title: title}, nil)
			assert.NoError(t, err)
		}(title)
	}
	wg.Wait()

	assert.Len(t, queuedTasks(t, store), 2)
}

func TestListTasksOfflineReturnsQueueOnly(t *testing.T) {
	q, _, remote, _ := newQueue(false)
	remote.listing = []models.TaskWithDetails{{Task: models.Task{ID: 55, Title: "remote"}}}

	first, err := q.SubmitTask(context.Background(), api.TaskForm{ClientID: 1, Title: "lokalni"}, nil)
	require.NoError(t, err)

	items, err := q.ListTasks(context.Background(), api.TaskFilters{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Offline)
	assert.Equal(t, first.LocalID, items[0].LocalID)
	assert.Equal(t, "lokalni", items[0].Title)
}

func TestListTasksOnlineNeverMixesInQueuedEntries(t *testing.T) {
	q, _, remote, monitor := newQueue(false)

	_, err := q.SubmitTask(context.Background(), api.TaskForm{ClientID: 1, Title: "lokalni"}, nil)
	require.NoError(t, err)

	remote.listing = []models.TaskWithDetails{
		{Task: models.Task{ID: 55, Title: "remote A"}},
		{Task: models.Task{ID: 56, Title: "remote B"}},
	}
	monitor.set(true)

	items, err := q.ListTasks(context.Background(), api.TaskFilters{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.False(t, item.Offline)
		assert.Empty(t, item.LocalID)
	}
}

func TestSyncPreservesInsertionOrder(t *testing.T) {
	q, _, remote, monitor := newQueue(false)

	for _, title := range []string{"A", "B", "C"} {
		_, err := q.SubmitTask(context.Background(), api.TaskForm{ClientID: 1, Title: title}, nil)
		require.NoError(t, err)
	}

	monitor.set(true)
	result, err := q.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Attempted)
	assert.Equal(t, []string{"A", "B", "C"}, remote.createdTitles())
}

func TestSyncClearsQueueOnFullSuccess(t *testing.T) {
	q, store, _, monitor := newQueue(false)

	_, err := q.SubmitTask(context.Background(), api.TaskForm{ClientID: 1, Title: "A"}, nil)
	require.NoError(t, err)

	monitor.set(true)
	result, err := q.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Synced)
	assert.Empty(t, result.Failed)
	_, ok, err := store.Get(context.Background(), storage.KeyOfflineTasks)
	require.NoError(t, err)
	assert.False(t, ok, "queue blob should be removed after a clean sync")
}

func TestSyncRetainsFailedItems(t *testing.T) {
	q, store, remote, monitor := newQueue(false)

	for _, title := range []string{"A", "B", "C"} {
		_, err := q.SubmitTask(context.Background(), api.TaskForm{ClientID: 1, Title: title}, nil)
		require.NoError(t, err)
	}
	remote.failFor["B"] = errors.New("500 from server")

	monitor.set(true)
	result, err := q.Sync(context.Background())
	require.NoError(t, err)

	// every item is attempted, no short-circuit
	assert.Equal(t, 3, result.Attempted)
	assert.Equal(t, 2, result.Synced)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "B", result.Failed[0].Title)
	assert.Equal(t, []string{"A", "C"}, remote.createdTitles())

	// the failed task survives for the next attempt
	queued := queuedTasks(t, store)
	require.Len(t, queued, 1)
	assert.Equal(t, "B", queued[0].Title)

	// ...and a later sync drains it
	delete(remote.failFor, "B")
	result, err = q.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	assert.Empty(t, queuedTasks(t, store))
}

func TestSyncUploadsQueuedImagesUnderServerID(t *testing.T) {
	q, store, remote, monitor := newQueue(false)

	_, err := q.SubmitTask(context.Background(), api.TaskForm{ClientID: 1, Title: "A"}, []string{"/sdcard/1.jpg"})
	require.NoError(t, err)

	monitor.set(true)
	_, err = q.Sync(context.Background())
	require.NoError(t, err)

	require.Len(t, remote.uploads, 1)
	for id, paths := range remote.uploads {
		assert.Greater(t, id, int64(100), "images must be re-keyed to the server-assigned id")
		assert.Equal(t, []string{"/sdcard/1.jpg"}, paths)
	}

	_, ok, err := store.Get(context.Background(), storage.KeyOfflineImages)
	require.NoError(t, err)
	assert.False(t, ok, "image map entry is consumed with its task")
}

func TestSyncOnEmptyQueueIsANoOp(t *testing.T) {
	q, _, remote, _ := newQueue(true)

	result, err := q.Sync(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Attempted)
	assert.Empty(t, remote.created)
}

func TestSubmitAfterReconnectGoesDirect(t *testing.T) {
	q, store, remote, monitor := newQueue(false)

	_, err := q.SubmitTask(context.Background(), api.TaskForm{ClientID: 1, Title: "offline one"}, nil)
	require.NoError(t, err)

	monitor.set(true)

	result, err := q.SubmitTask(context.Background(), api.TaskForm{ClientID: 1, Title: "online one"}, nil)
	require.NoError(t, err)
	assert.False(t, result.Queued)
	assert.Equal(t, []string{"online one"}, remote.createdTitles())
	assert.Len(t, queuedTasks(t, store), 1, "earlier offline task stays queued until sync")
}

func TestAutoSyncDrainsQueueOnReconnect(t *testing.T) {
	q, store, remote, monitor := newQueue(false)
	q.EnableAutoSync(context.Background())

	_, err := q.SubmitTask(context.Background(), api.TaskForm{ClientID: 1, Title: "A"}, nil)
	require.NoError(t, err)

	monitor.set(true)

	assert.Equal(t, []string{"A"}, remote.createdTitles())
	assert.Empty(t, queuedTasks(t, store))
}
