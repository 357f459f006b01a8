// Package offline implements the device-side task queue: it decides at
// submission time whether a new maintenance task goes straight to the
// server or into durable local storage, and replays the stored tasks
// when connectivity returns.
package offline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"vzdrzevanje/internal/mobile/api"
	"vzdrzevanje/internal/mobile/connectivity"
	"vzdrzevanje/internal/mobile/storage"
	"vzdrzevanje/internal/models"
)

// RemoteService is the slice of the backend API the queue depends on.
type RemoteService interface {
	CreateTask(ctx context.Context, form api.TaskForm) (api.CreateResult, error)
	ListTasks(ctx context.Context, filters api.TaskFilters) ([]models.TaskWithDetails, error)
	UploadImages(ctx context.Context, taskID int64, paths []string) error
}

// QueuedTask is one not-yet-synced task in the persisted queue. Its
// LocalID is a device-generated uuid, deliberately a different type
// from the server-assigned integer ids so the two can never be
// confused.
type QueuedTask struct {
	LocalID   string    `json:"local_id"`
	Offline   bool      `json:"offline"`
	CreatedAt time.Time `json:"datum_ustvarjanja"`
	api.TaskForm
}

// imageMap maps a local task id to the ordered local file paths of its
// captured photos.
type imageMap map[string][]string

// TaskItem is one entry of a task listing: either a server row or a
// queued local task carrying its offline marker.
type TaskItem struct {
	models.TaskWithDetails
	LocalID string `json:"local_id,omitempty"`
	Offline bool   `json:"offline,omitempty"`
}

// SubmitResult reports where a submitted task ended up.
type SubmitResult struct {
	Queued  bool
	TaskID  int64  // server id when sent directly
	LocalID string // local id when queued
}

// SyncResult is the per-item outcome of a replay. Failed items stay in
// the queue for the next attempt instead of being dropped.
type SyncResult struct {
	Attempted int
	Synced    int
	Failed    []SyncFailure
}

type SyncFailure struct {
	LocalID string
	Title   string
	Err     string
}

type Queue struct {
	store  storage.Store
	remote RemoteService
	net    connectivity.Monitor

	// serializes every read-modify-write of the queue blobs; the store
	// itself has no optimistic-concurrency check.
	mu sync.Mutex
}

func New(store storage.Store, remote RemoteService, net connectivity.Monitor) *Queue {
	return &Queue{store: store, remote: remote, net: net}
}

// EnableAutoSync replays the queue whenever connectivity comes back.
func (q *Queue) EnableAutoSync(ctx context.Context) {
	q.net.OnChange(func(connected bool) {
		if !connected {
			return
		}
		if _, err := q.Sync(ctx); err != nil {
			log.Printf("[offline][autosync][err] %v", err)
		}
	})
}

// SubmitTask routes a validated task form. Reachability is re-read at
// the moment of the call. Online, the task goes to the server and its
// images follow under the returned server id. Offline, the task and its
// image paths are durably queued before the call returns. A remote
// failure while the monitor reported connected is propagated, not
// redirected into the queue.
func (q *Queue) SubmitTask(ctx context.Context, form api.TaskForm, imagePaths []string) (*SubmitResult, error) {
	if q.net.IsConnected() {
		result, err := q.remote.CreateTask(ctx, form)
		if err != nil {
			return nil, err
		}
		if len(imagePaths) > 0 {
			if err := q.remote.UploadImages(ctx, result.ID, imagePaths); err != nil {
				return nil, fmt.Errorf("task %d created, image upload failed: %w", result.ID, err)
			}
		}
		log.Printf("[offline][submit][ok] sent directly id=%d", result.ID)
		return &SubmitResult{TaskID: result.ID}, nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	queued, err := q.loadQueued(ctx)
	if err != nil {
		return nil, err
	}
	task := QueuedTask{
		LocalID:   uuid.NewString(),
		Offline:   true,
		CreatedAt: time.Now(),
		TaskForm:  form,
	}
	queued = append(queued, task)
	if err := q.storeQueued(ctx, queued); err != nil {
		return nil, err
	}

	if len(imagePaths) > 0 {
		images, err := q.loadImages(ctx)
		if err != nil {
			return nil, err
		}
		images[task.LocalID] = append(images[task.LocalID], imagePaths...)
		if err := q.storeImages(ctx, images); err != nil {
			return nil, err
		}
	}

	log.Printf("[offline][submit][ok] queued local_id=%s naslov=%q", task.LocalID, form.Title)
	return &SubmitResult{Queued: true, LocalID: task.LocalID}, nil
}

// ListTasks returns the server's task list when connected, and exactly
// the queued local tasks otherwise. The two sets are never merged.
func (q *Queue) ListTasks(ctx context.Context, filters api.TaskFilters) ([]TaskItem, error) {
	if q.net.IsConnected() {
		remote, err := q.remote.ListTasks(ctx, filters)
		if err != nil {
			return nil, err
		}
		items := make([]TaskItem, 0, len(remote))
		for _, t := range remote {
			items = append(items, TaskItem{TaskWithDetails: t})
		}
		return items, nil
	}

	q.mu.Lock()
	queued, err := q.loadQueued(ctx)
	q.mu.Unlock()
	if err != nil {
		return nil, err
	}

	items := make([]TaskItem, 0, len(queued))
	for _, t := range queued {
		items = append(items, t.toItem())
	}
	return items, nil
}

// Pending reports how many tasks are waiting to be synced.
func (q *Queue) Pending(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	queued, err := q.loadQueued(ctx)
	if err != nil {
		return 0, err
	}
	return len(queued), nil
}

// Sync replays the queue in insertion order. Every item is attempted
// regardless of earlier failures; only successfully created tasks (and
// their image map entries) are removed, and failures are reported
// per item.
func (q *Queue) Sync(ctx context.Context) (*SyncResult, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	queued, err := q.loadQueued(ctx)
	if err != nil {
		return nil, err
	}
	if len(queued) == 0 {
		return &SyncResult{}, nil
	}

	images, err := q.loadImages(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Attempted: len(queued)}
	var remaining []QueuedTask
	for _, task := range queued {
		created, err := q.remote.CreateTask(ctx, task.TaskForm)
		if err != nil {
			log.Printf("[offline][sync][err] local_id=%s: %v", task.LocalID, err)
			result.Failed = append(result.Failed, SyncFailure{
				LocalID: task.LocalID,
				Title:   task.Title,
				Err:     err.Error(),
			})
			remaining = append(remaining, task)
			continue
		}
		result.Synced++
		log.Printf("[offline][sync][ok] local_id=%s -> id=%d", task.LocalID, created.ID)

		if paths := images[task.LocalID]; len(paths) > 0 {
			if err := q.remote.UploadImages(ctx, created.ID, paths); err != nil {
				// task is synced either way; photos only exist locally
				log.Printf("[offline][sync][err] images local_id=%s: %v", task.LocalID, err)
			}
		}
		delete(images, task.LocalID)
	}

	if len(remaining) == 0 {
		if err := q.store.Remove(ctx, storage.KeyOfflineTasks); err != nil {
			return result, err
		}
	} else if err := q.storeQueued(ctx, remaining); err != nil {
		return result, err
	}
	if err := q.storeImages(ctx, images); err != nil {
		return result, err
	}
	return result, nil
}

func (t QueuedTask) toItem() TaskItem {
	item := TaskItem{LocalID: t.LocalID, Offline: true}
	item.ClientID = t.ClientID
	item.EquipmentID = t.EquipmentID
	item.Title = t.Title
	item.Description = t.Description
	item.CreatedAt = t.CreatedAt
	item.Status = models.StatusPlanned
	item.Priority = t.Priority
	if item.Priority == "" {
		item.Priority = models.PriorityMedium
	}
	item.SpareParts = t.SpareParts
	item.Notes = t.Notes
	if t.PlannedDate != "" {
		if d, err := time.Parse("2006-01-02", t.PlannedDate); err == nil {
			item.PlannedDate = &d
		}
	}
	return item
}

func (q *Queue) loadQueued(ctx context.Context) ([]QueuedTask, error) {
	blob, ok, err := q.store.Get(ctx, storage.KeyOfflineTasks)
	if err != nil {
		return nil, fmt.Errorf("load offline tasks: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var queued []QueuedTask
	if err := storage.DecodeBlob(blob, &queued); err != nil {
		return nil, fmt.Errorf("load offline tasks: %w", err)
	}
	return queued, nil
}

func (q *Queue) storeQueued(ctx context.Context, queued []QueuedTask) error {
	blob, err := storage.EncodeBlob(queued)
	if err != nil {
		return fmt.Errorf("store offline tasks: %w", err)
	}
	if err := q.store.Set(ctx, storage.KeyOfflineTasks, blob); err != nil {
		return fmt.Errorf("store offline tasks: %w", err)
	}
	return nil
}

func (q *Queue) loadImages(ctx context.Context) (imageMap, error) {
	blob, ok, err := q.store.Get(ctx, storage.KeyOfflineImages)
	if err != nil {
		return nil, fmt.Errorf("load offline images: %w", err)
	}
	if !ok {
		return imageMap{}, nil
	}
	var images imageMap
	if err := storage.DecodeBlob(blob, &images); err != nil {
		return nil, fmt.Errorf("load offline images: %w", err)
	}
	if images == nil {
		images = imageMap{}
	}
	return images, nil
}

func (q *Queue) storeImages(ctx context.Context, images imageMap) error {
	if len(images) == 0 {
		if err := q.store.Remove(ctx, storage.KeyOfflineImages); err != nil {
			return fmt.Errorf("store offline images: %w", err)
		}
		return nil
	}
	blob, err := storage.EncodeBlob(images)
	if err != nil {
		return fmt.Errorf("store offline images: %w", err)
	}
	if err := q.store.Set(ctx, storage.KeyOfflineImages, blob); err != nil {
		return fmt.Errorf("store offline images: %w", err)
	}
	return nil
}
