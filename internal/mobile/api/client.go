// Package api is the HTTP client for the maintenance backend, used by
// the mobile CLI and the offline queue.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"vzdrzevanje/internal/models"
)

// TaskForm is the create-task payload as the presentation layer fills
// it in. Dates travel as plain YYYY-MM-DD strings.
type TaskForm struct {
	ClientID    int64               `json:"stranka_id"`
	EquipmentID *int64              `json:"oprema_id,omitempty"`
	Title       string              `json:"naslov"`
	Description string              `json:"opis,omitempty"`
	PlannedDate string              `json:"datum_nacrtovanega_vzdrzevanja,omitempty"`
	Priority    models.TaskPriority `json:"prioriteta,omitempty"`
	SpareParts  string              `json:"rezervni_deli,omitempty"`
	Notes       string              `json:"opombe,omitempty"`
}

// CreateResult is the server's answer to a create call.
type CreateResult struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// TaskFilters are passed through to the server's list endpoint;
// filtering and sorting happen server-side.
type TaskFilters struct {
	Status      string
	ClientID    int64
	EquipmentID int64
	PlannedDate string
	SortBy      string
}

type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(serverURL, "/") + "/api",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken attaches a pairing token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(b), "application/json", out)
}

// Health probes the server; a nil error means reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, "", nil)
}

func (c *Client) CreateTask(ctx context.Context, form TaskForm) (CreateResult, error) {
	var result CreateResult
	if err := c.postJSON(ctx, "/nalogi", form, &result); err != nil {
		return CreateResult{}, err
	}
	return result, nil
}

func (c *Client) ListTasks(ctx context.Context, filters TaskFilters) ([]models.TaskWithDetails, error) {
	params := url.Values{}
	if filters.Status != "" {
		params.Set("filter_status", filters.Status)
	}
	if filters.ClientID != 0 {
		params.Set("filter_stranka", strconv.FormatInt(filters.ClientID, 10))
	}
	if filters.EquipmentID != 0 {
		params.Set("filter_oprema", strconv.FormatInt(filters.EquipmentID, 10))
	}
	if filters.PlannedDate != "" {
		params.Set("filter_datum", filters.PlannedDate)
	}
	if filters.SortBy != "" {
		params.Set("sort_by", filters.SortBy)
	}

	path := "/nalogi"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var tasks []models.TaskWithDetails
	if err := c.do(ctx, http.MethodGet, path, nil, "", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UploadImages posts the local files as a multipart request tied to the
// given task id.
func (c *Client) UploadImages(ctx context.Context, taskID int64, paths []string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("open image %q: %w", p, err)
		}
		part, err := w.CreateFormFile("slike", filepath.Base(p))
		if err != nil {
			f.Close()
			return fmt.Errorf("build upload: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return fmt.Errorf("read image %q: %w", p, err)
		}
		f.Close()
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("build upload: %w", err)
	}

	path := fmt.Sprintf("/nalogi/%d/slike", taskID)
	return c.do(ctx, http.MethodPost, path, &buf, w.FormDataContentType(), nil)
}

func (c *Client) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := c.do(ctx, http.MethodGet, "/stranke", nil, "", &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *Client) ListEquipment(ctx context.Context, clientID int64) ([]models.EquipmentWithOwner, error) {
	path := "/oprema"
	if clientID != 0 {
		path += "?stranka_id=" + strconv.FormatInt(clientID, 10)
	}
	var equipment []models.EquipmentWithOwner
	if err := c.do(ctx, http.MethodGet, path, nil, "", &equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

// Pair exchanges the shared password for a bearer token.
func (c *Client) Pair(ctx context.Context, device, password string) (string, error) {
	var result struct {
		Token string `json:"token"`
	}
	payload := map[string]string{"naprava": device, "geslo": password}
	if err := c.postJSON(ctx, "/auth/pair", payload, &result); err != nil {
		return "", err
	}
	return result.Token, nil
}
