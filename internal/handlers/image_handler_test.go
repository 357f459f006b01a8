package handlers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vzdrzevanje/internal/models"
)

type fakeImageService struct {
	saved  int
	byTask []models.Image
}

func (f *fakeImageService) SaveUploads(_ context.Context, taskID int64, files []*multipart.FileHeader) ([]models.Image, error) {
	f.saved += len(files)
	out := make([]models.Image, len(files))
	for i, file := range files {
		out[i] = models.Image{ID: int64(i + 1), TaskID: taskID, FileName: file.Filename}
	}
	return out, nil
}

func (f *fakeImageService) GetByTaskID(_ context.Context, _ int64) ([]models.Image, error) {
	return f.byTask, nil
}

func newImageRouter(images *fakeImageService, tasks *fakeTaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewImageHandler(images, tasks)
	r.POST("/api/nalogi/:id/slike", h.Upload)
	r.GET("/api/nalogi/:id/slike", h.GetByTask)
	return r
}

func multipartUpload(t *testing.T, count int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i := 0; i < count; i++ {
		part, err := w.CreateFormFile("slike", fmt.Sprintf("slika-%d.jpg", i))
		require.NoError(t, err)
		_, err = part.Write([]byte("jpegdata"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestImageUploadSavesFiles(t *testing.T) {
	images := &fakeImageService{}
	tasks := &fakeTaskService{byID: &models.Task{ID: 5, Title: "Servis"}}
	r := newImageRouter(images, tasks)

	body, contentType := multipartUpload(t, 2)
	req := httptest.NewRequest(http.MethodPost, "/api/nalogi/5/slike", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Slike uspesno nalozene")
	assert.Equal(t, 2, images.saved)
}

func TestImageUploadRejectsMoreThanTenFiles(t *testing.T) {
	images := &fakeImageService{}
	tasks := &fakeTaskService{byID: &models.Task{ID: 5, Title: "Servis"}}
	r := newImageRouter(images, tasks)

	body, contentType := multipartUpload(t, 11)
	req := httptest.NewRequest(http.MethodPost, "/api/nalogi/5/slike", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, images.saved, "nothing may be stored from an oversized upload")
}

func TestImageUploadUnknownTaskIs404(t *testing.T) {
	r := newImageRouter(&fakeImageService{}, &fakeTaskService{byID: nil})

	body, contentType := multipartUpload(t, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/nalogi/99/slike", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImageUploadRequiresAtLeastOneFile(t *testing.T) {
	r := newImageRouter(&fakeImageService{}, &fakeTaskService{byID: &models.Task{ID: 5}})

	body, contentType := multipartUpload(t, 0)
	req := httptest.NewRequest(http.MethodPost, "/api/nalogi/5/slike", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
