package e2e_test

import (
	"bytes"
	"image"
	_ "image/jpeg"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadResponse struct {
	Image struct {
		ID       string `json:"id"`
		Key      string `json:"key"`
		URL      string `json:"url"`
		MimeType string `json:"mime_type"`
		Size     int64  `json:"size"`
		Width    int    `json:"width"`
		Height   int    `json:"height"`
	} `json:"image"`
	URL             string `json:"url"`
	SignedURL       string `json:"signed_url"`
	PreviousDeleted bool   `json:"previous_deleted"`
}

type imagesListResponse struct {
	Images []struct {
		Key string `json:"key"`
	} `json:"images"`
}

type objectsListResponse struct {
	Objects []struct {
		Key string `json:"key"`
	} `json:"objects"`
}

func TestE2E_Images_UploadListDelete(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	userID := uuid.New()
	token := app.token(t, userID)

	// Upload a PNG and get back a JPEG scaled to the requested width.
	resp, err := app.uploadFile("/images", token, "image/png", encodeImage(t, ".png", 800, 600), map[string]string{"width": "400"})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var uploaded uploadResponse
	parseResponse(t, resp, &uploaded)
	assert.Equal(t, "image/jpeg", uploaded.Image.MimeType)
	assert.Equal(t, 400, uploaded.Image.Width)
	assert.Equal(t, 300, uploaded.Image.Height)
	assert.Regexp(t, `^images/[0-9a-f-]{36}\.jpg$`, uploaded.Image.Key)
	assert.Equal(t, storageBaseURL+uploaded.Image.Key, uploaded.URL)
	assert.NotEmpty(t, uploaded.SignedURL)

	stored, ok := app.Storage.Get(uploaded.Image.Key)
	require.True(t, ok)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, int64(len(stored)), uploaded.Image.Size)

	// List by owner.
	resp, err = app.get("/images/mine", token)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var mine imagesListResponse
	parseResponse(t, resp, &mine)
	require.Len(t, mine.Images, 1)
	assert.Equal(t, uploaded.Image.Key, mine.Images[0].Key)

	// List bucket.
	resp, err = app.get("/images?prefix=images/", token)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var objects objectsListResponse
	parseResponse(t, resp, &objects)
	require.Len(t, objects.Objects, 1)

	// Another user cannot delete it.
	resp, err = app.delete("/images/"+uploaded.Image.Key, app.token(t, uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Owner deletes it.
	resp, err = app.delete("/images/"+uploaded.Image.Key, token)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	_, ok = app.Storage.Get(uploaded.Image.Key)
	assert.False(t, ok)

	resp, err = app.get("/images/mine", token)
	require.NoError(t, err)
	parseResponse(t, resp, &mine)
	assert.Empty(t, mine.Images)

	assert.Equal(t, []string{"image.uploaded", "image.deleted"}, app.Events.Types())
}

func TestE2E_Images_ReplacePrevious(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	token := app.token(t, uuid.New())

	resp, err := app.uploadFile("/images", token, "image/gif", encodeImage(t, ".gif", 300, 300), map[string]string{
		"key":   "avatars/v1.jpg",
		"width": "100",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.uploadFile("/images", token, "image/bmp", encodeImage(t, ".bmp", 300, 150), map[string]string{
		"key":     "avatars/v2.jpg",
		"old_key": "avatars/v1.jpg",
		"height":  "50",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var replaced uploadResponse
	parseResponse(t, resp, &replaced)
	assert.True(t, replaced.PreviousDeleted)
	assert.Equal(t, 100, replaced.Image.Width)
	assert.Equal(t, 50, replaced.Image.Height)

	_, ok := app.Storage.Get("avatars/v1.jpg")
	assert.False(t, ok)

	resp, err = app.get("/images/mine", token)
	require.NoError(t, err)

	var mine imagesListResponse
	parseResponse(t, resp, &mine)
	require.Len(t, mine.Images, 1)
	assert.Equal(t, "avatars/v2.jpg", mine.Images[0].Key)
}

func TestE2E_Images_ForeignKeys(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	ownerToken := app.token(t, uuid.New())
	otherToken := app.token(t, uuid.New())

	resp, err := app.uploadFile("/images", ownerToken, "image/png", encodeImage(t, ".png", 200, 100), map[string]string{
		"key":   "avatars/owner.jpg",
		"width": "100",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	original, ok := app.Storage.Get("avatars/owner.jpg")
	require.True(t, ok)

	t.Run("cannot overwrite another uploader's key", func(t *testing.T) {
		resp, err := app.uploadFile("/images", otherToken, "image/png", encodeImage(t, ".png", 50, 50), map[string]string{
			"key": "avatars/owner.jpg",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("cannot replace another uploader's key", func(t *testing.T) {
		resp, err := app.uploadFile("/images", otherToken, "image/png", encodeImage(t, ".png", 50, 50), map[string]string{
			"old_key": "avatars/owner.jpg",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	stored, ok := app.Storage.Get("avatars/owner.jpg")
	require.True(t, ok)
	assert.Equal(t, original, stored)

	resp, err = app.get("/images/mine", ownerToken)
	require.NoError(t, err)

	var mine imagesListResponse
	parseResponse(t, resp, &mine)
	require.Len(t, mine.Images, 1)
	assert.Equal(t, "avatars/owner.jpg", mine.Images[0].Key)

	resp, err = app.get("/images/mine", otherToken)
	require.NoError(t, err)
	parseResponse(t, resp, &mine)
	assert.Empty(t, mine.Images)

	objects, err := app.Storage.List(t.Context(), "")
	require.NoError(t, err)
	assert.Len(t, objects, 1)
	assert.Equal(t, []string{"image.uploaded"}, app.Events.Types())
}

func TestE2E_Images_Rejections(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	token := app.token(t, uuid.New())

	t.Run("no token", func(t *testing.T) {
		resp, err := app.get("/images/mine", "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("garbage bytes with image content type", func(t *testing.T) {
		resp, err := app.uploadFile("/images", token, "image/png", []byte("definitely not an image"), nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("png content declared as jpeg", func(t *testing.T) {
		resp, err := app.uploadFile("/images", token, "image/jpeg", encodeImage(t, ".png", 10, 10), nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("tiff content type", func(t *testing.T) {
		resp, err := app.uploadFile("/images", token, "image/tiff", encodeImage(t, ".tiff", 10, 10), nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("negative width", func(t *testing.T) {
		resp, err := app.uploadFile("/images", token, "image/png", encodeImage(t, ".png", 10, 10), map[string]string{"width": "-5"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("path traversal key", func(t *testing.T) {
		resp, err := app.uploadFile("/images", token, "image/png", encodeImage(t, ".png", 10, 10), map[string]string{"key": "../escape.jpg"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	objects, err := app.Storage.List(t.Context(), "")
	require.NoError(t, err)
	assert.Empty(t, objects)
}
