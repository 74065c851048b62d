package handler

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/imgpipe/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/imgpipe/internal/domain/valueobject"
	"github.com/marcos-nsantos/imgpipe/internal/pkg/apperror"
	"github.com/marcos-nsantos/imgpipe/internal/pkg/httputil"
	"github.com/marcos-nsantos/imgpipe/internal/pkg/pagination"
	"github.com/marcos-nsantos/imgpipe/internal/usecase/upload"
)

// multipartOverhead leaves room for form fields and part headers on top of the file itself.
const multipartOverhead = 1 << 20

type ImageHandler struct {
	imageSvc    ImageService
	tempDir     string
	maxFileSize int64
}

func NewImageHandler(imageSvc ImageService, tempDir string, maxFileSize int64) *ImageHandler {
	return &ImageHandler{
		imageSvc:    imageSvc,
		tempDir:     tempDir,
		maxFileSize: maxFileSize,
	}
}

func (h *ImageHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.HandleError(c, h.tooLarge())
			return
		}
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_FILE", "file is required")
		return
	}

	if header.Size > h.maxFileSize {
		httputil.HandleError(c, h.tooLarge())
		return
	}

	format, err := valueobject.FormatFromContentType(header.Header.Get("Content-Type"))
	if err != nil {
		httputil.HandleError(c, apperror.UnsupportedMediaType("only jpeg, png, gif and bmp images are allowed"))
		return
	}

	width, err := optionalInt(c.PostForm("width"), "width")
	if err != nil {
		httputil.ValidationError(c, err)
		return
	}

	height, err := optionalInt(c.PostForm("height"), "height")
	if err != nil {
		httputil.ValidationError(c, err)
		return
	}

	workDir, err := os.MkdirTemp(h.tempDir, "incoming-*")
	if err != nil {
		httputil.HandleError(c, apperror.Internal(err))
		return
	}
	defer os.RemoveAll(workDir)

	src := filepath.Join(workDir, "source"+format.Extension())
	if err := c.SaveUploadedFile(header, src); err != nil {
		httputil.HandleError(c, apperror.Internal(err))
		return
	}

	result, err := h.imageSvc.Upload(c.Request.Context(), upload.UploadInput{
		UploaderID: httputil.GetUserID(c),
		SourcePath: src,
		Key:        strings.TrimSpace(c.PostForm("key")),
		OldKey:     strings.TrimSpace(c.PostForm("old_key")),
		Width:      width,
		Height:     height,
		// checked against the file content by the service
		DeclaredFormat: format,
	})
	if err != nil {
		httputil.HandleError(c, apperror.FromDomain(err))
		return
	}

	httputil.Created(c, response.UploadResultToResponse(result))
}

func (h *ImageHandler) List(c *gin.Context) {
	prefix := c.Query("prefix")

	objects, err := h.imageSvc.List(c.Request.Context(), prefix)
	if err != nil {
		httputil.HandleError(c, apperror.FromDomain(err))
		return
	}

	httputil.OK(c, response.ObjectsFromInfo(prefix, objects))
}

func (h *ImageHandler) ListMine(c *gin.Context) {
	params := pagination.ParseParams(c.Query("page"), c.Query("per_page"))

	images, info, err := h.imageSvc.ListMine(c.Request.Context(), httputil.GetUserID(c), params)
	if err != nil {
		httputil.HandleError(c, apperror.FromDomain(err))
		return
	}

	httputil.OK(c, response.ImagesFromEntities(images, info))
}

func (h *ImageHandler) Delete(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_KEY", "object key is required")
		return
	}

	if err := h.imageSvc.Delete(c.Request.Context(), httputil.GetUserID(c), key); err != nil {
		httputil.HandleError(c, apperror.FromDomain(err))
		return
	}

	httputil.NoContent(c)
}

func (h *ImageHandler) tooLarge() *apperror.AppError {
	return apperror.TooLarge(fmt.Sprintf("file exceeds %d bytes", h.maxFileSize))
}

func optionalInt(value, field string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", field)
	}
	return n, nil
}
