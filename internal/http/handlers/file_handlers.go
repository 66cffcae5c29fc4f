package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vairleon/ai-web-core/domain"
	"github.com/vairleon/ai-web-core/internal/http/middleware"
)

// FileHandlers handles file upload HTTP requests
type FileHandlers struct {
	fileSvc domain.FileService
}

// NewFileHandlers creates new file handlers
func NewFileHandlers(fileSvc domain.FileService) *FileHandlers {
	return &FileHandlers{fileSvc: fileSvc}
}

// Upload handles POST /api/file/upload (multipart, field "file").
func (h *FileHandlers) Upload(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "the file field is required"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer f.Close()

	// Read at most one byte past the ceiling; the extra byte lets the
	// file service detect the overflow without buffering the whole body.
	data, err := io.ReadAll(io.LimitReader(f, domain.MaxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}

	info, err := h.fileSvc.Upload(user, data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
