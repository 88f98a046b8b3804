package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"upload-gateway/internal/config"
	"upload-gateway/internal/index"
	"upload-gateway/internal/logging"
	"upload-gateway/internal/storage"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

// MaxFileBytes caps a single uploaded file at 500 MiB.
const MaxFileBytes int64 = 500 << 20

// maxBatchFiles caps the multi-file form field.
const maxBatchFiles = 20

type UploadHandler struct {
	cfg          *config.Config
	store        *storage.Store
	idx          *index.Index
	log          *logging.Logger
	maxFileBytes int64
}

func NewUploadHandler(cfg *config.Config, store *storage.Store, idx *index.Index, log *logging.Logger) *UploadHandler {
	return &UploadHandler{cfg: cfg, store: store, idx: idx, log: log, maxFileBytes: MaxFileBytes}
}

type uploadedFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
}

// Upload stores every file from the multipart fields "file" (one entry)
// and "files" (up to twenty). All parts are validated before any one of
// them is written, so a rejected part never leaves partial state behind.
func (h *UploadHandler) Upload(c *gin.Context) {
	// Bound the whole request before any part is parsed, so an oversized
	// body is cut off mid-stream instead of being spooled to temp files
	// first: one single-field entry plus a full batch at the per-file
	// cap, with a megabyte of room for the multipart framing.
	requestCap := (1+maxBatchFiles)*h.maxFileBytes + 1<<20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, requestCap)

	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	single := form.File["file"]
	batch := form.File["files"]
	if len(single) > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Field 'file' accepts a single entry"})
		return
	}
	if len(batch) > maxBatchFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Field 'files' accepts at most 20 entries"})
		return
	}

	parts := make([]*multipart.FileHeader, 0, len(single)+len(batch))
	parts = append(parts, single...)
	parts = append(parts, batch...)
	if len(parts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files received"})
		return
	}

	for _, fh := range parts {
		mimeType := fh.Header.Get("Content-Type")
		if !storage.Allowed(mimeType) {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Invalid media type: " + mimeType})
			return
		}
		if fh.Size > h.maxFileBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large: " + fh.Filename})
			return
		}
	}

	base := h.publicBase(c)
	uploaded := make([]uploadedFile, 0, len(parts))
	for _, fh := range parts {
		mimeType := fh.Header.Get("Content-Type")

		src, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		name := storage.NewName(fh.Filename, mimeType)
		size, err := h.store.Save(name, src)
		src.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := h.idx.Put(name, size, time.Now()); err != nil {
			h.log.Warn("index update failed", "file", name, "error", err)
		}
		h.log.Info("stored upload", "file", name, "size", humanize.IBytes(uint64(size)))

		uploaded = append(uploaded, uploadedFile{
			URL:      base + "/files/" + name,
			Filename: name,
			Size:     size,
			MimeType: mimeType,
		})
	}

	c.JSON(http.StatusOK, gin.H{"uploaded": uploaded})
}

// publicBase resolves the host portion of returned URLs: the configured
// PUBLIC_BASE wins, then the forwarded host, then the request's own.
func (h *UploadHandler) publicBase(c *gin.Context) string {
	if h.cfg.PublicBase != "" {
		return strings.TrimRight(h.cfg.PublicBase, "/")
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	host := c.Request.Host
	if forwarded := c.GetHeader("X-Forwarded-Host"); forwarded != "" {
		host = forwarded
	}

	return scheme + "://" + host
}
