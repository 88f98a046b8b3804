package api

import (
	"net/http"
	"os"
	"path/filepath"

	"upload-gateway/internal/index"
	"upload-gateway/internal/logging"
	"upload-gateway/internal/storage"

	"github.com/gin-gonic/gin"
)

// FileHandler serves stored files anonymously and deletes them on
// authenticated request.
type FileHandler struct {
	store *storage.Store
	idx   *index.Index
	log   *logging.Logger
}

func NewFileHandler(store *storage.Store, idx *index.Index, log *logging.Logger) *FileHandler {
	return &FileHandler{store: store, idx: idx, log: log}
}

// Serve streams a stored file with a one hour client cache.
func (h *FileHandler) Serve(c *gin.Context) {
	name := filepath.Base(c.Param("name"))

	f, fi, err := h.store.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	if fi.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	http.ServeContent(c.Writer, c.Request, name, fi.ModTime(), f)
}

// Delete removes a stored file. Deleting a file that is already gone
// still reports success, matching the sweeper's view of the same race.
func (h *FileHandler) Delete(c *gin.Context) {
	name := filepath.Base(c.Param("name"))

	if err := h.store.Remove(name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.idx.Remove(name); err != nil {
		h.log.Warn("index update failed", "file", name, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "name": name})
}
