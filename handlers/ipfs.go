package handlers

import (
	"net/http"

	"travelgo/services/ipfs"
	"travelgo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 25 << 20 // Pinata free-tier file cap

// IPFSHandler proxies pin management to the configured pinning provider so
// API credentials never reach the browser.
type IPFSHandler struct {
	Pins   ipfs.PinningService
	Logger *zap.Logger
}

func NewIPFSHandler(pins ipfs.PinningService, logger *zap.Logger) *IPFSHandler {
	return &IPFSHandler{Pins: pins, Logger: logger}
}

// UploadHandler handles POST /api/ipfs/upload (multipart form, field "file").
func (h *IPFSHandler) UploadHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "missing file", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	metadata := map[string]string{}
	for key, values := range c.Request.PostForm {
		if key != "file" && len(values) > 0 {
			metadata[key] = values[0]
		}
	}

	result, err := h.Pins.PinFile(c.Request.Context(), header.Filename, file, metadata)
	if err != nil {
		h.Logger.Error("pin upload failed", zap.String("filename", header.Filename), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "upload failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// MetadataHandler handles GET /api/ipfs/metadata/:hash.
func (h *IPFSHandler) MetadataHandler(c *gin.Context) {
	pinned, err := h.Pins.GetMetadata(c.Request.Context(), c.Param("hash"))
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "metadata lookup failed", err.Error())
		return
	}
	if pinned == nil {
		utils.JSONError(c, http.StatusNotFound, "not pinned", "no pinned file matches the hash")
		return
	}
	c.JSON(http.StatusOK, pinned)
}

// ListFilesHandler handles GET /api/ipfs/files.
func (h *IPFSHandler) ListFilesHandler(c *gin.Context) {
	files, err := h.Pins.ListFiles(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "list failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, files)
}

// UnpinHandler handles DELETE /api/ipfs/:hash.
func (h *IPFSHandler) UnpinHandler(c *gin.Context) {
	if err := h.Pins.Unpin(c.Request.Context(), c.Param("hash")); err != nil {
		utils.JSONError(c, http.StatusBadGateway, "unpin failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unpinned"})
}
