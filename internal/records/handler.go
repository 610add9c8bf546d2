package records

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"labrecord-backend/internal/logo"
	"labrecord-backend/internal/shared/server/middleware"
	"labrecord-backend/internal/shared/server/respond"
	"labrecord-backend/internal/shared/telemetry"
)

const maxLogoUploadSize = 5 << 20 // 5MB

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc  *Service
	Logo *logo.Store
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, store *logo.Store) *Handler {
	return &Handler{Svc: svc, Logo: store}
}

// RegisterRoutes attaches generation and logo routes to the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/generate-docx", h.generate)
	r.POST("/upload-logo", h.uploadLogo)
}

func (h *Handler) generate(c *gin.Context) {
	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", err.Error())
		return
	}

	doc, err := h.Svc.Generate(req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		case errors.Is(err, ErrStorage):
			respond.Error(c, http.StatusInternalServerError, ErrorCodeStorage, "failed to load stored logo", err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeGeneration, "failed to generate document", err.Error())
		}
		return
	}

	telemetry.Info("record.generated", map[string]any{
		"request_id":      middleware.RequestIDFromContext(c),
		"document_id":     uuid.NewString(),
		"register_number": req.RegisterNumber,
		"experiments":     len(req.Experiments),
		"size_bytes":      len(doc.Data),
	})

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(http.StatusOK, docxContentType, doc.Data)
}

func (h *Handler) uploadLogo(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxLogoUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "file is required", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respond.Error(c, http.StatusUnsupportedMediaType, ErrorCodeUnsupportedMedia, "File must be an image", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
		return
	}

	ext := strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
	name, err := h.Logo.Save(data, ext)
	if err != nil {
		if errors.Is(err, logo.ErrUnsupportedType) {
			respond.Error(c, http.StatusUnsupportedMediaType, ErrorCodeUnsupportedMedia, err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, ErrorCodeStorage, "failed to store logo", err.Error())
		return
	}

	telemetry.Info("logo.uploaded", map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"filename":   name,
		"size_bytes": len(data),
	})

	respond.OK(c, gin.H{
		"message":  "Logo uploaded successfully",
		"filename": name,
	})
}
