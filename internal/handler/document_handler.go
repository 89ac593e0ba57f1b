package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personapath/personapath/internal/model"
	"github.com/personapath/personapath/internal/pkg/errcode"
	"github.com/personapath/personapath/internal/pkg/response"
	"github.com/personapath/personapath/internal/service"
)

type DocumentHandler struct {
	ingest *service.IngestService
}

func NewDocumentHandler(ingest *service.IngestService) *DocumentHandler {
	return &DocumentHandler{ingest: ingest}
}

type ingestRequest struct {
	Text       string            `json:"text"`
	SourceType string            `json:"source_type"`
	Format     string            `json:"format"`
	Metadata   map[string]string `json:"metadata"`
}

func (h *DocumentHandler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	sourceType := model.SourceType(req.SourceType)
	switch sourceType {
	case model.SourceTypeRole, model.SourceTypeResume, model.SourceTypeProfile:
	default:
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "unknown source_type")
		return
	}
	doc, err := h.ingest.Ingest(c.Request.Context(), service.IngestInput{
		Text:       req.Text,
		SourceType: sourceType,
		Format:     req.Format,
		Metadata:   req.Metadata,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) Remove(c *gin.Context) {
	documentID := c.Param("id")
	if documentID == "" {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "document id required")
		return
	}
	if err := h.ingest.Remove(c.Request.Context(), documentID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": documentID})
}
