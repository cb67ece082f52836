package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/developer4fun/Knowledge-Explorer/service"
	"github.com/developer4fun/Knowledge-Explorer/types"
)

type DocumentHandler struct {
	session   *service.SessionService
	processor *service.ProcessorService
}

func NewDocumentHandler(session *service.SessionService, processor *service.ProcessorService) *DocumentHandler {
	return &DocumentHandler{
		session:   session,
		processor: processor,
	}
}

// HandleIngest receives the parsed document payload from the upload
// collaborator and starts a new reading session around it. Section
// indices are assigned from payload order; a missing document id gets a
// generated one. The response does not wait for local persistence.
func (h *DocumentHandler) HandleIngest(c *gin.Context) {
	var req types.IngestDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}
	if len(req.Sections) == 0 {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Document has no sections",
		})
		return
	}

	doc := types.Document{
		ID:       req.DocumentID,
		Title:    req.Title,
		Sections: make([]types.Section, 0, len(req.Sections)),
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	for i, section := range req.Sections {
		page := section.PageNumber
		if page < 1 {
			page = 1
		}
		doc.Sections = append(doc.Sections, types.Section{
			Index:      i,
			Title:      section.Title,
			PageNumber: page,
			Content:    section.Content,
		})
	}
	if err := doc.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	h.session.IngestDocument(doc)

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data: types.IngestResponse{
			DocumentID: doc.ID,
			Sections:   len(doc.Sections),
		},
	})
}

// HandleGetDocument serves a stored document by id.
func (h *DocumentHandler) HandleGetDocument(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.processor.GetDocument(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			c.JSON(http.StatusNotFound, types.DataResponse{
				Status:  "error",
				Message: "Document not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Failed to load document",
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   doc,
	})
}

// HandleDeleteDocument removes a document from the local store. Deleting
// a missing document succeeds.
func (h *DocumentHandler) HandleDeleteDocument(c *gin.Context) {
	id := c.Param("id")
	if err := h.processor.DeleteDocument(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Failed to delete document",
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
	})
}
