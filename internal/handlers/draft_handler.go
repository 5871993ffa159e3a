package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/postad/postad-api/internal/adform"
	"github.com/postad/postad-api/internal/models"
	"github.com/postad/postad-api/internal/services"
)

type DraftHandler struct {
	service services.AdFormServiceInterface
}

func NewDraftHandler(service services.AdFormServiceInterface) *DraftHandler {
	return &DraftHandler{service: service}
}

func (h *DraftHandler) CreateDraft(c *gin.Context) {
	resp, err := h.service.CreateDraft(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	resp, err := h.service.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DraftHandler) SetField(c *gin.Context) {
	var req models.SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.SetField(c.Request.Context(), c.Param("id"), c.Param("field"), *req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DraftHandler) UploadImage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed",
			[]ValidationError{{Field: string(adform.FieldImages), Message: "Slot must be a number"}}, err)
		return
	}

	open, ok := h.bindFile(c)
	if !ok {
		return
	}

	if err := h.service.UploadImage(c.Request.Context(), c.Param("id"), index, open); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, models.UploadResponse{Accepted: true, Slot: index})
}

func (h *DraftHandler) UploadProfileImage(c *gin.Context) {
	open, ok := h.bindFile(c)
	if !ok {
		return
	}

	if err := h.service.UploadProfileImage(c.Request.Context(), c.Param("id"), open); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, models.UploadResponse{Accepted: true, Slot: adform.ProfileSlot})
}

// bindFile buffers the multipart "file" part, responding on failure
func (h *DraftHandler) bindFile(c *gin.Context) (adform.OpenFunc, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed",
				[]ValidationError{{Field: "file", Message: "file is required"}}, err)
			return nil, false
		}
		respondServiceError(c, multipartError(err))
		return nil, false
	}

	open, err := bufferUpload(fh)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return open, true
}

func (h *DraftHandler) SelectLocationTab(c *gin.Context) {
	var req models.SelectTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.SelectLocationTab(c.Request.Context(), c.Param("id"), req.Tab)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DraftHandler) Submit(c *gin.Context) {
	resp, err := h.service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !resp.Success {
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
