package routes

import (
	"net/http"

	"github.com/bielborgesc/piggino/internal/contracts"
	"github.com/bielborgesc/piggino/internal/domain/source"
	appErrors "github.com/bielborgesc/piggino/internal/errors"
	"github.com/bielborgesc/piggino/internal/pkg"
	"github.com/bielborgesc/piggino/internal/pkg/query"

	"github.com/gin-gonic/gin"
)

func toFinancialSourceResponse(src *source.FinancialSource) contracts.FinancialSourceResponse {
	return contracts.FinancialSourceResponse{
		Id:         src.Id.String(),
		Name:       src.Name,
		Type:       string(src.Type),
		ClosingDay: src.ClosingDay,
		DueDay:     src.DueDay,
		CreatedAt:  src.CreatedAt,
		UpdatedAt:  src.UpdatedAt,
	}
}

func (h *Handler) CreateFinancialSource(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req contracts.FinancialSourceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	src := &source.FinancialSource{
		UserId:     userID,
		Name:       req.Name,
		Type:       source.Type(req.Type),
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
	}

	if err := h.SourceService.Create(c.Request.Context(), src); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toFinancialSourceResponse(src))
}

func (h *Handler) UpdateFinancialSource(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	sourceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var req contracts.FinancialSourceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	src := &source.FinancialSource{
		Id:         sourceID,
		UserId:     userID,
		Name:       req.Name,
		Type:       source.Type(req.Type),
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
	}

	if err := h.SourceService.Update(c.Request.Context(), src); err != nil {
		h.respondError(c, err)
		return
	}

	updated, err := h.SourceService.GetByID(c.Request.Context(), sourceID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFinancialSourceResponse(updated))
}

func (h *Handler) DeleteFinancialSource(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	sourceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	if err := h.SourceService.Delete(c.Request.Context(), sourceID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetFinancialSource(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	sourceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	src, err := h.SourceService.GetByID(c.Request.Context(), sourceID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFinancialSourceResponse(src))
}

func (h *Handler) GetFinancialSources(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.SourceService.GetAll(c.Request.Context(), userID, query.ParsePageFromGin(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	data := make([]contracts.FinancialSourceResponse, 0, len(result.Data))
	for _, src := range result.Data {
		data = append(data, toFinancialSourceResponse(src))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       data,
		"page":       result.Page,
		"limit":      result.Size,
		"total":      result.Total,
		"totalPages": result.TotalPages,
	})
}
