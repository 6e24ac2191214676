package routes

import (
	"net/http"

	"github.com/bielborgesc/piggino/internal/contracts"
	"github.com/bielborgesc/piggino/internal/domain/category"
	appErrors "github.com/bielborgesc/piggino/internal/errors"
	"github.com/bielborgesc/piggino/internal/pkg"
	"github.com/bielborgesc/piggino/internal/pkg/query"

	"github.com/gin-gonic/gin"
)

func toCategoryResponse(cat *category.Category) contracts.CategoryResponse {
	return contracts.CategoryResponse{
		Id:        cat.Id.String(),
		Name:      cat.Name,
		Type:      string(cat.Type),
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

func (h *Handler) CreateCategory(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req contracts.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	cat := &category.Category{
		UserId: userID,
		Name:   req.Name,
		Type:   category.Type(req.Type),
	}

	if err := h.CategoryService.Create(c.Request.Context(), cat); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var req contracts.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	cat := &category.Category{
		Id:     categoryID,
		UserId: userID,
		Name:   req.Name,
		Type:   category.Type(req.Type),
	}

	if err := h.CategoryService.Update(c.Request.Context(), cat); err != nil {
		h.respondError(c, err)
		return
	}

	updated, err := h.CategoryService.GetByID(c.Request.Context(), categoryID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCategoryResponse(updated))
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	if err := h.CategoryService.Delete(c.Request.Context(), categoryID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetCategory(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	cat, err := h.CategoryService.GetByID(c.Request.Context(), categoryID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCategoryResponse(cat))
}

func (h *Handler) GetCategories(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.CategoryService.GetAll(c.Request.Context(), userID, query.ParsePageFromGin(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	data := make([]contracts.CategoryResponse, 0, len(result.Data))
	for _, cat := range result.Data {
		data = append(data, toCategoryResponse(cat))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       data,
		"page":       result.Page,
		"limit":      result.Size,
		"total":      result.Total,
		"totalPages": result.TotalPages,
	})
}
