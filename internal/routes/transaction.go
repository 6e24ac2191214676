package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bielborgesc/piggino/internal/contracts"
	"github.com/bielborgesc/piggino/internal/domain/transaction"
	appErrors "github.com/bielborgesc/piggino/internal/errors"
	"github.com/bielborgesc/piggino/internal/pkg"
	"github.com/bielborgesc/piggino/internal/pkg/query"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

func toTransactionResponse(t *transaction.Transaction) contracts.TransactionResponse {
	installments := make([]contracts.InstallmentResponse, 0, len(t.Installments))
	for _, inst := range t.Installments {
		installments = append(installments, contracts.InstallmentResponse{
			Id:                inst.Id.String(),
			InstallmentNumber: inst.InstallmentNumber,
			Amount:            inst.Amount,
			IsPaid:            inst.IsPaid,
		})
	}

	return contracts.TransactionResponse{
		Id:                  t.Id.String(),
		Description:         t.Description,
		TotalAmount:         t.TotalAmount,
		Type:                string(t.Type),
		CategoryId:          t.CategoryId.String(),
		CategoryName:        t.CategoryName,
		FinancialSourceId:   t.FinancialSourceId.String(),
		FinancialSourceName: t.FinancialSourceName,
		PurchaseDate:        t.PurchaseDate,
		IsInstallment:       t.IsInstallment,
		InstallmentCount:    t.InstallmentCount,
		IsFixed:             t.IsFixed,
		DayOfMonth:          t.DayOfMonth,
		IsPaid:              t.IsPaid,
		Installments:        installments,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

func (h *Handler) transactionFromRequest(c *gin.Context, userID ulid.ULID) (*transaction.Transaction, bool) {
	var req contracts.TransactionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return nil, false
	}

	purchaseDate, err := time.ParseInLocation("2006-01-02", req.PurchaseDate, time.UTC)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("purchase_date", "deve estar no formato AAAA-MM-DD"))
		return nil, false
	}

	categoryID, err := pkg.ParseULID(req.CategoryId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
		return nil, false
	}

	sourceID, err := pkg.ParseULID(req.FinancialSourceId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("financial_source_id", "formato inválido"))
		return nil, false
	}

	return &transaction.Transaction{
		UserId:            userID,
		Description:       req.Description,
		TotalAmount:       req.TotalAmount,
		Type:              transaction.Types(req.Type),
		CategoryId:        categoryID,
		FinancialSourceId: sourceID,
		PurchaseDate:      purchaseDate,
		IsInstallment:     req.IsInstallment,
		InstallmentCount:  req.InstallmentCount,
		IsFixed:           req.IsFixed,
		DayOfMonth:        req.DayOfMonth,
	}, true
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	t, ok := h.transactionFromRequest(c, userID)
	if !ok {
		return
	}

	if err := h.TransactionService.Create(c.Request.Context(), t); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTransactionResponse(t))
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	t, ok := h.transactionFromRequest(c, userID)
	if !ok {
		return
	}
	t.Id = transactionID

	if err := h.TransactionService.Update(c.Request.Context(), t); err != nil {
		h.respondError(c, err)
		return
	}

	updated, err := h.TransactionService.GetByID(c.Request.Context(), transactionID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(updated))
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	if err := h.TransactionService.Delete(c.Request.Context(), transactionID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetTransaction(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	t, err := h.TransactionService.GetByID(c.Request.Context(), transactionID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(t))
}

func (h *Handler) GetTransactions(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.TransactionService.GetAll(c.Request.Context(), userID, query.ParsePageFromGin(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	data := make([]contracts.TransactionResponse, 0, len(result.Data))
	for _, t := range result.Data {
		data = append(data, toTransactionResponse(t))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       data,
		"page":       result.Page,
		"limit":      result.Size,
		"total":      result.Total,
		"totalPages": result.TotalPages,
	})
}

func (h *Handler) ToggleTransactionPaid(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	t, err := h.TransactionService.TogglePaid(c.Request.Context(), transactionID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(t))
}

func (h *Handler) ToggleInstallmentPaid(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	installmentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	inst, err := h.TransactionService.ToggleInstallmentPaid(c.Request.Context(), installmentID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InstallmentResponse{
		Id:                inst.Id.String(),
		InstallmentNumber: inst.InstallmentNumber,
		Amount:            inst.Amount,
		IsPaid:            inst.IsPaid,
	})
}

func (h *Handler) GetMonthView(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))

	view, err := h.DashboardService.MonthView(c.Request.Context(), userID, year, month)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
