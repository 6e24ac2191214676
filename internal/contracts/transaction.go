package contracts

import "time"

type TransactionCreateRequest struct {
	Description       string  `json:"description" binding:"required,min=1,max=255"`
	TotalAmount       float64 `json:"totalAmount" binding:"required,gt=0"`
	Type              string  `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	CategoryId        string  `json:"categoryId" binding:"required,len=26"`
	FinancialSourceId string  `json:"financialSourceId" binding:"required,len=26"`
	PurchaseDate      string  `json:"purchaseDate" binding:"required,datetime=2006-01-02"`
	IsInstallment     bool    `json:"isInstallment"`
	InstallmentCount  *int    `json:"installmentCount" binding:"omitempty,gt=1"`
	IsFixed           bool    `json:"isFixed"`
	DayOfMonth        *int    `json:"dayOfMonth" binding:"omitempty,gte=1,lte=31"`
}

type InstallmentResponse struct {
	Id                string  `json:"id"`
	InstallmentNumber int     `json:"installmentNumber"`
	Amount            float64 `json:"amount"`
	IsPaid            bool    `json:"isPaid"`
}

type TransactionResponse struct {
	Id                  string                `json:"id"`
	Description         string                `json:"description"`
	TotalAmount         float64               `json:"totalAmount"`
	Type                string                `json:"type"`
	CategoryId          string                `json:"categoryId"`
	CategoryName        string                `json:"categoryName,omitempty"`
	FinancialSourceId   string                `json:"financialSourceId"`
	FinancialSourceName string                `json:"financialSourceName,omitempty"`
	PurchaseDate        time.Time             `json:"purchaseDate"`
	IsInstallment       bool                  `json:"isInstallment"`
	InstallmentCount    *int                  `json:"installmentCount"`
	IsFixed             bool                  `json:"isFixed"`
	DayOfMonth          *int                  `json:"dayOfMonth"`
	IsPaid              bool                  `json:"isPaid"`
	Installments        []InstallmentResponse `json:"installments,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
	UpdatedAt           time.Time             `json:"updatedAt"`
}
