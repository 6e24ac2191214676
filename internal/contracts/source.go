package contracts

import "time"

type FinancialSourceCreateRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Type       string `json:"type" binding:"required,oneof=CARD ACCOUNT CASH"`
	ClosingDay *int   `json:"closingDay" binding:"omitempty,gte=1,lte=31"`
	DueDay     *int   `json:"dueDay" binding:"omitempty,gte=1,lte=31"`
}

type FinancialSourceUpdateRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Type       string `json:"type" binding:"required,oneof=CARD ACCOUNT CASH"`
	ClosingDay *int   `json:"closingDay" binding:"omitempty,gte=1,lte=31"`
	DueDay     *int   `json:"dueDay" binding:"omitempty,gte=1,lte=31"`
}

type FinancialSourceResponse struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	ClosingDay *int      `json:"closingDay"`
	DueDay     *int      `json:"dueDay"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
