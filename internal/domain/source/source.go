package source

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Type string

const (
	TypeCard    Type = "CARD"
	TypeAccount Type = "ACCOUNT"
	TypeCash    Type = "CASH"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeCard, TypeAccount, TypeCash:
		return true
	}
	return false
}

// FinancialSource é de onde o dinheiro sai ou entra: cartão, conta ou dinheiro.
// ClosingDay e DueDay só fazem sentido para cartões.
type FinancialSource struct {
	Id         ulid.ULID `json:"id" gorm:"type:varchar(26);primaryKey"`
	UserId     ulid.ULID `json:"userId" gorm:"type:varchar(26);not null;index:idx_financial_sources_user"`
	Name       string    `json:"name" gorm:"type:varchar(100);not null"`
	Type       Type      `json:"type" gorm:"type:varchar(10);not null"`
	ClosingDay *int      `json:"closingDay" gorm:"type:smallint"`
	DueDay     *int      `json:"dueDay" gorm:"type:smallint"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (FinancialSource) TableName() string {
	return "financial_sources"
}
