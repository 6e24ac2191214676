package transaction

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Types string

const (
	TypeIncome  Types = "INCOME"
	TypeExpense Types = "EXPENSE"
)

func (t Types) IsValid() bool {
	switch t {
	case TypeIncome, TypeExpense:
		return true
	}
	return false
}

type Transaction struct {
	Id                ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId            ulid.ULID  `gorm:"type:varchar(26);index:idx_transactions_user_id;index:idx_transactions_user_date,priority:1;not null" json:"userId"`
	Description       string     `gorm:"type:varchar(255);not null" json:"description"`
	TotalAmount       float64    `gorm:"type:decimal(15,2);not null" json:"totalAmount"`
	Type              Types      `gorm:"type:varchar(10);not null;index:idx_transactions_type" json:"type"`
	CategoryId        ulid.ULID  `gorm:"type:varchar(26);index:idx_transactions_category_id;not null" json:"categoryId"`
	FinancialSourceId ulid.ULID  `gorm:"type:varchar(26);index:idx_transactions_source_id;not null" json:"financialSourceId"`
	PurchaseDate      time.Time  `gorm:"type:date;not null;index:idx_transactions_user_date,priority:2" json:"purchaseDate"`
	IsInstallment     bool       `gorm:"not null;default:false" json:"isInstallment"`
	InstallmentCount  *int       `gorm:"type:smallint" json:"installmentCount"`
	IsFixed           bool       `gorm:"not null;default:false" json:"isFixed"`
	DayOfMonth        *int       `gorm:"type:smallint" json:"dayOfMonth"`
	IsPaid            bool       `gorm:"not null;default:false" json:"isPaid"`
	CreatedAt         time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`

	Installments []*Installment `gorm:"foreignKey:TransactionId;constraint:OnDelete:CASCADE" json:"installments,omitempty"`

	// Preenchidos por join no repositório, não são colunas da tabela.
	CategoryName        string `gorm:"-" json:"categoryName,omitempty"`
	FinancialSourceName string `gorm:"-" json:"financialSourceName,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type Installment struct {
	Id                ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	TransactionId     ulid.ULID `gorm:"type:varchar(26);index:idx_installments_transaction;not null" json:"transactionId"`
	InstallmentNumber int       `gorm:"type:smallint;not null" json:"installmentNumber"`
	Amount            float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	IsPaid            bool      `gorm:"not null;default:false" json:"isPaid"`
	CreatedAt         time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Installment) TableName() string {
	return "card_installments"
}
