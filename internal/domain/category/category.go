package category

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeIncome, TypeExpense:
		return true
	}
	return false
}

type Category struct {
	Id        ulid.ULID `json:"id" gorm:"type:varchar(26);primaryKey"`
	UserId    ulid.ULID `json:"userId" gorm:"type:varchar(26);not null;index:idx_categories_user_name,unique"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;index:idx_categories_user_name,unique"`
	Type      Type      `json:"type" gorm:"type:varchar(10);not null;default:'EXPENSE'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}
