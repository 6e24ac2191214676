package infrastructure

import (
	"context"
	"time"

	"github.com/bielborgesc/piggino/internal/domain/transaction"
	"github.com/bielborgesc/piggino/internal/pkg"
	"github.com/bielborgesc/piggino/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	DB *gorm.DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

const transactionSelect = "t.*, c.name AS category_name, fs.name AS financial_source_name"

type transactionDB struct {
	Id                  string    `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId              string    `gorm:"type:varchar(26);index;not null;column:user_id"`
	Description         string    `gorm:"size:255;not null;column:description"`
	TotalAmount         float64   `gorm:"not null;column:total_amount"`
	Type                string    `gorm:"type:varchar(10);not null;column:type"`
	CategoryId          string    `gorm:"type:varchar(26);index;not null;column:category_id"`
	CategoryName        string    `gorm:"->;column:category_name"`
	FinancialSourceId   string    `gorm:"type:varchar(26);index;not null;column:financial_source_id"`
	FinancialSourceName string    `gorm:"->;column:financial_source_name"`
	PurchaseDate        time.Time `gorm:"not null;column:purchase_date"`
	IsInstallment       bool      `gorm:"not null;column:is_installment"`
	InstallmentCount    *int      `gorm:"column:installment_count"`
	IsFixed             bool      `gorm:"not null;column:is_fixed"`
	DayOfMonth          *int      `gorm:"column:day_of_month"`
	IsPaid              bool      `gorm:"not null;column:is_paid"`
	CreatedAt           time.Time `gorm:"not null;column:created_at"`
	UpdatedAt           time.Time `gorm:"not null;column:updated_at"`
}

type installmentDB struct {
	Id                string    `gorm:"type:varchar(26);primaryKey;column:id"`
	TransactionId     string    `gorm:"type:varchar(26);index;not null;column:transaction_id"`
	InstallmentNumber int       `gorm:"not null;column:installment_number"`
	Amount            float64   `gorm:"not null;column:amount"`
	IsPaid            bool      `gorm:"not null;column:is_paid"`
	CreatedAt         time.Time `gorm:"not null;column:created_at"`
	UpdatedAt         time.Time `gorm:"not null;column:updated_at"`
}

func toDomainTransaction(tdb *transactionDB) (*transaction.Transaction, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(tdb.UserId)
	if err != nil {
		return nil, err
	}
	cid, err := pkg.ParseULID(tdb.CategoryId)
	if err != nil {
		return nil, err
	}
	sid, err := pkg.ParseULID(tdb.FinancialSourceId)
	if err != nil {
		return nil, err
	}

	return &transaction.Transaction{
		Id:                  id,
		UserId:              uid,
		Description:         tdb.Description,
		TotalAmount:         tdb.TotalAmount,
		Type:                transaction.Types(tdb.Type),
		CategoryId:          cid,
		FinancialSourceId:   sid,
		PurchaseDate:        tdb.PurchaseDate,
		IsInstallment:       tdb.IsInstallment,
		InstallmentCount:    tdb.InstallmentCount,
		IsFixed:             tdb.IsFixed,
		DayOfMonth:          tdb.DayOfMonth,
		IsPaid:              tdb.IsPaid,
		CreatedAt:           tdb.CreatedAt,
		UpdatedAt:           tdb.UpdatedAt,
		CategoryName:        tdb.CategoryName,
		FinancialSourceName: tdb.FinancialSourceName,
	}, nil
}

func toDBTransaction(t *transaction.Transaction) *transactionDB {
	return &transactionDB{
		Id:                t.Id.String(),
		UserId:            t.UserId.String(),
		Description:       t.Description,
		TotalAmount:       t.TotalAmount,
		Type:              string(t.Type),
		CategoryId:        t.CategoryId.String(),
		FinancialSourceId: t.FinancialSourceId.String(),
		PurchaseDate:      t.PurchaseDate,
		IsInstallment:     t.IsInstallment,
		InstallmentCount:  t.InstallmentCount,
		IsFixed:           t.IsFixed,
		DayOfMonth:        t.DayOfMonth,
		IsPaid:            t.IsPaid,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func toDomainInstallment(idb *installmentDB) (*transaction.Installment, error) {
	id, err := pkg.ParseULID(idb.Id)
	if err != nil {
		return nil, err
	}
	tid, err := pkg.ParseULID(idb.TransactionId)
	if err != nil {
		return nil, err
	}

	return &transaction.Installment{
		Id:                id,
		TransactionId:     tid,
		InstallmentNumber: idb.InstallmentNumber,
		Amount:            idb.Amount,
		IsPaid:            idb.IsPaid,
		CreatedAt:         idb.CreatedAt,
		UpdatedAt:         idb.UpdatedAt,
	}, nil
}

func toDBInstallment(i *transaction.Installment) *installmentDB {
	return &installmentDB{
		Id:                i.Id.String(),
		TransactionId:     i.TransactionId.String(),
		InstallmentNumber: i.InstallmentNumber,
		Amount:            i.Amount,
		IsPaid:            i.IsPaid,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("transactions").Create(toDBTransaction(t)).Error; err != nil {
			return err
		}
		return createInstallments(tx, t.Installments)
	})
}

func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	tdb := toDBTransaction(t)
	// Select("*") força a escrita de campos zerados (flags desligadas,
	// ponteiros anulados), que Updates com struct ignoraria.
	return r.DB.WithContext(ctx).Table("transactions").
		Where("id = ?", tdb.Id).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(tdb).Error
}

func (r *TransactionRepository) Delete(ctx context.Context, transactionID ulid.ULID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("card_installments").Where("transaction_id = ?", transactionID.String()).Delete(&installmentDB{}).Error; err != nil {
			return err
		}
		return tx.Table("transactions").Where("id = ?", transactionID.String()).Delete(&transactionDB{}).Error
	})
}

func (r *TransactionRepository) GetByIDAndUser(ctx context.Context, transactionID, userID ulid.ULID) (*transaction.Transaction, error) {
	var tdb transactionDB
	err := r.DB.WithContext(ctx).Table("transactions t").
		Select(transactionSelect).
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Joins("LEFT JOIN financial_sources fs ON t.financial_source_id = fs.id").
		Where("t.id = ? AND t.user_id = ?", transactionID.String(), userID.String()).
		First(&tdb).Error
	if err != nil {
		return nil, err
	}

	t, err := toDomainTransaction(&tdb)
	if err != nil {
		return nil, err
	}

	if err := r.attachInstallments(ctx, []*transaction.Transaction{t}); err != nil {
		return nil, err
	}

	return t, nil
}

func (r *TransactionRepository) GetAll(ctx context.Context, userID ulid.ULID, page query.Page) (*query.Result[*transaction.Transaction], error) {
	q := query.New[transactionDB](r.DB, "transactions t").
		Context(ctx).
		Select(transactionSelect).
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Joins("LEFT JOIN financial_sources fs ON t.financial_source_id = fs.id").
		Where("t.user_id = ?", userID.String()).
		Order("t.purchase_date DESC, t.created_at DESC")

	result, err := query.Paginate(q, page, toDomainTransaction)
	if err != nil {
		return nil, err
	}

	if err := r.attachInstallments(ctx, result.Data); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *TransactionRepository) GetAllForUser(ctx context.Context, userID ulid.ULID) ([]*transaction.Transaction, error) {
	q := query.New[transactionDB](r.DB, "transactions t").
		Context(ctx).
		Select(transactionSelect).
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Joins("LEFT JOIN financial_sources fs ON t.financial_source_id = fs.id").
		Where("t.user_id = ?", userID.String()).
		Order("t.purchase_date DESC, t.created_at DESC")

	all, err := query.ExecuteAll(q, toDomainTransaction)
	if err != nil {
		return nil, err
	}

	if err := r.attachInstallments(ctx, all); err != nil {
		return nil, err
	}

	return all, nil
}

func (r *TransactionRepository) UpdateWithInstallments(ctx context.Context, t *transaction.Transaction) error {
	tdb := toDBTransaction(t)
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("transactions").
			Where("id = ?", tdb.Id).
			Select("*").Omit("id", "user_id", "created_at").
			Updates(tdb).Error; err != nil {
			return err
		}
		if err := tx.Table("card_installments").Where("transaction_id = ?", tdb.Id).Delete(&installmentDB{}).Error; err != nil {
			return err
		}
		return createInstallments(tx, t.Installments)
	})
}

func (r *TransactionRepository) GetInstallmentByID(ctx context.Context, installmentID ulid.ULID) (*transaction.Installment, error) {
	var idb installmentDB
	err := r.DB.WithContext(ctx).Table("card_installments").
		Where("id = ?", installmentID.String()).
		First(&idb).Error
	if err != nil {
		return nil, err
	}
	return toDomainInstallment(&idb)
}

func (r *TransactionRepository) UpdateInstallment(ctx context.Context, installment *transaction.Installment) error {
	idb := toDBInstallment(installment)
	return r.DB.WithContext(ctx).Table("card_installments").
		Where("id = ?", idb.Id).
		Select("*").Omit("id", "transaction_id", "created_at").
		Updates(idb).Error
}

func createInstallments(tx *gorm.DB, installments []*transaction.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	now := time.Now()
	rows := make([]*installmentDB, 0, len(installments))
	for _, inst := range installments {
		idb := toDBInstallment(inst)
		if idb.CreatedAt.IsZero() {
			idb.CreatedAt = now
		}
		if idb.UpdatedAt.IsZero() {
			idb.UpdatedAt = now
		}
		rows = append(rows, idb)
	}
	return tx.Table("card_installments").Create(rows).Error
}

// attachInstallments carrega as parcelas de todas as transações parceladas
// do lote em uma única consulta.
func (r *TransactionRepository) attachInstallments(ctx context.Context, transactions []*transaction.Transaction) error {
	ids := make([]string, 0)
	byID := make(map[string]*transaction.Transaction)
	for _, t := range transactions {
		if !t.IsInstallment {
			continue
		}
		id := t.Id.String()
		ids = append(ids, id)
		byID[id] = t
	}
	if len(ids) == 0 {
		return nil
	}

	var rows []installmentDB
	err := r.DB.WithContext(ctx).Table("card_installments").
		Where("transaction_id IN ?", ids).
		Order("installment_number ASC").
		Find(&rows).Error
	if err != nil {
		return err
	}

	for i := range rows {
		inst, err := toDomainInstallment(&rows[i])
		if err != nil {
			return err
		}
		if t, ok := byID[rows[i].TransactionId]; ok {
			t.Installments = append(t.Installments, inst)
		}
	}

	return nil
}
