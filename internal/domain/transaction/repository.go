package transaction

import (
	"context"

	"github.com/bielborgesc/piggino/internal/pkg/query"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, transaction *Transaction) error
	Update(ctx context.Context, transaction *Transaction) error
	Delete(ctx context.Context, transactionID ulid.ULID) error
	GetByIDAndUser(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error)
	GetAll(ctx context.Context, userID ulid.ULID, page query.Page) (*query.Result[*Transaction], error)
	// GetAllForUser traz todas as transações do usuário com parcelas e nomes
	// denormalizados, sem paginação. Alimenta a visão mensal e o saldo total.
	GetAllForUser(ctx context.Context, userID ulid.ULID) ([]*Transaction, error)

	// UpdateWithInstallments grava a linha da transação e troca o conjunto de
	// parcelas pelo que estiver em Installments, tudo na mesma transação de
	// banco. Nunca deixa linha nova com parcelas velhas.
	UpdateWithInstallments(ctx context.Context, transaction *Transaction) error
	GetInstallmentByID(ctx context.Context, installmentID ulid.ULID) (*Installment, error)
	UpdateInstallment(ctx context.Context, installment *Installment) error
}
