package transaction

import (
	"time"

	appErrors "github.com/bielborgesc/piggino/internal/errors"
	"github.com/bielborgesc/piggino/internal/pkg"

	"github.com/shopspring/decimal"
)

// SplitAmount divide o valor total em count parcelas iguais, cada uma
// arredondada para 2 casas (half away from zero). A soma das parcelas pode
// diferir do total em alguns centavos; a diferença não é redistribuída.
func SplitAmount(total float64, count int) ([]float64, error) {
	if count <= 0 {
		return nil, appErrors.NewValidationError("installment_count", "deve ser maior que zero")
	}

	per := decimal.NewFromFloat(total).
		Div(decimal.NewFromInt(int64(count))).
		Round(2)

	perFloat, _ := per.Float64()

	amounts := make([]float64, count)
	for i := range amounts {
		amounts[i] = perFloat
	}
	return amounts, nil
}

// RegenerateInstallments descarta o conjunto atual de parcelas e cria um novo
// a partir de TotalAmount e InstallmentCount, todas não pagas. Qualquer
// progresso de pagamento é perdido.
func RegenerateInstallments(t *Transaction) error {
	t.Installments = nil

	if !t.IsInstallment || t.InstallmentCount == nil || *t.InstallmentCount <= 0 {
		return nil
	}

	amounts, err := SplitAmount(t.TotalAmount, *t.InstallmentCount)
	if err != nil {
		return err
	}

	installments := make([]*Installment, 0, len(amounts))
	for i, amount := range amounts {
		installments = append(installments, &Installment{
			Id:                pkg.GenerateULIDObject(),
			TransactionId:     t.Id,
			InstallmentNumber: i + 1,
			Amount:            amount,
			IsPaid:            false,
		})
	}

	t.Installments = installments
	return nil
}

// EffectiveMonth é o mês em que a parcela de número n aparece: a parcela 1
// cai no mês da compra, as seguintes nos meses subsequentes.
func EffectiveMonth(purchaseDate time.Time, installmentNumber int) (int, time.Month) {
	// Aritmética sobre o dia 1 para não transbordar em meses curtos
	// (31 de janeiro + 1 mês não pode virar março).
	d := time.Date(purchaseDate.Year(), purchaseDate.Month()+time.Month(installmentNumber-1), 1, 0, 0, 0, 0, time.UTC)
	return d.Year(), d.Month()
}
