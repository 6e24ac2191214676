package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/bielborgesc/piggino/internal/domain/transaction"

	"github.com/oklog/ulid/v2"
)

type Month struct {
	Year  int
	Month time.Month
}

func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Item é uma linha da visão mensal: uma transação simples, uma parcela ou
// uma ocorrência projetada de transação fixa.
type Item struct {
	TransactionId       ulid.ULID                   `json:"transactionId"`
	InstallmentId       *ulid.ULID                  `json:"installmentId,omitempty"`
	OccurrenceKey       *transaction.OccurrenceKey  `json:"occurrenceKey,omitempty"`
	Description         string                      `json:"description"`
	Amount              float64                     `json:"amount"`
	Type                transaction.Types           `json:"type"`
	CategoryId          ulid.ULID                   `json:"categoryId"`
	FinancialSourceId   ulid.ULID                   `json:"financialSourceId"`
	CategoryName        string                      `json:"categoryName,omitempty"`
	FinancialSourceName string                      `json:"financialSourceName,omitempty"`
	Date                time.Time                   `json:"date"`
	IsPaid              bool                        `json:"isPaid"`
	IsProjection        bool                        `json:"isProjection"`
}

type Summary struct {
	MonthIncome   float64 `json:"monthIncome"`
	MonthExpenses float64 `json:"monthExpenses"`
	TotalBalance  float64 `json:"totalBalance"`
}

// ItemsForMonth monta a lista do mês a partir de todas as transações do
// usuário: simples entram pelo mês da compra, parcelas pelo mês efetivo
// (mês da compra + número - 1) e fixas pela projeção dentro da janela
// padrão. Ordenada por data decrescente, empates mantêm a ordem de entrada.
func ItemsForMonth(all []*transaction.Transaction, target Month, windowStart time.Time) []Item {
	items := make([]Item, 0)

	fixed := make([]*transaction.Transaction, 0)

	for _, t := range all {
		switch {
		case t.IsInstallment:
			count := 0
			if t.InstallmentCount != nil {
				count = *t.InstallmentCount
			}
			for _, inst := range t.Installments {
				year, month := transaction.EffectiveMonth(t.PurchaseDate, inst.InstallmentNumber)
				if year != target.Year || month != target.Month {
					continue
				}
				instID := inst.Id
				items = append(items, Item{
					TransactionId:       t.Id,
					InstallmentId:       &instID,
					Description:         fmt.Sprintf("%s (%d/%d)", t.Description, inst.InstallmentNumber, count),
					Amount:              inst.Amount,
					Type:                t.Type,
					CategoryId:          t.CategoryId,
					FinancialSourceId:   t.FinancialSourceId,
					CategoryName:        t.CategoryName,
					FinancialSourceName: t.FinancialSourceName,
					Date:                t.PurchaseDate,
					IsPaid:              inst.IsPaid,
				})
			}
		case t.IsFixed:
			fixed = append(fixed, t)
		default:
			if !target.Contains(t.PurchaseDate) {
				continue
			}
			items = append(items, Item{
				TransactionId:       t.Id,
				Description:         t.Description,
				Amount:              t.TotalAmount,
				Type:                t.Type,
				CategoryId:          t.CategoryId,
				FinancialSourceId:   t.FinancialSourceId,
				CategoryName:        t.CategoryName,
				FinancialSourceName: t.FinancialSourceName,
				Date:                t.PurchaseDate,
				IsPaid:              t.IsPaid,
			})
		}
	}

	for _, occ := range transaction.ProjectFixed(fixed, windowStart, transaction.DefaultWindowMonths) {
		if occ.Key.Year != target.Year || occ.Key.Month != target.Month {
			continue
		}
		key := occ.Key
		items = append(items, Item{
			TransactionId:       key.TransactionId,
			OccurrenceKey:       &key,
			Description:         occ.Description,
			Amount:              occ.Amount,
			Type:                occ.Type,
			CategoryId:          occ.CategoryId,
			FinancialSourceId:   occ.FinancialSourceId,
			CategoryName:        occ.CategoryName,
			FinancialSourceName: occ.FinancialSourceName,
			Date:                occ.Date,
			IsPaid:              false,
			IsProjection:        true,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})

	return items
}

// Summarize soma receitas e despesas sobre os itens exibidos no mês e o
// saldo sobre TODAS as transações, sem recorte de mês. A mistura de escopos
// é proposital: o saldo é histórico, o detalhamento é mensal.
func Summarize(items []Item, all []*transaction.Transaction) Summary {
	var summary Summary

	for _, item := range items {
		switch item.Type {
		case transaction.TypeIncome:
			summary.MonthIncome += item.Amount
		case transaction.TypeExpense:
			summary.MonthExpenses += item.Amount
		}
	}

	for _, t := range all {
		switch t.Type {
		case transaction.TypeIncome:
			summary.TotalBalance += t.TotalAmount
		case transaction.TypeExpense:
			summary.TotalBalance -= t.TotalAmount
		}
	}

	return summary
}
