package transaction

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Janela padrão de projeção: 2 meses para trás, 11 para frente.
const (
	DefaultWindowMonths = 14
	DefaultWindowBehind = 2
)

// OccurrenceKey identifica uma ocorrência projetada. Ocorrências não são
// persistidas, então a identidade é sintética: transação + mês.
type OccurrenceKey struct {
	TransactionId ulid.ULID  `json:"transactionId"`
	Year          int        `json:"year"`
	Month         time.Month `json:"month"`
}

// Occurrence é uma instância virtual de uma transação fixa em um mês da
// janela. Nunca tem estado de pagamento próprio.
type Occurrence struct {
	Key                 OccurrenceKey `json:"key"`
	Description         string        `json:"description"`
	Amount              float64       `json:"amount"`
	Type                Types         `json:"type"`
	CategoryId          ulid.ULID     `json:"categoryId"`
	FinancialSourceId   ulid.ULID     `json:"financialSourceId"`
	CategoryName        string        `json:"categoryName,omitempty"`
	FinancialSourceName string        `json:"financialSourceName,omitempty"`
	Date                time.Time     `json:"date"`
	IsPaid              bool          `json:"isPaid"`
}

// DefaultWindowStart devolve o primeiro dia do mês DefaultWindowBehind meses
// antes da referência, em UTC.
func DefaultWindowStart(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month()-DefaultWindowBehind, 1, 0, 0, 0, 0, time.UTC)
}

// ProjectFixed expande transações fixas em ocorrências mensais dentro da
// janela [windowStart, windowStart+months). O dia é o DayOfMonth da
// transação, limitado ao último dia de meses mais curtos. Ocorrências
// anteriores à data da compra não são emitidas; não há data de término.
func ProjectFixed(fixed []*Transaction, windowStart time.Time, months int) []Occurrence {
	occurrences := make([]Occurrence, 0)

	for _, t := range fixed {
		if !t.IsFixed || t.DayOfMonth == nil {
			continue
		}

		for i := 0; i < months; i++ {
			year, month := normalizeMonth(windowStart.Year(), windowStart.Month()+time.Month(i))

			day := *t.DayOfMonth
			if last := daysInMonth(year, month); day > last {
				day = last
			}

			date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			if date.Before(startOfDayUTC(t.PurchaseDate)) {
				continue
			}

			occurrences = append(occurrences, Occurrence{
				Key: OccurrenceKey{
					TransactionId: t.Id,
					Year:          year,
					Month:         month,
				},
				Description:         t.Description,
				Amount:              t.TotalAmount,
				Type:                t.Type,
				CategoryId:          t.CategoryId,
				FinancialSourceId:   t.FinancialSourceId,
				CategoryName:        t.CategoryName,
				FinancialSourceName: t.FinancialSourceName,
				Date:                date,
				IsPaid:              false,
			})
		}
	}

	return occurrences
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func normalizeMonth(year int, month time.Month) (int, time.Month) {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return d.Year(), d.Month()
}

func startOfDayUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
