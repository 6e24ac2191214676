package transaction_test

import (
	"testing"
	"time"

	"github.com/bielborgesc/piggino/internal/domain/transaction"
	"github.com/bielborgesc/piggino/internal/pkg"
)

func fixedTransaction(day int, purchase time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		Id:           pkg.GenerateULIDObject(),
		Description:  "Aluguel",
		TotalAmount:  1200,
		Type:         transaction.TypeExpense,
		PurchaseDate: purchase,
		IsFixed:      true,
		DayOfMonth:   &day,
	}
}

func TestProjectFixedClampsDayToShortMonths(t *testing.T) {
	t.Parallel()

	windowStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	tx := fixedTransaction(31, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	occurrences := transaction.ProjectFixed([]*transaction.Transaction{tx}, windowStart, 3)
	if len(occurrences) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(occurrences))
	}

	wantDates := []time.Time{
		time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
	for i, occ := range occurrences {
		if !occ.Date.Equal(wantDates[i]) {
			t.Fatalf("occurrence %d: expected %v, got %v", i, wantDates[i], occ.Date)
		}
		if occ.IsPaid {
			t.Fatalf("projected occurrence must not be paid")
		}
		if occ.Key.TransactionId != tx.Id {
			t.Fatalf("occurrence key not bound to transaction")
		}
	}
}

func TestProjectFixedLeapYear(t *testing.T) {
	t.Parallel()

	windowStart := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	tx := fixedTransaction(30, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC))

	occurrences := transaction.ProjectFixed([]*transaction.Transaction{tx}, windowStart, 1)
	if len(occurrences) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occurrences))
	}
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !occurrences[0].Date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, occurrences[0].Date)
	}
}

func TestProjectFixedSkipsOccurrencesBeforePurchase(t *testing.T) {
	t.Parallel()

	windowStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	// Compra no meio de março: jan, fev e o dia 10 de março ficam de fora.
	tx := fixedTransaction(10, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))

	occurrences := transaction.ProjectFixed([]*transaction.Transaction{tx}, windowStart, 5)
	if len(occurrences) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(occurrences))
	}
	if occurrences[0].Date.Month() != time.April || occurrences[1].Date.Month() != time.May {
		t.Fatalf("expected April and May, got %v and %v", occurrences[0].Date, occurrences[1].Date)
	}
}

func TestProjectFixedIgnoresNonFixed(t *testing.T) {
	t.Parallel()

	windowStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	simple := &transaction.Transaction{
		Id:           pkg.GenerateULIDObject(),
		PurchaseDate: time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
	}
	missingDay := &transaction.Transaction{
		Id:           pkg.GenerateULIDObject(),
		IsFixed:      true,
		PurchaseDate: time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
	}

	occurrences := transaction.ProjectFixed([]*transaction.Transaction{simple, missingDay}, windowStart, 3)
	if len(occurrences) != 0 {
		t.Fatalf("expected no occurrences, got %d", len(occurrences))
	}
}

func TestProjectFixedWindowCrossesYear(t *testing.T) {
	t.Parallel()

	windowStart := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	tx := fixedTransaction(1, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

	occurrences := transaction.ProjectFixed([]*transaction.Transaction{tx}, windowStart, 4)
	if len(occurrences) != 4 {
		t.Fatalf("expected 4 occurrences, got %d", len(occurrences))
	}
	last := occurrences[3]
	if last.Key.Year != 2026 || last.Key.Month != time.February {
		t.Fatalf("expected 2026/February, got %d/%s", last.Key.Year, last.Key.Month)
	}
}

func TestDefaultWindowStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  time.Time
		want time.Time
	}{
		{
			name: "middle of year",
			ref:  time.Date(2025, time.June, 17, 14, 30, 0, 0, time.UTC),
			want: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "rolls back across year boundary",
			ref:  time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := transaction.DefaultWindowStart(tt.ref)
			if !got.Equal(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
