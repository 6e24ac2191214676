package dashboard

import (
	"context"
	"time"

	"github.com/bielborgesc/piggino/internal/domain/shared"
	"github.com/bielborgesc/piggino/internal/domain/transaction"
	appErrors "github.com/bielborgesc/piggino/internal/errors"

	"github.com/oklog/ulid/v2"
)

type MonthViewResponse struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Items   []Item  `json:"items"`
	Summary Summary `json:"summary"`
}

type Service struct {
	TransactionRepository transaction.Repository
	shared.BaseService
}

func NewService(transactionRepo transaction.Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		TransactionRepository: transactionRepo,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

func (s *Service) MonthView(ctx context.Context, userID ulid.ULID, year, month int) (*MonthViewResponse, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}

	all, err := s.TransactionRepository.GetAllForUser(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	target := Month{Year: year, Month: time.Month(month)}
	items := ItemsForMonth(all, target, transaction.DefaultWindowStart(now))

	return &MonthViewResponse{
		Year:    year,
		Month:   month,
		Items:   items,
		Summary: Summarize(items, all),
	}, nil
}
