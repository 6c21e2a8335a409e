package transaction

import (
	"context"

	"catatuang/internal/logger"
	"catatuang/internal/models"
	"catatuang/internal/repositories"
	"catatuang/internal/repositories/cache"
	"catatuang/internal/utils/pagination"
	"catatuang/internal/validation"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func (s *service) List(ctx context.Context, userID uint, filter Filter) (*Page, error) {
	v := validation.New()
	v.AfterOrEqual("end_date", filter.EndDate, "start_date", filter.StartDate)
	if err := v.Err(); err != nil {
		return nil, err
	}

	// An unknown type is not a filter.
	if filter.Type != nil && !filter.Type.Valid() {
		filter.Type = nil
	}

	p := pagination.New(filter.Page, PageSize)
	rows, total, err := s.ledger.Transactions().List(ctx, repositories.TransactionFilter{
		UserID:    userID,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Type:      filter.Type,
		WalletID:  filter.WalletID,
		Limit:     p.Limit,
		Offset:    p.Offset,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "list transactions failed",
			logger.FieldOperation, logger.OpList,
			logger.FieldUserID, userID,
			logger.FieldError, err)
		return nil, domainError(err, msgListFailed)
	}

	p.SetTotal(total)
	page := pagination.NewPage(rows, p)
	return &page, nil
}

func (s *service) Summary(ctx context.Context, userID uint, period Period) (*Summary, error) {
	start, end := s.resolve(period)

	v := validation.New()
	v.AfterOrEqual("end_date", &end, "start_date", &start)
	if err := v.Err(); err != nil {
		return nil, err
	}

	version, err := cache.SummaryVersion(ctx, s.cache, userID)
	if err != nil {
		s.log.WarnContext(ctx, "read summary version failed",
			logger.FieldUserID, userID,
			logger.FieldError, err)
		version = ""
	}

	key := cache.SummaryKey(userID, version, start.String(), end.String())
	if version != "" {
		var cached Summary
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.WarnContext(ctx, "read cached summary failed",
				logger.FieldUserID, userID,
				logger.FieldError, err)
		} else if found {
			return &cached, nil
		}
	}

	var income, expense, wallets decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		income, err = s.ledger.Transactions().SumByType(gctx, userID, models.TransactionTypeIncome, start, end)
		return err
	})
	g.Go(func() (err error) {
		expense, err = s.ledger.Transactions().SumByType(gctx, userID, models.TransactionTypeExpense, start, end)
		return err
	})
	g.Go(func() (err error) {
		wallets, err = s.ledger.Wallets().TotalBalance(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "summarize transactions failed",
			logger.FieldOperation, logger.OpSummary,
			logger.FieldUserID, userID,
			logger.FieldError, err)
		return nil, domainError(err, msgSummaryFailed)
	}

	summary := &Summary{
		Period: SummaryPeriod{StartDate: start, EndDate: end},
		Summary: Totals{
			TotalIncome:   income,
			TotalExpense:  expense,
			Balance:       income.Sub(expense),
			WalletBalance: wallets,
		},
	}

	// Without a readable version the entry could outlive an invalidation.
	if version != "" {
		if err := s.cache.Set(ctx, key, summary); err != nil {
			s.log.WarnContext(ctx, "cache summary failed",
				logger.FieldUserID, userID,
				logger.FieldError, err)
		}
	}
	return summary, nil
}

// resolve fills a missing bound from the current calendar month.
func (s *service) resolve(period Period) (models.Date, models.Date) {
	start, end := models.MonthRange(s.now())
	if period.StartDate != nil {
		start = *period.StartDate
	}
	if period.EndDate != nil {
		end = *period.EndDate
	}
	return start, end
}
