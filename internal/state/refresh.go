package state

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// Fetcher is the read half of the backend collaborator.
type Fetcher interface {
	Categories(ctx context.Context) ([]core.Category, error)
	Accounts(ctx context.Context, userID int) ([]core.Account, error)
	Transactions(ctx context.Context, userID int) ([]core.Transaction, error)
	Budgets(ctx context.Context, userID int, period *core.Period) ([]core.Budget, error)
}

// Coordinator refetches all four collections as one unit after any
// mutation, so dependent views always see a consistent snapshot.
type Coordinator struct {
	fetcher Fetcher
	logger  *log.Logger
}

// NewCoordinator creates a refresh coordinator over the given fetcher.
func NewCoordinator(fetcher Fetcher, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Coordinator{
		fetcher: fetcher,
		logger:  logger.WithComponent(log.ComponentRefresh),
	}
}

// Refresh fetches categories, accounts, transactions, and budgets
// concurrently, joins all four, and swaps the session snapshot only when
// every fetch succeeded. On any failure the previous snapshot stays
// intact and the error is returned to the caller. The budgets fetch
// carries the filter's explicit period when one is set.
func (c *Coordinator) Refresh(ctx context.Context, s *Session) error {
	userID := s.User.ID
	period := s.Filter.Explicit()

	var next Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		categories, err := c.fetcher.Categories(gctx)
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		next.Categories = categories
		return nil
	})
	g.Go(func() error {
		accounts, err := c.fetcher.Accounts(gctx, userID)
		if err != nil {
			return fmt.Errorf("fetch accounts: %w", err)
		}
		next.Accounts = accounts
		return nil
	})
	g.Go(func() error {
		transactions, err := c.fetcher.Transactions(gctx, userID)
		if err != nil {
			return fmt.Errorf("fetch transactions: %w", err)
		}
		next.Transactions = transactions
		return nil
	})
	g.Go(func() error {
		budgets, err := c.fetcher.Budgets(gctx, userID, period)
		if err != nil {
			return fmt.Errorf("fetch budgets: %w", err)
		}
		next.Budgets = budgets
		return nil
	})

	if err := g.Wait(); err != nil {
		c.logger.ErrorContext(ctx, "Refresh failed, keeping previous snapshot",
			log.FieldUserID, userID,
			log.FieldError, err.Error())
		return fmt.Errorf("refresh: %w", err)
	}

	s.Replace(next)
	c.logger.InfoContext(ctx, "Snapshot refreshed",
		log.FieldUserID, userID,
		"categories", len(next.Categories),
		"accounts", len(next.Accounts),
		"transactions", len(next.Transactions),
		"budgets", len(next.Budgets))
	return nil
}
