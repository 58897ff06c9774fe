package governance

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/daojo/internal/calculator"
	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

// OpenAccount opens an empty wallet owned by owner.
func (e *Engine) OpenAccount(ctx context.Context, owner string) (*models.Account, error) {
	account := &models.Account{
		Owner:     owner,
		Kind:      models.AccountKindWallet,
		CreatedAt: e.timestamp(),
	}
	err := e.atomic(ctx, "open_account", func(tx storage.Tx) error {
		return tx.CreateAccount(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("Account opened", "account_id", account.ID, "user_id", owner)
	return account, nil
}

// Deposit credits amount from outside the ledger into one of caller's wallets.
func (e *Engine) Deposit(ctx context.Context, caller, accountID string, amount uint64) (*models.Account, error) {
	var account *models.Account
	err := e.atomic(ctx, "deposit", func(tx storage.Tx) error {
		var err error
		account, err = tx.GetAccount(ctx, accountID)
		if err != nil {
			return notFound(err, ErrAccountNotFound, "account")
		}
		if account.Owner != caller || account.Kind != models.AccountKindWallet {
			return ErrWrongTokenOwner
		}
		transfer := &models.Transfer{
			ToAccountID: account.ID,
			Amount:      amount,
			Kind:        models.TransferKindDeposit,
			CreatedBy:   caller,
			CreatedAt:   e.timestamp(),
		}
		if err := tx.Transfer(ctx, transfer); err != nil {
			return fmt.Errorf("deposit: %w", err)
		}
		account, err = tx.GetAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Withdraw debits amount from one of caller's wallets to outside the ledger.
// Treasuries only pay out through DisburseFunds.
func (e *Engine) Withdraw(ctx context.Context, caller, accountID string, amount uint64) (*models.Account, *models.Transfer, error) {
	var (
		account  *models.Account
		transfer *models.Transfer
	)
	err := e.atomic(ctx, "withdraw", func(tx storage.Tx) error {
		var err error
		account, err = tx.GetAccount(ctx, accountID)
		if err != nil {
			return notFound(err, ErrAccountNotFound, "account")
		}
		if account.Owner != caller || account.Kind != models.AccountKindWallet {
			return ErrWrongTokenOwner
		}
		transfer = &models.Transfer{
			FromAccountID: account.ID,
			Amount:        amount,
			Kind:          models.TransferKindWithdrawal,
			CreatedBy:     caller,
			CreatedAt:     e.timestamp(),
		}
		if err := tx.Transfer(ctx, transfer); err != nil {
			if errors.Is(err, storage.ErrInsufficientBalance) {
				return ErrInsufficientBalance
			}
			return fmt.Errorf("withdraw: %w", err)
		}
		account, err = tx.GetAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	e.logger.Info("Withdrawal recorded", "account_id", account.ID, "user_id", caller, "amount", amount)
	return account, transfer, nil
}

// GetAccount returns one of caller's accounts.
func (e *Engine) GetAccount(ctx context.Context, caller, accountID string) (*models.Account, error) {
	var account *models.Account
	err := e.store.Atomic(ctx, func(tx storage.Tx) error {
		var err error
		account, err = tx.GetAccount(ctx, accountID)
		if err != nil {
			return notFound(err, ErrAccountNotFound, "account")
		}
		if account.Owner != caller {
			return ErrWrongTokenOwner
		}
		return nil
	})
	return account, err
}

// ListAccounts returns every account owned by caller.
func (e *Engine) ListAccounts(ctx context.Context, caller string) ([]*models.Account, error) {
	var accounts []*models.Account
	err := e.store.Atomic(ctx, func(tx storage.Tx) error {
		var err error
		accounts, err = tx.ListAccountsByOwner(ctx, caller)
		return err
	})
	return accounts, err
}

// CircleBalances reports each member's contributed and received totals
// alongside the circle's treasury balance.
func (e *Engine) CircleBalances(ctx context.Context, caller, circleID string) ([]calculator.MemberPosition, *CircleSnapshot, error) {
	var (
		positions []calculator.MemberPosition
		snap      *CircleSnapshot
	)
	err := e.store.Atomic(ctx, func(tx storage.Tx) error {
		circle, err := loadCircle(ctx, tx, circleID)
		if err != nil {
			return err
		}
		if !circle.IsMember(caller) {
			return ErrNotAMember
		}
		treasury, err := loadTreasury(ctx, tx, circle)
		if err != nil {
			return err
		}

		transfers, err := tx.ListTransfersByCircle(ctx, circle.ID)
		if err != nil {
			return fmt.Errorf("list transfers: %w", err)
		}

		var (
			contributions []calculator.ContributionForPosition
			disbursements []calculator.DisbursementForPosition
		)
		for _, t := range transfers {
			switch t.Kind {
			case models.TransferKindContribution:
				contributions = append(contributions, calculator.ContributionForPosition{
					Member: t.CreatedBy,
					Amount: t.Amount,
				})
			case models.TransferKindDisbursement:
				req, err := tx.GetRequest(ctx, t.RequestID)
				if err != nil {
					if errors.Is(err, storage.ErrNotFound) {
						return fmt.Errorf("disbursement %s references missing request %s", t.ID, t.RequestID)
					}
					return err
				}
				disbursements = append(disbursements, calculator.DisbursementForPosition{
					Requester: req.Requester,
					Amount:    t.Amount,
				})
			}
		}

		positions, err = calculator.CalculateMemberPositions(circle.Members.Members(), contributions, disbursements)
		if err != nil {
			return err
		}
		snap = &CircleSnapshot{
			Circle:          circle,
			TreasuryAccount: treasury.ID,
			TreasuryBalance: treasury.Balance,
		}
		return nil
	})
	return positions, snap, err
}
