package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guardiancapital/ledgerhub/common"
	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/guardiancapital/ledgerhub/lib/fees"
	"github.com/guardiancapital/ledgerhub/lib/security"
	"github.com/uptrace/bun"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

// CreateUser onboards a customer: the user row plus one account of every kind,
// each with a fresh 12-digit account number, in a single database transaction.
// The initial credential is a 4-digit PIN; we only store its hash and return
// the plain text once in the HTTP response.
func (svc *LedgerService) CreateUser(ctx context.Context, login, fullName, email, tier string) (user *models.User, pin string, err error) {
	user = &models.User{
		FullName: fullName,
		Email:    email,
		Tier:     tier,
	}
	if user.Tier == "" {
		user.Tier = common.UserTierStandard
	}

	user.Login = login
	if login == "" {
		randLoginBytes, err := randBytesFromStr(20, alphaNumBytes)
		if err != nil {
			return nil, "", err
		}
		user.Login = string(randLoginBytes)
	}

	pinBytes, err := randBytesFromStr(4, numericBytes)
	if err != nil {
		return nil, "", err
	}
	pin = string(pinBytes)
	user.Password = security.HashPassword(pin)

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
			return err
		}
		for _, kind := range common.AccountKinds {
			number, err := svc.generateAccountNumber(ctx, tx)
			if err != nil {
				return err
			}
			account := models.Account{UserID: user.ID, Kind: kind, AccountNumber: number}
			if _, err := tx.NewInsert().Model(&account).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	return user, pin, err
}

func (svc *LedgerService) FindUser(ctx context.Context, userId int64) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("id = ?", userId).Limit(1).Scan(ctx)
	if err != nil {
		return &user, err
	}
	return &user, nil
}

func (svc *LedgerService) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("login = ?", login).Limit(1).Scan(ctx)
	if err != nil {
		return &user, err
	}
	return &user, nil
}

// VerifyPin checks the caller's PIN against the stored credential hash and
// rejects banned users. Every money-moving operation goes through here first.
func (svc *LedgerService) VerifyPin(ctx context.Context, userId int64, pin string) (*models.User, error) {
	user, err := svc.FindUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, ErrUserBanned
	}
	if !security.VerifySecret(user.Password, pin) {
		return nil, ErrBadPin
	}
	return user, nil
}

// checkOwnerNotBanned rejects mutations against accounts whose owner is
// banned. Credits included: a frozen customer must not accumulate funds either.
func (svc *LedgerService) checkOwnerNotBanned(ctx context.Context, accountId int64) error {
	var banned bool
	err := svc.DB.NewSelect().Model((*models.User)(nil)).
		Column("is_banned").
		Where("id = (SELECT user_id FROM accounts WHERE id = ?)", accountId).
		Scan(ctx, &banned)
	if err != nil {
		return ErrAccountNotFound
	}
	if banned {
		return ErrUserBanned
	}
	return nil
}

// ResetCredentials replaces the user's credential hash and charges the reset
// fee in the same database transaction. If no account covers the fee the reset
// does not happen either.
func (svc *LedgerService) ResetCredentials(ctx context.Context, userId int64, newSecret string) error {
	user, err := svc.FindUser(ctx, userId)
	if err != nil {
		return err
	}
	if user.IsBanned {
		return ErrUserBanned
	}
	if len(newSecret) < 4 {
		return fmt.Errorf("credential must be at least 4 characters")
	}
	if svc.Config.MinPasswordEntropy > 0 {
		entropy := passwordvalidator.GetEntropy(newSecret)
		if entropy < float64(svc.Config.MinPasswordEntropy) {
			return fmt.Errorf("credential entropy is too low (%f), required is %d", entropy, svc.Config.MinPasswordEntropy)
		}
	}
	hashed := security.HashPassword(newSecret)

	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := svc.chargeServiceFeeTx(ctx, tx, userId, fees.CredentialReset, "Credential reset fee"); err != nil {
			return err
		}
		user.Password = hashed
		_, err := tx.NewUpdate().Model(user).Column("password", "updated_at").WherePK().Exec(ctx)
		return err
	})
}

// DeleteUser removes a customer and everything attached to them. Ledger
// history goes too, so this is reserved for back-office use.
func (svc *LedgerService) DeleteUser(ctx context.Context, userId int64) error {
	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.Transaction)(nil)).Where("user_id = ?", userId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.ReconciledPaymentOrder)(nil)).
			Where("account_id IN (SELECT id FROM accounts WHERE user_id = ?)", userId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.Account)(nil)).Where("user_id = ?", userId).Exec(ctx); err != nil {
			return err
		}
		result, err := tx.NewDelete().Model((*models.User)(nil)).Where("id = ?", userId).Exec(ctx)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrAccountNotFound
		}
		return nil
	})
}

func (svc *LedgerService) BanUser(ctx context.Context, userId int64, reason string) error {
	user, err := svc.FindUser(ctx, userId)
	if err != nil {
		return err
	}
	user.IsBanned = true
	user.BanReason = reason
	_, err = svc.DB.NewUpdate().Model(user).Column("is_banned", "ban_reason", "updated_at").WherePK().Exec(ctx)
	return err
}
