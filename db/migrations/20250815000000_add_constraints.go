package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- the ledger engine validates sufficiency under row locks,
			-- the database backstops it: no account may ever go negative
				ALTER TABLE accounts
				ADD CONSTRAINT check_balance_not_negative
				CHECK (balance >= 0);

			-- transaction amounts are stored positive, the type decides the sign
				ALTER TABLE transactions
				ADD CONSTRAINT check_amount_positive
				CHECK (amount > 0);

				CREATE INDEX transactions_account_id_idx ON transactions (account_id);
				CREATE INDEX transactions_user_id_created_at_idx ON transactions (user_id, created_at DESC);
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
