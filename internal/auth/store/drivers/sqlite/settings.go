package sqlite

import (
	"context"
)

type settingsRepo struct {
	q querier
}

func (r *settingsRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.q.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", mapNotFound(err)
	}
	return value, nil
}

func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	return err
}

// ClearIfValue compares and clears in one statement. The rows-affected count
// tells the caller whether this call won the clear.
func (r *settingsRepo) ClearIfValue(ctx context.Context, key, expected string) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE settings SET value = '', updated_at = CURRENT_TIMESTAMP
		 WHERE key = ? AND value = ?`,
		key, expected)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
