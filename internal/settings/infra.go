package settings

import (
	"context"
	"database/sql"
)

// settingsKey is the fixed identifier of the single settings row.
const settingsKey = "meta_prompt"

type pgRepo struct {
	db         *sql.DB
	defaultVal string
}

func NewPgRepo(db *sql.DB, defaultMetaPrompt string) Repo {
	return &pgRepo{db: db, defaultVal: defaultMetaPrompt}
}

func (r *pgRepo) Get(ctx context.Context) (Settings, error) {
	var s Settings
	err := r.db.QueryRowContext(ctx, `
		SELECT meta_prompt
		FROM app_settings
		WHERE key = $1
	`, settingsKey).Scan(&s.MetaPrompt)

	if err == sql.ErrNoRows {
		// first read: initialize the row with the default value
		s.MetaPrompt = r.defaultVal
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO app_settings (key, meta_prompt)
			VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING
		`, settingsKey, r.defaultVal)
		return s, err
	}
	return s, err
}

func (r *pgRepo) Set(ctx context.Context, metaPrompt string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_settings (key, meta_prompt)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET meta_prompt = EXCLUDED.meta_prompt
	`, settingsKey, metaPrompt)
	return err
}
