package repository

import (
	"context"

	"github.com/peakform/AthleteHubBack/internal/models"
)

type SettingsRepository struct {
	db DBTX
}

func NewSettingsRepository(db DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (*models.AppSetting, error) {
	query := `SELECT key, value, updated_at FROM app_settings WHERE key = $1`
	var setting models.AppSetting
	err := r.db.QueryRow(ctx, query, key).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *SettingsRepository) Set(ctx context.Context, key, value string) (*models.AppSetting, error) {
	query := `
		INSERT INTO app_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		RETURNING key, value, updated_at
	`
	var setting models.AppSetting
	err := r.db.QueryRow(ctx, query, key, value).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}
