package repository

import (
	"context"

	"github.com/m-orlov/pairlist/internal/domain/model"
)

// PresetRepository describes persistence operations for order presets.
type PresetRepository interface {
	Create(ctx context.Context, userID int64, name, category string, items []model.PresetItem, limit int) (*model.Preset, error)
	Update(ctx context.Context, userID, presetID int64, name, category string, items []model.PresetItem) (*model.Preset, error)
	Delete(ctx context.Context, userID, presetID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Preset, error)
}
