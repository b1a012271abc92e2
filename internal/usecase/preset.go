package usecase

import (
	"context"
	"slices"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
	"github.com/m-orlov/pairlist/internal/domain/model"
	"github.com/m-orlov/pairlist/internal/domain/repository"
)

const (
	maxPresets        = 10
	maxPresetItems    = 5
	maxCategories     = 5
	maxCustomItems    = 20
	presetNameMaxLen  = 64
	presetItemNameMax = 64
)

// PresetUseCase manages a sender's saved order templates, categories and
// custom item vocabulary.
type PresetUseCase struct {
	users   repository.UserRepository
	presets repository.PresetRepository
}

// NewPresetUseCase constructs PresetUseCase.
func NewPresetUseCase(users repository.UserRepository, presets repository.PresetRepository) *PresetUseCase {
	return &PresetUseCase{users: users, presets: presets}
}

// List returns all presets owned by the user.
func (u *PresetUseCase) List(ctx context.Context, userID int64) ([]model.Preset, error) {
	return u.presets.ListByUser(ctx, userID)
}

// Create stores a new preset after validating its items and category.
func (u *PresetUseCase) Create(ctx context.Context, userID int64, name, category string, items []model.PresetItem) (*model.Preset, error) {
	if err := u.validatePreset(ctx, userID, name, category, items); err != nil {
		return nil, err
	}
	return u.presets.Create(ctx, userID, name, category, items, maxPresets)
}

// Update replaces an existing preset's name, category and items.
func (u *PresetUseCase) Update(ctx context.Context, userID, presetID int64, name, category string, items []model.PresetItem) (*model.Preset, error) {
	if err := u.validatePreset(ctx, userID, name, category, items); err != nil {
		return nil, err
	}
	return u.presets.Update(ctx, userID, presetID, name, category, items)
}

// Delete removes the user's preset.
func (u *PresetUseCase) Delete(ctx context.Context, userID, presetID int64) error {
	return u.presets.Delete(ctx, userID, presetID)
}

// AddCategory registers a new preset category for the user.
func (u *PresetUseCase) AddCategory(ctx context.Context, userID int64, name string) error {
	name, err := normalizeName(name, presetNameMaxLen)
	if err != nil {
		return err
	}
	return u.users.AddCategory(ctx, userID, name, maxCategories)
}

// RemoveCategory drops the category and every preset filed under it.
func (u *PresetUseCase) RemoveCategory(ctx context.Context, userID int64, name string) error {
	return u.users.RemoveCategory(ctx, userID, name)
}

// AddCustomItem extends the user's item vocabulary. Duplicates are ignored.
func (u *PresetUseCase) AddCustomItem(ctx context.Context, userID int64, name string) error {
	name, err := normalizeName(name, presetItemNameMax)
	if err != nil {
		return err
	}
	return u.users.AddCustomItem(ctx, userID, name, maxCustomItems)
}

// RemoveCustomItem removes the item from the user's vocabulary.
func (u *PresetUseCase) RemoveCustomItem(ctx context.Context, userID int64, name string) error {
	return u.users.RemoveCustomItem(ctx, userID, name)
}

func (u *PresetUseCase) validatePreset(ctx context.Context, userID int64, name, category string, items []model.PresetItem) error {
	if _, err := normalizeName(name, presetNameMaxLen); err != nil {
		return err
	}
	if len(items) == 0 || len(items) > maxPresetItems {
		return domainErrors.ErrInvalidItems
	}
	for _, item := range items {
		if _, err := normalizeName(item.Name, presetItemNameMax); err != nil {
			return err
		}
		if item.Quantity < 1 {
			return domainErrors.ErrInvalidItems
		}
	}
	if category == "" {
		return nil
	}
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !slices.Contains(user.Categories, category) {
		return domainErrors.ErrNotFound
	}
	return nil
}
