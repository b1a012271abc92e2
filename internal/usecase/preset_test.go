package usecase

import (
	"context"
	"strings"
	"testing"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
	"github.com/m-orlov/pairlist/internal/domain/model"
	testhelpers "github.com/m-orlov/pairlist/internal/test"
)

func presetFixture() (*PresetUseCase, *testhelpers.UserRepositoryStub, *testhelpers.PresetRepositoryStub) {
	users := testhelpers.NewUserRepositoryStub()
	users.Add(&model.User{Login: "alice", Role: model.RoleSender, Categories: []string{"dairy"}})
	presets := &testhelpers.PresetRepositoryStub{}
	return NewPresetUseCase(users, presets), users, presets
}

func validItems() []model.PresetItem {
	return []model.PresetItem{{Name: "milk", Quantity: 2}}
}

func TestPresetUseCaseCreate(t *testing.T) {
	uc, _, presets := presetFixture()
	ctx := context.Background()

	preset, err := uc.Create(ctx, 1, "weekly", "dairy", validItems())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if preset.ID == 0 || preset.Category != "dairy" {
		t.Fatalf("unexpected preset: %+v", preset)
	}
	if len(presets.Presets) != 1 {
		t.Fatalf("preset not stored: %+v", presets.Presets)
	}

	// a preset without a category is allowed
	if _, err := uc.Create(ctx, 1, "loose", "", validItems()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPresetUseCaseCreateValidation(t *testing.T) {
	uc, _, _ := presetFixture()
	ctx := context.Background()

	cases := []struct {
		name     string
		preset   string
		category string
		items    []model.PresetItem
		want     error
	}{
		{"empty name", "  ", "", validItems(), domainErrors.ErrInvalidItems},
		{"long name", strings.Repeat("x", 65), "", validItems(), domainErrors.ErrInvalidItems},
		{"no items", "weekly", "", nil, domainErrors.ErrInvalidItems},
		{"too many items", "weekly", "", []model.PresetItem{
			{Name: "a", Quantity: 1}, {Name: "b", Quantity: 1}, {Name: "c", Quantity: 1},
			{Name: "d", Quantity: 1}, {Name: "e", Quantity: 1}, {Name: "f", Quantity: 1},
		}, domainErrors.ErrInvalidItems},
		{"zero quantity", "weekly", "", []model.PresetItem{{Name: "milk", Quantity: 0}}, domainErrors.ErrInvalidItems},
		{"blank item name", "weekly", "", []model.PresetItem{{Name: " ", Quantity: 1}}, domainErrors.ErrInvalidItems},
		{"unknown category", "weekly", "frozen", validItems(), domainErrors.ErrNotFound},
	}

	for _, tc := range cases {
		if _, err := uc.Create(ctx, 1, tc.preset, tc.category, tc.items); err != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestPresetUseCaseCreateLimit(t *testing.T) {
	uc, _, presets := presetFixture()
	ctx := context.Background()

	for i := 0; i < maxPresets; i++ {
		if _, err := uc.Create(ctx, 1, "weekly", "", validItems()); err != nil {
			t.Fatalf("unexpected error at preset %d: %v", i, err)
		}
	}
	if _, err := uc.Create(ctx, 1, "one-too-many", "", validItems()); err != domainErrors.ErrLimitReached {
		t.Fatalf("expected limit error, got %v", err)
	}
	if len(presets.Presets) != maxPresets {
		t.Fatalf("expected %d presets, got %d", maxPresets, len(presets.Presets))
	}
}

func TestPresetUseCaseUpdate(t *testing.T) {
	uc, _, _ := presetFixture()
	ctx := context.Background()

	preset, err := uc.Create(ctx, 1, "weekly", "dairy", validItems())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := uc.Update(ctx, 1, preset.ID, "monthly", "", []model.PresetItem{{Name: "eggs", Quantity: 6}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "monthly" || updated.Items[0].Name != "eggs" {
		t.Fatalf("unexpected preset: %+v", updated)
	}

	if _, err := uc.Update(ctx, 1, 99, "monthly", "", validItems()); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.Update(ctx, 1, preset.ID, "", "", validItems()); err != domainErrors.ErrInvalidItems {
		t.Fatalf("expected invalid items, got %v", err)
	}
}

func TestPresetUseCaseDelete(t *testing.T) {
	uc, _, presets := presetFixture()
	ctx := context.Background()

	preset, err := uc.Create(ctx, 1, "weekly", "", validItems())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := uc.Delete(ctx, 1, preset.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(presets.Presets) != 0 {
		t.Fatalf("preset not removed: %+v", presets.Presets)
	}
	if err := uc.Delete(ctx, 1, preset.ID); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPresetUseCaseCategories(t *testing.T) {
	uc, users, _ := presetFixture()
	ctx := context.Background()

	if err := uc.AddCategory(ctx, 1, " frozen "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := users.ByID[1].Categories; len(got) != 2 || got[1] != "frozen" {
		t.Fatalf("category not trimmed and stored: %+v", got)
	}

	if err := uc.AddCategory(ctx, 1, "frozen"); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected already exists, got %v", err)
	}
	if err := uc.AddCategory(ctx, 1, ""); err != domainErrors.ErrInvalidItems {
		t.Fatalf("expected invalid items, got %v", err)
	}

	if err := uc.RemoveCategory(ctx, 1, "frozen"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := users.ByID[1].Categories; len(got) != 1 {
		t.Fatalf("category not removed: %+v", got)
	}
}

func TestPresetUseCaseCategoryLimit(t *testing.T) {
	uc, users, _ := presetFixture()
	ctx := context.Background()

	users.ByID[1].Categories = []string{"a", "b", "c", "d", "e"}
	if err := uc.AddCategory(ctx, 1, "f"); err != domainErrors.ErrLimitReached {
		t.Fatalf("expected limit error, got %v", err)
	}
}

func TestPresetUseCaseCustomItems(t *testing.T) {
	uc, users, _ := presetFixture()
	ctx := context.Background()

	if err := uc.AddCustomItem(ctx, 1, " oat milk "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := users.ByID[1].CustomItems; len(got) != 1 || got[0] != "oat milk" {
		t.Fatalf("item not trimmed and stored: %+v", got)
	}

	// duplicates are silently ignored
	if err := uc.AddCustomItem(ctx, 1, "oat milk"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := users.ByID[1].CustomItems; len(got) != 1 {
		t.Fatalf("duplicate stored: %+v", got)
	}

	if err := uc.AddCustomItem(ctx, 1, ""); err != domainErrors.ErrInvalidItems {
		t.Fatalf("expected invalid items, got %v", err)
	}

	if err := uc.RemoveCustomItem(ctx, 1, "oat milk"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := users.ByID[1].CustomItems; len(got) != 0 {
		t.Fatalf("item not removed: %+v", got)
	}
}
