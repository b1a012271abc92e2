package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
	"github.com/m-orlov/pairlist/internal/domain/model"
)

func (r *presetRepository) Create(ctx context.Context, userID int64, name, category string, items []model.PresetItem, limit int) (*model.Preset, error) {
	preset := &model.Preset{UserID: userID, Name: name, Category: category, Items: items}
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM presets WHERE user_id=$1`, userID).Scan(&count); err != nil {
			return err
		}
		if count >= limit {
			return domainErrors.ErrLimitReached
		}
		const query = `INSERT INTO presets (user_id, name, category, items)
                       VALUES ($1, $2, $3, $4)
                       RETURNING id`
		return tx.QueryRow(ctx, query, userID, name, category, items).Scan(&preset.ID)
	})
	if err != nil {
		return nil, err
	}
	return preset, nil
}

func (r *presetRepository) Update(ctx context.Context, userID, presetID int64, name, category string, items []model.PresetItem) (*model.Preset, error) {
	const query = `UPDATE presets SET name=$3, category=$4, items=$5
                   WHERE id=$2 AND user_id=$1
                   RETURNING id`
	preset := &model.Preset{UserID: userID, Name: name, Category: category, Items: items}
	err := r.storage.pool.QueryRow(ctx, query, userID, presetID, name, category, items).Scan(&preset.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return preset, nil
}

func (r *presetRepository) Delete(ctx context.Context, userID, presetID int64) error {
	const query = `DELETE FROM presets WHERE id=$2 AND user_id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, userID, presetID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *presetRepository) ListByUser(ctx context.Context, userID int64) ([]model.Preset, error) {
	const query = `SELECT id, user_id, name, category, items
                   FROM presets WHERE user_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Preset
	for rows.Next() {
		var p model.Preset
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Category, &p.Items); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
