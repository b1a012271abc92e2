package postgres

import (
	"context"
	"errors"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
	"github.com/m-orlov/pairlist/internal/domain/model"
)

const userColumns = `id, login, password_hash, role, display_name, partner_id, push_endpoint, categories, custom_items, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.DisplayName,
		&u.PartnerID, &u.PushEndpoint, &u.Categories, &u.CustomItems, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.Role, displayName string) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, role, display_name)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, role, displayName).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Role = role
	u.DisplayName = displayName
	u.Categories = []string{}
	u.CustomItems = []string{}
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE login=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, displayName, passwordHash *string) (*model.User, error) {
	const query = `UPDATE users
                   SET display_name = COALESCE($2, display_name),
                       password_hash = COALESCE($3, password_hash)
                   WHERE id=$1
                   RETURNING ` + userColumns
	return scanUser(r.storage.pool.QueryRow(ctx, query, id, displayName, passwordHash))
}

func (r *userRepository) SetPushEndpoint(ctx context.Context, id int64, endpoint string) error {
	const query = `UPDATE users SET push_endpoint=$2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, endpoint)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// Delete removes the account. The counterpart loses its partner linkage and
// the user's orders, presets and pair requests go with it via FK cascade.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE users SET partner_id=NULL WHERE partner_id=$1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

// --- pairing ---

func (r *userRepository) CreatePairRequest(ctx context.Context, senderID, receiverID int64) error {
	const query = `INSERT INTO pair_requests (sender_id, receiver_id)
                   VALUES ($1, $2)
                   ON CONFLICT (sender_id, receiver_id) DO NOTHING`
	_, err := r.storage.pool.Exec(ctx, query, senderID, receiverID)
	return err
}

func (r *userRepository) DeletePairRequest(ctx context.Context, senderID, receiverID int64) error {
	const query = `DELETE FROM pair_requests WHERE sender_id=$1 AND receiver_id=$2`
	_, err := r.storage.pool.Exec(ctx, query, senderID, receiverID)
	return err
}

func (r *userRepository) ListPairRequests(ctx context.Context, receiverID int64) ([]model.PairRequest, error) {
	const query = `SELECT r.sender_id, r.receiver_id, u.login, u.display_name, r.requested_at
                   FROM pair_requests r
                   JOIN users u ON u.id = r.sender_id
                   WHERE r.receiver_id=$1
                   ORDER BY r.requested_at`
	rows, err := r.storage.pool.Query(ctx, query, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PairRequest
	for rows.Next() {
		var req model.PairRequest
		if err := rows.Scan(&req.SenderID, &req.ReceiverID, &req.Login, &req.DisplayName, &req.RequestedAt); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) Link(ctx context.Context, senderID, receiverID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE users SET partner_id=$2 WHERE id=$1`, senderID, receiverID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE users SET partner_id=$2 WHERE id=$1`, receiverID, senderID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM pair_requests WHERE sender_id=$1 AND receiver_id=$2`, senderID, receiverID); err != nil {
			return err
		}
		return nil
	})
}

// --- saved custom items and categories ---

func (r *userRepository) AddCustomItem(ctx context.Context, id int64, name string, limit int) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var items []string
		err := tx.QueryRow(ctx, `SELECT custom_items FROM users WHERE id=$1 FOR UPDATE`, id).Scan(&items)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if slices.Contains(items, name) {
			return nil
		}
		if len(items) >= limit {
			return domainErrors.ErrLimitReached
		}
		_, err = tx.Exec(ctx, `UPDATE users SET custom_items = array_append(custom_items, $2) WHERE id=$1`, id, name)
		return err
	})
}

func (r *userRepository) RemoveCustomItem(ctx context.Context, id int64, name string) error {
	const query = `UPDATE users SET custom_items = array_remove(custom_items, $2) WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) AddCategory(ctx context.Context, id int64, name string, limit int) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var categories []string
		err := tx.QueryRow(ctx, `SELECT categories FROM users WHERE id=$1 FOR UPDATE`, id).Scan(&categories)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if slices.Contains(categories, name) {
			return domainErrors.ErrAlreadyExists
		}
		if len(categories) >= limit {
			return domainErrors.ErrLimitReached
		}
		_, err = tx.Exec(ctx, `UPDATE users SET categories = array_append(categories, $2) WHERE id=$1`, id, name)
		return err
	})
}

func (r *userRepository) RemoveCategory(ctx context.Context, id int64, name string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE users SET categories = array_remove(categories, $2) WHERE id=$1`, id, name)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		_, err = tx.Exec(ctx, `DELETE FROM presets WHERE user_id=$1 AND category=$2`, id, name)
		return err
	})
}
