package repository

import (
	"context"

	"skill_exchange_service/internal/messaging/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// ContactDirectory read-only view of the member table. The messaging core
// does not own membership data; it only lists who a user may converse with.
type ContactDirectory interface {
	ListOthers(ctx context.Context, userID string) ([]domain.Contact, error)
}

type contactRepository struct {
	db *pgxpool.Pool
}

// NewContactDirectory create a ContactDirectory
func NewContactDirectory(db *pgxpool.Pool) ContactDirectory {
	return &contactRepository{db: db}
}

// ListOthers all members except userID and the banned/deleted ones
func (r *contactRepository) ListOthers(ctx context.Context, userID string) ([]domain.Contact, error) {
	rows, err := r.db.Query(ctx, `
      SELECT member_id, display_name, email
      FROM member
      WHERE member_id <> $1 AND status < 2
      ORDER BY display_name
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.UserID, &c.DisplayName, &c.Email); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
