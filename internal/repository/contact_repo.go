package repository

import (
	"context"
	"database/sql"
	"fmt"

	"eyestyle"
)

type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

var _ Contact = (*ContactRepository)(nil)

const insertContactMessageSQL = `
	INSERT INTO contact_messages (name, email, message, created_at)
	VALUES (?, ?, ?, ?)
`

// Save stores one contact-form submission and returns its ID.
func (r *ContactRepository) Save(ctx context.Context, msg eyestyle.ContactMessage) (int, error) {
	res, err := r.db.ExecContext(ctx, insertContactMessageSQL, msg.Name, msg.Email, msg.Message, msg.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert contact message from %q: %w", msg.Email, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get contact message id: %w", err)
	}
	return int(id), nil
}
