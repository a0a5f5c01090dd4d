package models

import "time"

// Todo is a task created by its owner.
// OwnerID is nullable in the DB: a todo whose owner row is gone keeps a NULL user_id,
// which callers treat as a data-integrity fault rather than "not found".
type Todo struct {
	ID         int64     `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Contents   string    `db:"contents" json:"contents"`
	Weather    string    `db:"weather" json:"weather"`
	OwnerID    *int64    `db:"user_id" json:"user_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
}

// HasOwner reports whether the todo references an owner.
func (t *Todo) HasOwner() bool {
	return t != nil && t.OwnerID != nil
}

// OwnedBy reports whether userID is the todo's owner.
func (t *Todo) OwnedBy(userID int64) bool {
	return t.HasOwner() && *t.OwnerID == userID
}
