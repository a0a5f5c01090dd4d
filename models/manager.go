package models

// Manager links a user to a todo they co-manage.
// It holds ids only; the user and todo are resolved through their repositories.
type Manager struct {
	ID     int64 `db:"id" json:"id"`
	UserID int64 `db:"user_id" json:"user_id"`
	TodoID int64 `db:"todo_id" json:"todo_id"`
}

// ManagerWithUser is a manager row joined with its user's public profile.
type ManagerWithUser struct {
	Manager
	UserEmail string `db:"email" json:"email"`
}
