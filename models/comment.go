package models

import "time"

// Comment is a note left by a user on a todo.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	Contents  string    `db:"contents" json:"contents"`
	UserID    int64     `db:"user_id" json:"user_id"`
	TodoID    int64     `db:"todo_id" json:"todo_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CommentWithUser is a comment joined with its author's public profile.
type CommentWithUser struct {
	Comment
	UserEmail string `db:"email" json:"email"`
}
