package models

import "time"

// App is a shared workspace resource protected by collaborator grants.
// The creator (OwnerID) holds the owner permission implicitly; it is never
// stored as a grant. Dependent records (chats, chat items, out-links,
// versions, input guides) are keyed by the app id and have no lifecycle of
// their own - they are removed with the app in one atomic teardown.
type App struct {
	ID        string    `json:"id" db:"id"`
	TeamID    string    `json:"team_id" db:"team_id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	Avatar    string    `json:"avatar,omitempty" db:"avatar"`
	Intro     string    `json:"intro,omitempty" db:"intro"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
