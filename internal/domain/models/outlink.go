package models

import "time"

// OutLink is a share link exposing an app outside the workspace. It lives
// and dies with its app.
type OutLink struct {
	ID        string    `json:"id" db:"id"`
	AppID     string    `json:"app_id" db:"app_id"`
	ShareID   string    `json:"share_id" db:"share_id"`
	Name      string    `json:"name" db:"name"`
	UsageHits int       `json:"usage_hits" db:"usage_hits"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
