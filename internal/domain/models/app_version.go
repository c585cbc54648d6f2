package models

import "time"

// AppVersion is a point-in-time snapshot of an app's configuration. The
// payload is stored opaquely as JSON; the core never interprets it.
type AppVersion struct {
	ID        string    `json:"id" db:"id"`
	AppID     string    `json:"app_id" db:"app_id"`
	Label     string    `json:"label" db:"label"`
	Payload   []byte    `json:"payload" db:"payload"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
