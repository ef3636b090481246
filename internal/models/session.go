package models

import "time"

// Session is one authenticated session, held only in memory. Role is captured
// at login time; role changes take effect on the next login. Origin records
// where the login came from and is used for audit only.
type Session struct {
	Token        string
	AccountID    string
	Role         Role
	Origin       string
	CreatedAt    time.Time
	LastActivity time.Time
}
