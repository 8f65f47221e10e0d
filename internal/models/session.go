package models

import "time"

// Session is the server-held record behind an opaque login token. The token
// never encodes identity itself; it is only a key into the session store.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
}
