package model

import "time"

// Identity is the client-side placeholder for a logged-in user.
// It is not a security credential: no server-side session backs it.
type Identity struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"name"`
	LoginTime   time.Time `json:"loginTime"`
}
