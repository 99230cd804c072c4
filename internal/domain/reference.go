package domain

import "time"

// Municipality is a reference entity users and tickets point at.
type Municipality struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Position (cargo) is the job title attached to a user.
type Position struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
