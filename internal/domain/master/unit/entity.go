package unit

import "time"

type Unit struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
