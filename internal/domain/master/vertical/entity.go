package vertical

import "time"

type Vertical struct {
	ID         string
	Name       string
	DivisionID string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	DivisionName *string
}
