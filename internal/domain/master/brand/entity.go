package brand

import "time"

// Brand belongs to a vertical; its division is derived through that vertical.
type Brand struct {
	ID         string
	Name       string
	VerticalID string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	VerticalName *string
	DivisionID   *string
	DivisionName *string
}
