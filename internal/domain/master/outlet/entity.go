package outlet

import "time"

type Outlet struct {
	ID          string
	Name        string
	Address     string
	OwnerEmail  string
	OwnerPhone  string
	OutletPhone string
	Latitude    float64
	Longitude   float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
