package outlet

import (
	"strings"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
)

type OutletResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	OwnerEmail  string    `json:"owner_email"`
	OwnerPhone  string    `json:"owner_phone"`
	OutletPhone string    `json:"outlet_phone"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewOutletResponse(o Outlet) OutletResponse {
	return OutletResponse{
		ID:          o.ID,
		Name:        o.Name,
		Address:     o.Address,
		OwnerEmail:  o.OwnerEmail,
		OwnerPhone:  o.OwnerPhone,
		OutletPhone: o.OutletPhone,
		Latitude:    o.Latitude,
		Longitude:   o.Longitude,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

type UpsertOutletRequest struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	OwnerEmail  string   `json:"owner_email"`
	OwnerPhone  string   `json:"owner_phone"`
	OutletPhone string   `json:"outlet_phone"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (r *UpsertOutletRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.OwnerEmail = strings.ToLower(strings.TrimSpace(r.OwnerEmail))

	master.ValidateName(&errs, r.Name)

	if validator.IsEmpty(r.Address) {
		errs.Add("address", "address is required")
	} else if len(r.Address) > 500 {
		errs.Add("address", "address must not exceed 500 characters")
	}

	if validator.IsEmpty(r.OwnerEmail) {
		errs.Add("owner_email", "owner_email is required")
	} else if !validator.IsValidEmail(r.OwnerEmail) {
		errs.Add("owner_email", "owner_email must be a valid email address")
	}

	if validator.IsEmpty(r.OwnerPhone) {
		errs.Add("owner_phone", "owner_phone is required")
	} else if !validator.IsValidPhoneNumber(r.OwnerPhone) {
		errs.Add("owner_phone", "owner_phone must contain 10 to 15 digits")
	}

	if !validator.IsDigits(r.OutletPhone, 10) {
		errs.Add("outlet_phone", "outlet_phone must be exactly 10 digits")
	}

	if r.Latitude == nil {
		errs.Add("latitude", "latitude is required")
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if r.Longitude == nil {
		errs.Add("longitude", "longitude is required")
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}

	return errs.OrNil()
}

type ListOutletResponse struct {
	master.ListMeta
	Outlets []OutletResponse `json:"outlets"`
}
