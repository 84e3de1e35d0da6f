package division

import (
	"strings"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
)

type DivisionResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewDivisionResponse(d Division) DivisionResponse {
	return DivisionResponse{
		ID:           d.ID,
		Name:         d.Name,
		Abbreviation: d.Abbreviation,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// UpsertDivisionRequest is used for both create and full update.
type UpsertDivisionRequest struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

func (r *UpsertDivisionRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Abbreviation = strings.ToUpper(strings.TrimSpace(r.Abbreviation))

	master.ValidateName(&errs, r.Name)
	if validator.IsEmpty(r.Abbreviation) {
		errs.Add("abbreviation", "abbreviation is required")
	} else if len(r.Abbreviation) > 10 {
		errs.Add("abbreviation", "abbreviation must not exceed 10 characters")
	}

	return errs.OrNil()
}

type ListDivisionResponse struct {
	master.ListMeta
	Divisions []DivisionResponse `json:"divisions"`
}
