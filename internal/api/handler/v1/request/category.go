package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/colaai/colaai-api/internal/domain"
)

var colorExp = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

func (req *CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Description, validation.Length(0, 200)),
		validation.Field(&req.Color, validation.Match(colorExp)),
		validation.Field(&req.Icon, validation.Length(0, 50)),
	)
}

func (req *CreateCategoryRequest) Category() domain.EventCategory {
	return domain.EventCategory{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	}
}
