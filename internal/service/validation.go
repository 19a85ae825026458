package service

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"super-control/internal/auth"
	"super-control/internal/domain"
)

var usernamePattern = regexp.MustCompile(`^[^\s/]+$`)

func usernameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.RuneLength(4, 15),
		validation.Match(usernamePattern).Error("must not contain spaces or slashes"),
	}
}

func nameRules() []validation.Rule {
	return []validation.Rule{validation.Required, validation.RuneLength(3, 20)}
}

func emailRules() []validation.Rule {
	return []validation.Rule{validation.Required, is.Email}
}

func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.RuneLength(8, 64),
		validation.Length(0, auth.MaxPasswordBytes).Error(fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes)),
	}
}

// Validate checks the registration payload. Failures wrap ErrInvalidInput.
func (in RegisterInput) Validate() error {
	return invalidInput(validation.ValidateStruct(&in,
		validation.Field(&in.Username, usernameRules()...),
		validation.Field(&in.Name, nameRules()...),
		validation.Field(&in.LastName, nameRules()...),
		validation.Field(&in.Email, emailRules()...),
		validation.Field(&in.Password, passwordRules()...),
	))
}

// Validate checks the supplied fields only; nil fields are skipped but
// supplied ones must not be blank.
func (in UpdateInput) Validate() error {
	return invalidInput(validation.ValidateStruct(&in,
		validation.Field(&in.Name, append([]validation.Rule{validation.NilOrNotEmpty}, nameRules()[1:]...)...),
		validation.Field(&in.LastName, append([]validation.Rule{validation.NilOrNotEmpty}, nameRules()[1:]...)...),
		validation.Field(&in.Email, append([]validation.Rule{validation.NilOrNotEmpty}, emailRules()[1:]...)...),
		validation.Field(&in.Password, append([]validation.Rule{validation.NilOrNotEmpty}, passwordRules()[1:]...)...),
	))
}

func validateProduct(p domain.Product) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Units, validation.Min(0.0)),
		validation.Field(&p.Price, validation.Min(0.0)),
	)
}

func validateProducts(products []domain.Product) error {
	for i, p := range products {
		if err := validateProduct(p); err != nil {
			return fmt.Errorf("%w: product %d: %v", ErrInvalidInput, i, err)
		}
	}
	return nil
}

func invalidInput(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
