package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidSource = errors.New("invalid item source")
)

// validate is shared by every service; validator caches struct metadata.
var validate = validator.New()

// validateRequest runs struct tags and reports failures as ErrInvalidInput.
func validateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed on %s", ErrInvalidInput, verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
