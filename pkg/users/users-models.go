package users

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type User struct {
	Id       int64
	Email    string
	Password string // hashed, never the plaintext secret
}

type SignupData struct {
	Email    string
	Password string
}

func (data SignupData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Email, validation.Required, is.Email),
		validation.Field(&data.Password, validation.Required, validation.Length(8, 50)),
	)
}

type LoginData struct {
	Email    string
	Password string
}

func (data LoginData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Email, validation.Required, is.Email),
		validation.Field(&data.Password, validation.Required),
	)
}

// FormFeedback collects the per-field classes and messages the signup and
// login views use to highlight which field failed and why.
type FormFeedback struct {
	EmailClass       string
	PasswordClass    string
	EmailFeedback    string
	PasswordFeedback string
}

// defaultFeedback seeds the pristine forms: no validity classes, generic hints.
func defaultFeedback() FormFeedback {
	return FormFeedback{
		EmailFeedback:    "Enter a valid email",
		PasswordFeedback: "Enter a valid password",
	}
}

// validationFeedback maps a failed validation onto field-specific highlights.
func validationFeedback(err error) FormFeedback {
	var feedback = defaultFeedback()
	var fieldErrors validation.Errors
	if !errors.As(err, &fieldErrors) {
		return feedback
	}
	if fieldErr, found := fieldErrors["Email"]; found {
		feedback.EmailClass = "is-invalid"
		feedback.EmailFeedback = fieldErr.Error()
	}
	if fieldErr, found := fieldErrors["Password"]; found {
		feedback.PasswordClass = "is-invalid"
		feedback.PasswordFeedback = fieldErr.Error()
	}
	return feedback
}
