// Package validator holds the dashboard's custom validator/v10 tags.
package validator

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
)

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsHHMM reports whether value is a 24-hour HH:MM clock time.
func IsHHMM(value string) bool {
	return hhmmPattern.MatchString(value)
}

// Validators returns the custom tags by name.
func Validators() map[string]validator.Func {
	return map[string]validator.Func{
		"hhmm": func(fl validator.FieldLevel) bool {
			return IsHHMM(fl.Field().String())
		},
		"followup_status": func(fl validator.FieldLevel) bool {
			return model.FollowUpStatus(fl.Field().String()).Valid()
		},
		"weekday": func(fl validator.FieldLevel) bool {
			return model.Weekday(strings.ToLower(fl.Field().String())).Valid()
		},
	}
}

// Register adds the given tags to v.
func Register(v *validator.Validate, tags map[string]validator.Func) error {
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// Messages maps a failed tag to the message shown for the field.
var Messages = map[string]string{
	"required":        "Field wajib diisi",
	"datetime":        "Format tanggal harus YYYY-MM-DD",
	"hhmm":            "Format waktu harus HH:MM",
	"followup_status": "Status tidak valid",
	"weekday":         "Hari tidak valid",
	"email":           "Format email tidak valid",
}

// FieldErrors flattens validator errors into field -> message. It returns
// nil when err does not come from the validator.
func FieldErrors(err error, messages map[string]string) map[string]string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		msg := messages[e.Tag()]
		if msg == "" {
			msg = e.Error()
		}
		fields[e.Field()] = msg
	}
	return fields
}
