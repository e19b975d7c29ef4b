package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHHMM(t *testing.T) {
	for _, ok := range []string{"00:00", "08:30", "23:59"} {
		assert.True(t, IsHHMM(ok), ok)
	}
	for _, bad := range []string{"", "8:30", "24:00", "12:60", "12.30", "12:30:00"} {
		assert.False(t, IsHHMM(bad), bad)
	}
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v, Validators()))

	type form struct {
		Time   string `validate:"hhmm"`
		Status string `validate:"followup_status"`
		Day    string `validate:"weekday"`
	}

	assert.NoError(t, v.Struct(form{Time: "09:00", Status: "rescheduled", Day: "Monday"}))

	err := v.Struct(form{Time: "9am", Status: "done", Day: "funday"})
	require.Error(t, err)
	assert.Len(t, err.(validator.ValidationErrors), 3)
}

func TestFieldErrors(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v, Validators()))

	type form struct {
		Time string `validate:"required,hhmm"`
		Day  string `validate:"weekday"`
	}
	fields := FieldErrors(v.Struct(form{Day: "funday"}), Messages)
	assert.Equal(t, map[string]string{
		"Time": "Field wajib diisi",
		"Day":  "Hari tidak valid",
	}, fields)

	assert.Nil(t, FieldErrors(assert.AnError, Messages))
}
