package utils

import (
	"testing"

	"github.com/go-home-io/guestkey/mocks"
	"github.com/stretchr/testify/assert"
)

type testStruct struct {
	Port     int32  `validate:"port" default:"8080"`
	Timezone string `validate:"timezone" default:"Europe/London"`
	Entity   string `validate:"omitempty,entityid"`
}

// Tests success validation.
func TestSuccessValidation(t *testing.T) {
	in := []*testStruct{
		{
			Port:     8080,
			Timezone: "UTC",
			Entity:   "climate.3_1_trv",
		},
		{
			Port:     65535,
			Timezone: "America/New_York",
		},
		{},
	}

	validator := NewValidator(mocks.FakeNewLogger(nil))
	for _, v := range in {
		assert.True(t, validator.Validate(v), v.Timezone)
	}
}

// Tests that defaults are applied before validation.
func TestDefaultsApplied(t *testing.T) {
	d := &testStruct{}
	validator := NewValidator(mocks.FakeNewLogger(nil))
	assert.True(t, validator.Validate(d))
	assert.Equal(t, int32(8080), d.Port)
	assert.Equal(t, "Europe/London", d.Timezone)
}

// Tests validation without pointer.
func TestNotPointer(t *testing.T) {
	validator := NewValidator(mocks.FakeNewLogger(nil))
	d := testStruct{
		Port:     8080,
		Timezone: "UTC",
	}

	assert.False(t, validator.Validate(d))
}

// Tests incorrect data.
func TestFailedValidation(t *testing.T) {
	in := []*testStruct{
		{
			Port: 100000,
		},
		{
			Timezone: "Mars/Olympus",
		},
		{
			Entity: "Climate 3",
		},
		{
			Entity: "climate",
		},
	}

	validator := NewValidator(mocks.FakeNewLogger(nil))
	for k, v := range in {
		assert.False(t, validator.Validate(v), "%d", k)
	}
}
