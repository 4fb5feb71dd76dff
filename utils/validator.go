package utils

import (
	"sync"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
	"gopkg.in/go-playground/validator.v9"
)

// Validator implementation.
type validatorProvider struct {
	sync.Mutex
	validator *validator.Validate
	logger    common.ILoggerProvider
}

// NewValidator constructs a new validator.
func NewValidator(logger common.ILoggerProvider) providers.IValidatorProvider {
	val := &validatorProvider{
		logger: logger,
	}
	v := validator.New()
	loadNewValidator(v, logger, "port", port)
	loadNewValidator(v, logger, "timezone", timezone)
	loadNewValidator(v, logger, "entityid", entityID)

	val.validator = v
	return val
}

// SetLogger updates the logger.
// Since logger is loaded after first init, we need to re-assign it.
func (v *validatorProvider) SetLogger(logger common.ILoggerProvider) {
	v.logger = logger
}

// Validate sets default values and performs validation of a config record.
func (v *validatorProvider) Validate(object interface{}) bool {
	v.Lock()
	defer v.Unlock()

	err := defaults.Set(object)

	if err != nil {
		v.logger.Error("Failed to set default field values", err)
		return false
	}

	err = v.validator.Struct(object)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			v.logger.Error("Validation failed", err)
			return false
		}

		for _, e := range errs {
			v.logger.Warn("Validation error", common.LogFieldToken, e.Field(), "tag", e.Tag())
		}

		return false
	}
	return true
}

// Port type validation.
func port(fl validator.FieldLevel) bool {
	return isPort(fl.Field().Int())
}

// IANA timezone validation.
func timezone(fl validator.FieldLevel) bool {
	_, err := time.LoadLocation(fl.Field().String())
	return err == nil
}

// Smart-home entity id validation.
func entityID(fl validator.FieldLevel) bool {
	return IsEntityID(fl.Field().String())
}

// Validates whether value could be used as a port.
func isPort(val int64) bool {
	return val > 0 && val <= 65535
}

// Attempt to register a new validator
func loadNewValidator(validator *validator.Validate, logger common.ILoggerProvider,
	name string, function validator.Func) {
	if err := validator.RegisterValidation(name, function); err != nil {
		logger.Error("Failed to register validator type", err, "type", name)
	}
}
