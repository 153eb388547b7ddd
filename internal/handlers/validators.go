package handlers

import (
	"sync"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the domain enum tags used by the request DTOs to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("transport_mode", func(fl validator.FieldLevel) bool {
			return domain.TransportMode(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
			return domain.Region(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
			return domain.Status(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return domain.Role(fl.Field().String()).IsValid()
		})
	})
}
