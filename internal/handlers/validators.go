package handlers

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/SscSPs/revenue_cycle_app/internal/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerValidatorsOnce sync.Once
	registerValidatorsErr  error
)

// RegisterValidators adds the custom binding tags used by the request DTOs to gin's validator.
func RegisterValidators() error {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerValidatorsErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		if err := v.RegisterValidation("positive_amount", validatePositiveAmount); err != nil {
			registerValidatorsErr = fmt.Errorf("register positive_amount: %w", err)
			return
		}
		if err := v.RegisterValidation("isodate", validateISODate); err != nil {
			registerValidatorsErr = fmt.Errorf("register isodate: %w", err)
		}
	})
	return registerValidatorsErr
}

// validatePositiveAmount accepts decimal strings strictly greater than zero that fit the amount columns.
func validatePositiveAmount(fl validator.FieldLevel) bool {
	_, err := utils.ParsePositiveAmount(fl.FieldName(), fl.Field().String())
	return err == nil
}

// validateISODate accepts YYYY-MM-DD or a full RFC3339 timestamp.
func validateISODate(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if _, err := time.Parse(domain.DateLayout, raw); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, raw)
	return err == nil
}
