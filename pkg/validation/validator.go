package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"schoolpay/internal/models/db_models"
	"schoolpay/pkg/utils"
)

// AmountScale is the number of decimal places stored for money columns.
const AmountScale = 2

var (
	orderIDPattern  = regexp.MustCompile(`^ORD\d{4,}$`)
	schoolIDPattern = regexp.MustCompile(`^SCH\d{3,}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "order_id", func(fl validator.FieldLevel) bool {
		return IsOrderID(fl.Field().String())
	})
	mustRegister(v, "school_id", func(fl validator.FieldLevel) bool {
		return IsSchoolID(fl.Field().String())
	})
	mustRegister(v, "txn_status", func(fl validator.FieldLevel) bool {
		return db_models.TransactionStatus(fl.Field().String()).Valid()
	})

	// Decimals are validated through their string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	mustRegister(v, "amount", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && IsAmount(d)
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func IsOrderID(s string) bool  { return orderIDPattern.MatchString(s) }
func IsSchoolID(s string) bool { return schoolIDPattern.MatchString(s) }

// IsAmount reports whether d fits a money column without rounding.
func IsAmount(d decimal.Decimal) bool { return d.Equal(d.Round(AmountScale)) }

// Struct validates s and returns a *utils.ValidationError listing every failed field.
// Missing fields are reported together in a single leading message.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return utils.NewValidationError(err.Error())
	}

	var missing, problems []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		problems = append(problems, Message(fe.Field(), fe.Tag()))
	}
	if len(missing) > 0 {
		problems = append([]string{"Missing required fields: " + strings.Join(missing, ", ")}, problems...)
	}
	return utils.NewValidationError(problems...)
}

// Var validates a single value against tag, naming it field in the message.
func Var(field string, value interface{}, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if verrs[0].Tag() == "required" {
			return utils.NewValidationError(field + " is required.")
		}
		return utils.NewValidationError(Message(field, verrs[0].Tag()))
	}
	return utils.NewValidationError(err.Error())
}

func Message(field, tag string) string {
	switch tag {
	case "order_id":
		return fmt.Sprintf("Invalid %s format. Expected format: ORD followed by at least 4 digits (e.g., ORD1234).", field)
	case "school_id":
		return fmt.Sprintf("Invalid %s format. Expected format: SCH followed by at least 3 digits (e.g., SCH002).", field)
	case "txn_status":
		return fmt.Sprintf("Invalid %s. Allowed values: %s.", field, allowedStatuses())
	case "amount":
		return fmt.Sprintf("Invalid %s. Amounts must have at most %d decimal places.", field, AmountScale)
	case "required":
		return field + " is required."
	default:
		return fmt.Sprintf("%s failed %s validation.", field, tag)
	}
}

func allowedStatuses() string {
	names := make([]string, 0, len(db_models.TransactionStatuses))
	for _, s := range db_models.TransactionStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
