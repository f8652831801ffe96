package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Nigerian mobile numbers: +234/234/0 prefix, then 7/8/9 and nine digits.
var phonePattern = regexp.MustCompile(`^(\+?234|0)[789]\d{9}$`)

var nigerianStates = map[string]bool{
	"Abia": true, "Adamawa": true, "Akwa Ibom": true, "Anambra": true,
	"Bauchi": true, "Bayelsa": true, "Benue": true, "Borno": true,
	"Cross River": true, "Delta": true, "Ebonyi": true, "Edo": true,
	"Ekiti": true, "Enugu": true, "FCT - Abuja": true, "Gombe": true,
	"Imo": true, "Jigawa": true, "Kaduna": true, "Kano": true,
	"Katsina": true, "Kebbi": true, "Kogi": true, "Kwara": true,
	"Lagos": true, "Nasarawa": true, "Niger": true, "Ogun": true,
	"Ondo": true, "Osun": true, "Oyo": true, "Plateau": true,
	"Rivers": true, "Sokoto": true, "Taraba": true, "Yobe": true,
	"Zamfara": true,
}

// States lists the accepted delivery states in alphabetical order.
func States() []string {
	states := make([]string, 0, len(nigerianStates))
	for s := range nigerianStates {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

type Form struct {
	FirstName string `json:"firstName" validate:"min=2,max=50"`
	LastName  string `json:"lastName" validate:"min=2,max=50"`
	Email     string `json:"email" validate:"email"`
	Phone     string `json:"phone" validate:"ng_phone"`
	Address   string `json:"address" validate:"min=5"`
	City      string `json:"city" validate:"min=2"`
	State     string `json:"state" validate:"min=2,ng_state"`
}

// FieldErrors maps a field's JSON name to its first violated rule.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("invalid fields: %s", strings.Join(fields, ", "))
}

var validate = newValidator()

// Validate checks every field constraint and returns one message per
// invalid field, or nil when the form is ready for submission.
func (f Form) Validate() FieldErrors {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return FieldErrors{"form": err.Error()}
	}

	fieldErrs := make(FieldErrors)
	for _, fe := range validationErrs {
		if _, seen := fieldErrs[fe.Field()]; seen {
			continue
		}
		fieldErrs[fe.Field()] = fieldMessage(fe)
	}
	return fieldErrs
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	// Strict Nigerian format first, then the lenient length fallback.
	// The fallback looks like it defeats the strict check, but the
	// source behavior is preserved as-is.
	if err := v.RegisterValidation("ng_phone", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return phonePattern.MatchString(value) || len(value) >= 10
	}); err != nil {
		panic(err)
	}

	if err := v.RegisterValidation("ng_state", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return nigerianStates[value]
	}); err != nil {
		panic(err)
	}

	return v
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "firstName":
		if fe.Tag() == "max" {
			return "First name too long"
		}
		return "First name must be at least 2 characters"
	case "lastName":
		if fe.Tag() == "max" {
			return "Last name too long"
		}
		return "Last name must be at least 2 characters"
	case "email":
		return "Please enter a valid email address"
	case "phone":
		return "Enter a valid Nigerian phone number"
	case "address":
		return "Please enter your delivery address"
	case "city":
		return "City is required"
	case "state":
		if fe.Tag() == "ng_state" {
			return "Select a valid state"
		}
		return "State is required"
	default:
		return fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag())
	}
}
