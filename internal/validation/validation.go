package validation

import (
	"reflect"
	"regexp"
	"strings"

	"rcsc-server/internal/logger"
	. "rcsc-server/internal/models"

	"github.com/go-playground/validator/v10"
)

// bdPhonePattern accepts exactly the three submission grammars the form
// allows: "+8801…" or "01…", operator digit 3-9, eleven local digits.
var bdPhonePattern = regexp.MustCompile(`^(?:\+8801|01)[3-9][0-9]{8}$`)

// allowedEmailDomains is the consumer-provider allow-list; anything else
// is rejected even when syntactically valid.
var allowedEmailDomains = map[string]struct{}{
	"gmail.com":   {},
	"yahoo.com":   {},
	"outlook.com": {},
	"hotmail.com": {},
}

// FieldErrors maps a payload field (JSON name) to its error messages, so
// the submitting form can highlight exact inputs.
type FieldErrors map[string][]string

type Validator struct {
	validate *validator.Validate
	log      logger.Logger
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("bdphone", func(fl validator.FieldLevel) bool {
		return bdPhonePattern.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("commonemail", func(fl validator.FieldLevel) bool {
		address := strings.ToLower(fl.Field().String())
		at := strings.LastIndex(address, "@")
		if at < 0 {
			return false
		}
		_, ok := allowedEmailDomains[address[at+1:]]
		return ok
	})

	v.RegisterStructValidation(registrationRules, RegistrationRequest{})

	return &Validator{
		validate: v,
		log:      logger.New("validation"),
	}
}

// registrationRules holds the cross-field constraints: a with-tshirt
// membership requires a size, reported against tshirtSize specifically.
func registrationRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(RegistrationRequest)

	if req.MembershipType == MembershipWithTshirt && req.TshirtSize == "" {
		sl.ReportError(req.TshirtSize, "tshirtSize", "TshirtSize", "tshirt_required", "")
	}
}

// ValidateRegistration returns one message per offending field, empty
// when the payload is legal.
func (v *Validator) ValidateRegistration(req *RegistrationRequest) FieldErrors {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		v.log.Function("ValidateRegistration").Er("unexpected validator failure", err)
		return FieldErrors{"": {"Validation failed"}}
	}

	fieldErrors := FieldErrors{}
	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		fieldErrors[field] = append(fieldErrors[field], messageFor(field, fieldError.Tag()))
	}

	return fieldErrors
}

func messageFor(field, tag string) string {
	if byTag, ok := fieldMessages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
		if msg, ok := byTag[""]; ok {
			return msg
		}
	}
	return "Invalid value"
}

// Messages mirror what the registration form shows next to each input.
var fieldMessages = map[string]map[string]string{
	"fullName": {
		"required": "Full name is required",
		"min":      "Full name is too short",
		"max":      "Full name is too long",
	},
	"class": {
		"required": "Class is required",
		"":         "Invalid class",
	},
	"section": {
		"required": "Section is required",
		"":         "Invalid section",
	},
	"cNo": {
		"": "Invalid College number",
	},
	"wing": {
		"required": "Wing is required",
		"":         "Invalid wing",
	},
	"email": {
		"email": "Invalid email format",
		"":      "Invalid Email",
	},
	"phone": {
		"": "Invalid phone number",
	},
	"whatsapp": {
		"": "Invalid phone number",
	},
	"membershipType": {
		"": "Please select a membership type",
	},
	"tshirtSize": {
		"tshirt_required": "T-Shirt size is required for this membership",
		"":                "Invalid T-Shirt size",
	},
	"bkashNumber": {
		"": "Invalid bKash number",
	},
	"transactionId": {
		"min": "Transaction ID is too short",
		"max": "Transaction ID is too long",
		"":    "Invalid transaction ID",
	},
}
