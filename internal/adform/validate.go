package adform

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Range limits of the numeric fields
const (
	MinYear     = 1900
	MinKmDriven = 0
	MaxKmDriven = 999999
)

// phonePattern accepts +91 followed by a ten digit mobile number starting 6-9
var phonePattern = regexp.MustCompile(`^\+91[6-9]\d{9}$`)

var requiredMessages = map[Field]string{
	FieldBrand:        "Brand is required",
	FieldModel:        "Model is required",
	FieldVariant:      "Variant is required",
	FieldYear:         "Year is required",
	FieldFuel:         "Fuel type is required",
	FieldTransmission: "Transmission is required",
	FieldKmDriven:     "KM driven is required",
	FieldOwners:       "Number of owners is required",
	FieldTitle:        "Title is required",
	FieldDescription:  "Description is required",
	FieldPrice:        "Price is required",
	FieldCity:         "City is required",
	FieldPhone:        "Phone number is required",
}

var formatMessages = map[Field]string{
	FieldYear:     "Please enter a valid year",
	FieldKmDriven: "Please enter a valid kilometer reading (0-999999)",
	FieldPrice:    "Please enter a valid price",
	FieldImages:   "At least one image is required",
	FieldPhone:    "Please enter a valid Indian phone number (+91XXXXXXXXXX)",
}

// Validator checks a draft against the submission rules. Each field is
// checked on its own; one failing field never hides another.
type Validator struct {
	validate *validator.Validate
	clock    Clock
}

// NewValidator builds a validator whose year range ends at the clock's
// current calendar year
func NewValidator(clock Clock) *Validator {
	if clock == nil {
		clock = SystemClock{}
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	val := &Validator{validate: v, clock: clock}

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("model_year", val.isModelYear)
	_ = v.RegisterValidation("km_reading", isKmReading)
	_ = v.RegisterValidation("asking_price", isAskingPrice)
	_ = v.RegisterValidation("cover_image", hasCoverImage)
	_ = v.RegisterValidation("in_phone", isIndianPhone)

	return val
}

// Validate returns a fresh error map for d; an empty map means d can be submitted
func (v *Validator) Validate(d Draft) Errors {
	errs := Errors{}

	err := v.validate.Struct(d)
	if err == nil {
		return errs
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		// Only reachable for a non-struct argument.
		return errs
	}

	for _, fe := range fieldErrors {
		field := Field(fe.Field())
		errs[field] = messageFor(field, fe.Tag())
	}

	return errs
}

func messageFor(field Field, tag string) string {
	if tag == "required" {
		if msg, ok := requiredMessages[field]; ok {
			return msg
		}
	}
	if msg, ok := formatMessages[field]; ok {
		return msg
	}
	return string(field) + " is invalid"
}

func (v *Validator) isModelYear(fl validator.FieldLevel) bool {
	year, ok := ParseLeadingInt(fl.Field().String())
	return ok && year >= MinYear && year <= int64(v.clock.Now().Year())
}

func isKmReading(fl validator.FieldLevel) bool {
	km, ok := ParseLeadingInt(fl.Field().String())
	return ok && km >= MinKmDriven && km <= MaxKmDriven
}

func isAskingPrice(fl validator.FieldLevel) bool {
	price, ok := ParseLeadingInt(fl.Field().String())
	return ok && price > 0
}

func hasCoverImage(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Array && field.Kind() != reflect.Slice {
		return false
	}
	return field.Len() > 0 && field.Index(0).String() != ""
}

func isIndianPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// ParseLeadingInt reads an optionally signed decimal integer from the
// start of s after leading whitespace and ignores whatever follows it, so
// "12abc" reads as 12 and "abc" does not parse. Values beyond int64 clamp.
func ParseLeadingInt(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(sign+s[:end], 10, 64)
	if err != nil {
		// Only ErrRange is possible here; n already holds the clamped bound.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return n, true
		}
		return 0, false
	}
	return n, true
}
