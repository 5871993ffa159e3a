package adform

import (
	"fmt"
)

// MaxImages is the number of image slots; slot 0 is the cover
const MaxImages = 20

// Draft defaults
const (
	DefaultCategory = "Cars"
	DefaultCountry  = "India"
	DefaultRegion   = "Andaman & Nicobar Islands"
	DefaultName     = "OLX User"
)

// Field names a draft field. Its string value is the field's JSON name.
type Field string

const (
	FieldCategory     Field = "category"
	FieldBrand        Field = "brand"
	FieldModel        Field = "model"
	FieldVariant      Field = "variant"
	FieldYear         Field = "year"
	FieldFuel         Field = "fuel"
	FieldTransmission Field = "transmission"
	FieldKmDriven     Field = "kmDriven"
	FieldOwners       Field = "owners"
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldPrice        Field = "price"
	FieldImages       Field = "images"
	FieldCountry      Field = "country"
	FieldRegion       Field = "region"
	FieldCity         Field = "city"
	FieldName         Field = "name"
	FieldPhone        Field = "phone"
	FieldProfileImage Field = "profileImage"
)

// ScalarFields lists the fields SetField accepts, in form order. Brand
// precedes model and model precedes variant so that applying several edits
// in this order never undoes a later edit through the cascading reset.
var ScalarFields = []Field{
	FieldCategory,
	FieldBrand,
	FieldModel,
	FieldVariant,
	FieldYear,
	FieldFuel,
	FieldTransmission,
	FieldKmDriven,
	FieldOwners,
	FieldTitle,
	FieldDescription,
	FieldPrice,
	FieldCountry,
	FieldRegion,
	FieldCity,
	FieldName,
	FieldPhone,
}

var maxLengths = map[Field]int{
	FieldKmDriven:    6,
	FieldTitle:       70,
	FieldDescription: 4096,
	FieldName:        30,
}

// MaxLength returns the input length limit of f, or 0 when unlimited
func (f Field) MaxLength() int {
	return maxLengths[f]
}

// ParseField resolves a scalar field by its JSON name
func ParseField(name string) (Field, error) {
	for _, f := range ScalarFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownField)
}

// Draft is the listing under construction. Numeric fields stay strings
// while editing; they are only interpreted by validation.
type Draft struct {
	Category     string            `json:"category"`
	Brand        string            `json:"brand" validate:"required"`
	Model        string            `json:"model" validate:"required"`
	Variant      string            `json:"variant" validate:"required"`
	Year         string            `json:"year" validate:"required,model_year"`
	Fuel         string            `json:"fuel" validate:"required"`
	Transmission string            `json:"transmission" validate:"required"`
	KmDriven     string            `json:"kmDriven" validate:"required,km_reading"`
	Owners       string            `json:"owners" validate:"required"`
	Title        string            `json:"title" validate:"required"`
	Description  string            `json:"description" validate:"required"`
	Price        string            `json:"price" validate:"required,asking_price"`
	Images       [MaxImages]string `json:"images" validate:"cover_image"`
	Country      string            `json:"country"`
	Region       string            `json:"region"`
	City         string            `json:"city" validate:"required"`
	Name         string            `json:"name"`
	Phone        string            `json:"phone" validate:"required,in_phone"`
	ProfileImage string            `json:"profileImage"`
}

// NewDraft returns a draft holding the form session defaults
func NewDraft() Draft {
	return Draft{
		Category: DefaultCategory,
		Country:  DefaultCountry,
		Region:   DefaultRegion,
		Name:     DefaultName,
	}
}

// Get returns the value of a scalar field
func (d *Draft) Get(f Field) string {
	if p := d.ref(f); p != nil {
		return *p
	}
	return ""
}

// set replaces a scalar field without any cascading
func (d *Draft) set(f Field, value string) bool {
	p := d.ref(f)
	if p == nil {
		return false
	}
	*p = value
	return true
}

func (d *Draft) ref(f Field) *string {
	switch f {
	case FieldCategory:
		return &d.Category
	case FieldBrand:
		return &d.Brand
	case FieldModel:
		return &d.Model
	case FieldVariant:
		return &d.Variant
	case FieldYear:
		return &d.Year
	case FieldFuel:
		return &d.Fuel
	case FieldTransmission:
		return &d.Transmission
	case FieldKmDriven:
		return &d.KmDriven
	case FieldOwners:
		return &d.Owners
	case FieldTitle:
		return &d.Title
	case FieldDescription:
		return &d.Description
	case FieldPrice:
		return &d.Price
	case FieldCountry:
		return &d.Country
	case FieldRegion:
		return &d.Region
	case FieldCity:
		return &d.City
	case FieldName:
		return &d.Name
	case FieldPhone:
		return &d.Phone
	default:
		return nil
	}
}

// Cover returns the image in slot 0
func (d *Draft) Cover() string {
	return d.Images[0]
}

// ImageCount returns the number of filled slots
func (d *Draft) ImageCount() int {
	n := 0
	for _, img := range d.Images {
		if img != "" {
			n++
		}
	}
	return n
}
