// Package catalog holds the static reference data that constrains the
// cascading selects of the ad form: brand -> model -> variant and
// region -> city, plus the option lists of the exclusive choice fields.
package catalog

import "slices"

// Option is a single (value, label) pair offered by a choice field
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Option groups served by OptionsFor
const (
	GroupFuel         = "fuel"
	GroupTransmission = "transmission"
	GroupOwners       = "owners"
)

// Catalog is read-only once built. Lookups for a missing key return an
// empty list, which is a valid "no options" answer rather than an error.
type Catalog struct {
	Brands       []string            `json:"brands"`
	Models       map[string][]string `json:"models"`
	Variants     map[string][]string `json:"variants"`
	Regions      []string            `json:"regions"`
	Cities       map[string][]string `json:"cities"`
	Fuel         []Option            `json:"fuel"`
	Transmission []Option            `json:"transmission"`
	Owners       []Option            `json:"owners"`
}

// Default returns the compiled-in catalog used by the form
func Default() *Catalog {
	return &Catalog{
		Brands: []string{"Toyota", "Honda", "Ford", "Hyundai", "Maruti Suzuki"},
		Models: map[string][]string{
			"Toyota":        {"Innova", "Fortuner", "Camry"},
			"Honda":         {"City", "Civic", "Amaze"},
			"Ford":          {"EcoSport", "Endeavour", "Figo"},
			"Hyundai":       {"Creta", "i20", "Venue"},
			"Maruti Suzuki": {"Swift", "Baleno", "Dzire"},
		},
		Variants: map[string][]string{
			"Innova":    {"G", "GX", "VX", "ZX"},
			"Fortuner":  {"4x2", "4x4", "Legender"},
			"Camry":     {"Hybrid"},
			"City":      {"V", "VX", "ZX"},
			"Civic":     {"V", "VX", "ZX"},
			"Amaze":     {"E", "S", "V", "VX"},
			"EcoSport":  {"Ambiente", "Trend", "Titanium"},
			"Endeavour": {"Titanium", "Titanium+"},
			"Figo":      {"Ambiente", "Titanium"},
			"Creta":     {"E", "S", "SX", "SX(O)"},
			"i20":       {"Magna", "Sportz", "Asta"},
			"Venue":     {"E", "S", "SX", "SX(O)"},
			"Swift":     {"LXi", "VXi", "ZXi", "ZXi+"},
			"Baleno":    {"Sigma", "Delta", "Zeta", "Alpha"},
			"Dzire":     {"LXi", "VXi", "ZXi", "ZXi+"},
		},
		Regions: []string{"Andaman & Nicobar Islands", "Andhra Pradesh", "Delhi", "Maharashtra"},
		Cities: map[string][]string{
			"Andaman & Nicobar Islands": {"Port Blair", "Car Nicobar"},
		},
		Fuel: []Option{
			{Value: "cng", Label: "CNG & Hybrids"},
			{Value: "diesel", Label: "Diesel"},
			{Value: "electric", Label: "Electric"},
			{Value: "lpg", Label: "LPG"},
			{Value: "petrol", Label: "Petrol"},
		},
		Transmission: []Option{
			{Value: "automatic", Label: "Automatic"},
			{Value: "manual", Label: "Manual"},
		},
		Owners: []Option{
			{Value: "1st", Label: "1st"},
			{Value: "2nd", Label: "2nd"},
			{Value: "3rd", Label: "3rd"},
			{Value: "4th", Label: "4th"},
			{Value: "4+", Label: "4+"},
		},
	}
}

// BrandList returns the brands in display order
func (c *Catalog) BrandList() []string {
	return slices.Clone(c.Brands)
}

// ModelsFor returns the models offered for brand
func (c *Catalog) ModelsFor(brand string) []string {
	return lookup(c.Models, brand)
}

// VariantsFor returns the variants offered for model
func (c *Catalog) VariantsFor(model string) []string {
	return lookup(c.Variants, model)
}

// RegionList returns the regions in display order
func (c *Catalog) RegionList() []string {
	return slices.Clone(c.Regions)
}

// CitiesFor returns the cities offered for region
func (c *Catalog) CitiesFor(region string) []string {
	return lookup(c.Cities, region)
}

// OptionsFor returns the option list of a choice group
func (c *Catalog) OptionsFor(group string) ([]Option, bool) {
	switch group {
	case GroupFuel:
		return slices.Clone(c.Fuel), true
	case GroupTransmission:
		return slices.Clone(c.Transmission), true
	case GroupOwners:
		return slices.Clone(c.Owners), true
	default:
		return nil, false
	}
}

// HasBrand reports whether brand is a catalog brand
func (c *Catalog) HasBrand(brand string) bool {
	return slices.Contains(c.Brands, brand)
}

// HasModel reports whether model is offered for brand
func (c *Catalog) HasModel(brand, model string) bool {
	return slices.Contains(c.Models[brand], model)
}

// HasVariant reports whether variant is offered for model
func (c *Catalog) HasVariant(model, variant string) bool {
	return slices.Contains(c.Variants[model], variant)
}

// HasRegion reports whether region is a catalog region
func (c *Catalog) HasRegion(region string) bool {
	return slices.Contains(c.Regions, region)
}

// HasCity reports whether city is offered for region
func (c *Catalog) HasCity(region, city string) bool {
	return slices.Contains(c.Cities[region], city)
}

// HasOption reports whether value belongs to the option group
func (c *Catalog) HasOption(group, value string) bool {
	opts, ok := c.OptionsFor(group)
	if !ok {
		return false
	}
	return slices.ContainsFunc(opts, func(o Option) bool { return o.Value == value })
}

func lookup(m map[string][]string, key string) []string {
	values, ok := m[key]
	if !ok {
		return []string{}
	}
	return slices.Clone(values)
}
