package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_EveryBrandHasModelsWithVariants(t *testing.T) {
	c := Default()

	for _, brand := range c.BrandList() {
		models := c.ModelsFor(brand)
		assert.NotEmpty(t, models, "brand %s", brand)
		for _, model := range models {
			assert.NotEmpty(t, c.VariantsFor(model), "model %s", model)
		}
	}
}

func TestCatalog_Lookups(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"Innova", "Fortuner", "Camry"}, c.ModelsFor("Toyota"))
	assert.Equal(t, []string{"Sigma", "Delta", "Zeta", "Alpha"}, c.VariantsFor("Baleno"))
	assert.Equal(t, []string{"Port Blair", "Car Nicobar"}, c.CitiesFor("Andaman & Nicobar Islands"))
}

func TestCatalog_MissingKeyIsEmptyList(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{}, c.ModelsFor("Tesla"))
	assert.Equal(t, []string{}, c.VariantsFor(""))
	assert.Equal(t, []string{}, c.CitiesFor("Delhi"))
}

func TestCatalog_ListsAreCopies(t *testing.T) {
	c := Default()

	models := c.ModelsFor("Honda")
	models[0] = "Accord"

	assert.Equal(t, "City", c.ModelsFor("Honda")[0])
}

func TestCatalog_Membership(t *testing.T) {
	c := Default()

	tests := []struct {
		name     string
		got      bool
		expected bool
	}{
		{"known brand", c.HasBrand("Ford"), true},
		{"unknown brand", c.HasBrand("BMW"), false},
		{"model of brand", c.HasModel("Hyundai", "Creta"), true},
		{"model of other brand", c.HasModel("Toyota", "Creta"), false},
		{"variant of model", c.HasVariant("Endeavour", "Titanium+"), true},
		{"variant of other model", c.HasVariant("Figo", "Titanium+"), false},
		{"known region", c.HasRegion("Maharashtra"), true},
		{"city of region", c.HasCity("Andaman & Nicobar Islands", "Port Blair"), true},
		{"city without list", c.HasCity("Delhi", "Port Blair"), false},
		{"fuel option", c.HasOption(GroupFuel, "lpg"), true},
		{"fuel label is not a value", c.HasOption(GroupFuel, "LPG"), false},
		{"owners option", c.HasOption(GroupOwners, "4+"), true},
		{"unknown group", c.HasOption("colour", "red"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestCatalog_OptionsFor(t *testing.T) {
	c := Default()

	transmission, ok := c.OptionsFor(GroupTransmission)
	assert.True(t, ok)
	assert.Equal(t, []Option{{Value: "automatic", Label: "Automatic"}, {Value: "manual", Label: "Manual"}}, transmission)

	_, ok = c.OptionsFor("colour")
	assert.False(t, ok)
}
