package services

import (
	"context"

	"github.com/postad/postad-api/internal/catalog"
	pkgerrors "github.com/postad/postad-api/pkg/errors"
)

// CatalogService serves catalog lookups from the catalog cache
type CatalogService struct {
	provider CatalogProvider
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(provider CatalogProvider) *CatalogService {
	return &CatalogService{provider: provider}
}

func (s *CatalogService) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	c, err := s.provider.Get(ctx)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	return c, nil
}

func (s *CatalogService) Brands(ctx context.Context) ([]string, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.BrandList(), nil
}

func (s *CatalogService) Models(ctx context.Context, brand string) ([]string, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.ModelsFor(brand), nil
}

func (s *CatalogService) Variants(ctx context.Context, model string) ([]string, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.VariantsFor(model), nil
}

func (s *CatalogService) Regions(ctx context.Context) ([]string, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.RegionList(), nil
}

func (s *CatalogService) Cities(ctx context.Context, region string) ([]string, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.CitiesFor(region), nil
}

// Options returns the option list of a choice group; unknown groups are not found
func (s *CatalogService) Options(ctx context.Context, group string) ([]catalog.Option, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	opts, ok := c.OptionsFor(group)
	if !ok {
		return nil, pkgerrors.NotFoundError("option group " + group)
	}
	return opts, nil
}

// IsReady reports whether the catalog has been loaded
func (s *CatalogService) IsReady() bool {
	return s.provider.IsReady()
}
