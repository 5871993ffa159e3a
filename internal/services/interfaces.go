package services

import (
	"context"

	"github.com/postad/postad-api/internal/adform"
	"github.com/postad/postad-api/internal/catalog"
	"github.com/postad/postad-api/internal/models"
)

// AdFormServiceInterface defines the operations on form sessions
type AdFormServiceInterface interface {
	CreateDraft(ctx context.Context) (*models.DraftResponse, error)
	GetDraft(ctx context.Context, id string) (*models.DraftResponse, error)
	SetField(ctx context.Context, id, field, value string) (*models.DraftResponse, error)
	UploadImage(ctx context.Context, id string, index int, open adform.OpenFunc) error
	UploadProfileImage(ctx context.Context, id string, open adform.OpenFunc) error
	WaitUploads(ctx context.Context, id string) error
	SelectLocationTab(ctx context.Context, id, tab string) (*models.DraftResponse, error)
	Submit(ctx context.Context, id string) (*models.SubmitResponse, error)
}

// CatalogServiceInterface defines the catalog lookups behind the selects
type CatalogServiceInterface interface {
	Catalog(ctx context.Context) (*catalog.Catalog, error)
	Brands(ctx context.Context) ([]string, error)
	Models(ctx context.Context, brand string) ([]string, error)
	Variants(ctx context.Context, model string) ([]string, error)
	Regions(ctx context.Context) ([]string, error)
	Cities(ctx context.Context, region string) ([]string, error)
	Options(ctx context.Context, group string) ([]catalog.Option, error)
	IsReady() bool
}

// FormStore holds the form of each session
type FormStore interface {
	Create() (string, *adform.Form)
	Get(id string) (*adform.Form, bool)
}

// CatalogProvider returns the current catalog
type CatalogProvider interface {
	Get(ctx context.Context) (*catalog.Catalog, error)
	IsReady() bool
}

// Ensure services implement their interfaces
var _ AdFormServiceInterface = (*AdFormService)(nil)
var _ CatalogServiceInterface = (*CatalogService)(nil)
