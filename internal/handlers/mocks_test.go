package handlers

import (
	"context"

	"github.com/postad/postad-api/internal/adform"
	"github.com/postad/postad-api/internal/catalog"
	"github.com/postad/postad-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockAdFormService is a mock implementation of services.AdFormServiceInterface
type MockAdFormService struct {
	mock.Mock
}

func (m *MockAdFormService) CreateDraft(ctx context.Context) (*models.DraftResponse, error) {
	args := m.Called(ctx)
	return draftArg(args, 0), args.Error(1)
}

func (m *MockAdFormService) GetDraft(ctx context.Context, id string) (*models.DraftResponse, error) {
	args := m.Called(ctx, id)
	return draftArg(args, 0), args.Error(1)
}

func (m *MockAdFormService) SetField(ctx context.Context, id, field, value string) (*models.DraftResponse, error) {
	args := m.Called(ctx, id, field, value)
	return draftArg(args, 0), args.Error(1)
}

func (m *MockAdFormService) UploadImage(ctx context.Context, id string, index int, open adform.OpenFunc) error {
	args := m.Called(ctx, id, index, open)
	return args.Error(0)
}

func (m *MockAdFormService) UploadProfileImage(ctx context.Context, id string, open adform.OpenFunc) error {
	args := m.Called(ctx, id, open)
	return args.Error(0)
}

func (m *MockAdFormService) WaitUploads(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdFormService) SelectLocationTab(ctx context.Context, id, tab string) (*models.DraftResponse, error) {
	args := m.Called(ctx, id, tab)
	return draftArg(args, 0), args.Error(1)
}

func (m *MockAdFormService) Submit(ctx context.Context, id string) (*models.SubmitResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmitResponse), args.Error(1)
}

func draftArg(args mock.Arguments, i int) *models.DraftResponse {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*models.DraftResponse)
}

// MockCatalogService is a mock implementation of services.CatalogServiceInterface
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Catalog), args.Error(1)
}

func (m *MockCatalogService) Brands(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return stringsArg(args), args.Error(1)
}

func (m *MockCatalogService) Models(ctx context.Context, brand string) ([]string, error) {
	args := m.Called(ctx, brand)
	return stringsArg(args), args.Error(1)
}

func (m *MockCatalogService) Variants(ctx context.Context, model string) ([]string, error) {
	args := m.Called(ctx, model)
	return stringsArg(args), args.Error(1)
}

func (m *MockCatalogService) Regions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return stringsArg(args), args.Error(1)
}

func (m *MockCatalogService) Cities(ctx context.Context, region string) ([]string, error) {
	args := m.Called(ctx, region)
	return stringsArg(args), args.Error(1)
}

func (m *MockCatalogService) Options(ctx context.Context, group string) ([]catalog.Option, error) {
	args := m.Called(ctx, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Option), args.Error(1)
}

func (m *MockCatalogService) IsReady() bool {
	return m.Called().Bool(0)
}

func stringsArg(args mock.Arguments) []string {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func newDraft(id string) *models.DraftResponse {
	return &models.DraftResponse{ID: id, Snapshot: adform.New(adform.Config{}).Snapshot()}
}
