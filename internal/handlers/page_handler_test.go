package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/postad/postad-api/internal/adform"
	"github.com/postad/postad-api/internal/catalog"
	"github.com/postad/postad-api/internal/models"
	pkgerrors "github.com/postad/postad-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPageRouter(forms *MockAdFormService, cat *MockCatalogService) *gin.Engine {
	h := NewPageHandler(forms, cat, PageConfig{SessionTTL: time.Hour})
	router := gin.New()
	router.GET("/", h.Index)
	router.GET("/post", h.Show)
	router.POST("/post", h.Post)
	return router
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie set", SessionCookie)
	return nil
}

func TestPageHandler_IndexRedirects(t *testing.T) {
	w := serve(newPageRouter(new(MockAdFormService), new(MockCatalogService)), httptest.NewRequest("GET", "/", http.NoBody))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/post", w.Header().Get("Location"))
}

func TestPageHandler_ShowCreatesSession(t *testing.T) {
	forms := new(MockAdFormService)
	cat := new(MockCatalogService)
	forms.On("CreateDraft", mock.Anything).Return(newDraft("d1"), nil)
	cat.On("Catalog", mock.Anything).Return(catalog.Default(), nil)

	w := serve(newPageRouter(forms, cat), httptest.NewRequest("GET", "/post", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Post now")
	assert.Contains(t, w.Body.String(), `<option value="Toyota">`)

	cookie := sessionCookie(t, w)
	assert.Equal(t, "d1", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)
	forms.AssertExpectations(t)
}

func TestPageHandler_ShowResumesSession(t *testing.T) {
	forms := new(MockAdFormService)
	cat := new(MockCatalogService)
	draft := newDraft("d1")
	draft.Draft.Title = "Family car"
	forms.On("GetDraft", mock.Anything, "d1").Return(draft, nil)
	cat.On("Catalog", mock.Anything).Return(catalog.Default(), nil)

	req := httptest.NewRequest("GET", "/post", http.NoBody)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "d1"})
	w := serve(newPageRouter(forms, cat), req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Family car"`)
	forms.AssertNotCalled(t, "CreateDraft", mock.Anything)
}

func TestPageHandler_ShowReplacesExpiredSession(t *testing.T) {
	forms := new(MockAdFormService)
	cat := new(MockCatalogService)
	forms.On("GetDraft", mock.Anything, "old").Return(nil, pkgerrors.NotFoundError("draft"))
	forms.On("CreateDraft", mock.Anything).Return(newDraft("new"), nil)
	cat.On("Catalog", mock.Anything).Return(catalog.Default(), nil)

	req := httptest.NewRequest("GET", "/post", http.NoBody)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "old"})
	w := serve(newPageRouter(forms, cat), req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new", sessionCookie(t, w).Value)
}

func TestPageHandler_ShowCatalogUnavailable(t *testing.T) {
	forms := new(MockAdFormService)
	cat := new(MockCatalogService)
	forms.On("CreateDraft", mock.Anything).Return(newDraft("d1"), nil)
	cat.On("Catalog", mock.Anything).Return(nil, pkgerrors.ErrUnavailable)

	w := serve(newPageRouter(forms, cat), httptest.NewRequest("GET", "/post", http.NoBody))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPageHandler_PostAppliesChangedFieldsAndSubmits(t *testing.T) {
	forms := new(MockAdFormService)
	draft := newDraft("d1")
	draft.Draft.Brand = "Toyota"
	draft.Draft.Model = "Camry"

	forms.On("GetDraft", mock.Anything, "d1").Return(draft, nil)
	forms.On("SetField", mock.Anything, "d1", "brand", "Honda").Return(draft, nil).Once()
	forms.On("SetField", mock.Anything, "d1", "title", "Clean Honda").Return(draft, nil).Once()
	forms.On("UploadImage", mock.Anything, "d1", 0, mock.Anything).Return(nil).Once()
	forms.On("WaitUploads", mock.Anything, "d1").Return(nil).Once()
	forms.On("Submit", mock.Anything, "d1").Return(&models.SubmitResponse{Success: true}, nil).Once()

	body, contentType := multipartBody(t, map[string]string{
		"brand":   "Honda",
		"model":   "Camry",
		"title":   "Clean Honda",
		"region":  adform.DefaultRegion,
		"name":    adform.DefaultName,
		"country": "Nepal",
		"intent":  "submit",
	}, map[string][]byte{"image_0": []byte("png")})
	req := httptest.NewRequest("POST", "/post", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "d1"})
	w := serve(newPageRouter(forms, new(MockCatalogService)), req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/post", w.Header().Get("Location"))
	forms.AssertExpectations(t)
	forms.AssertNumberOfCalls(t, "SetField", 2)
}

func TestPageHandler_PostSkipsRejectedEdits(t *testing.T) {
	forms := new(MockAdFormService)
	forms.On("GetDraft", mock.Anything, "d1").Return(newDraft("d1"), nil)
	forms.On("SetField", mock.Anything, "d1", "model", "Nope").
		Return(nil, pkgerrors.InvalidInputError("model", "Value is not one of the offered options"))
	forms.On("SetField", mock.Anything, "d1", "phone", "+919812345678").Return(newDraft("d1"), nil)
	forms.On("WaitUploads", mock.Anything, "d1").Return(nil)

	form := url.Values{"model": {"Nope"}, "phone": {"+919812345678"}, "intent": {"update"}}
	req := httptest.NewRequest("POST", "/post", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "d1"})
	w := serve(newPageRouter(forms, new(MockCatalogService)), req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	forms.AssertExpectations(t)
	forms.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestPageHandler_PostTabIntents(t *testing.T) {
	tests := []struct {
		intent string
		tab    string
	}{
		{intent: "tab-list", tab: "list"},
		{intent: "tab-current", tab: "current"},
	}

	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			forms := new(MockAdFormService)
			forms.On("GetDraft", mock.Anything, "d1").Return(newDraft("d1"), nil)
			forms.On("WaitUploads", mock.Anything, "d1").Return(nil)
			forms.On("SelectLocationTab", mock.Anything, "d1", tt.tab).Return(newDraft("d1"), nil).Once()

			form := url.Values{"intent": {tt.intent}}
			req := httptest.NewRequest("POST", "/post", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "d1"})
			w := serve(newPageRouter(forms, new(MockCatalogService)), req)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			forms.AssertExpectations(t)
		})
	}
}

func TestPageHandler_PostWithoutSessionStartsOne(t *testing.T) {
	forms := new(MockAdFormService)
	forms.On("CreateDraft", mock.Anything).Return(newDraft("fresh"), nil)
	forms.On("WaitUploads", mock.Anything, "fresh").Return(nil)

	req := httptest.NewRequest("POST", "/post", strings.NewReader("intent=update"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(newPageRouter(forms, new(MockCatalogService)), req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "fresh", sessionCookie(t, w).Value)
}
