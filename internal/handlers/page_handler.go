package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/postad/postad-api/internal/adform"
	"github.com/postad/postad-api/internal/models"
	"github.com/postad/postad-api/internal/services"
	"github.com/postad/postad-api/internal/view"
	pkgerrors "github.com/postad/postad-api/pkg/errors"
	"github.com/postad/postad-api/pkg/logger"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"
)

// SessionCookie holds the form session id of a browser
const SessionCookie = "postad_session"

const pagePath = "/post"

// PageConfig tunes the server-rendered form
type PageConfig struct {
	SessionTTL           time.Duration
	NotificationInterval time.Duration
	UploadTimeout        time.Duration
	SecureCookie         bool
}

// PageHandler serves the form as a plain HTML page backed by the same
// form sessions as the drafts API
type PageHandler struct {
	forms   services.AdFormServiceInterface
	catalog services.CatalogServiceInterface
	cfg     PageConfig
}

func NewPageHandler(forms services.AdFormServiceInterface, catalog services.CatalogServiceInterface, cfg PageConfig) *PageHandler {
	if cfg.NotificationInterval <= 0 {
		cfg.NotificationInterval = adform.DefaultNotificationInterval
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = 10 * time.Second
	}
	return &PageHandler{forms: forms, catalog: catalog, cfg: cfg}
}

func (h *PageHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, pagePath)
}

func (h *PageHandler) Show(c *gin.Context) {
	draft, err := h.session(c)
	if err != nil {
		h.respondPageError(c, err)
		return
	}

	cat, err := h.catalog.Catalog(c.Request.Context())
	if err != nil {
		h.respondPageError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	renderHTML(c, http.StatusOK, view.Page(view.PageData{
		Action:   pagePath,
		Form:     draft.Snapshot,
		Catalog:  cat,
		Interval: int(h.cfg.NotificationInterval / time.Second),
	}))
}

// Post applies the edits of a page submission, then performs its intent
func (h *PageHandler) Post(c *gin.Context) {
	ctx := c.Request.Context()

	draft, err := h.session(c)
	if err != nil {
		h.respondPageError(c, err)
		return
	}

	form, formErr := c.MultipartForm()
	if formErr != nil && !errors.Is(formErr, http.ErrNotMultipart) {
		h.respondPageError(c, multipartError(formErr))
		return
	}

	h.applyFields(c, draft)
	if form != nil {
		h.startUploads(c, draft.ID, form.File)
	}

	waitCtx, cancel := context.WithTimeout(ctx, h.cfg.UploadTimeout)
	defer cancel()
	if err := h.forms.WaitUploads(waitCtx, draft.ID); err != nil {
		logger.Warn("Uploads still running after timeout", zap.String("draft_id", draft.ID), zap.Error(err))
	}

	switch intent := c.PostForm("intent"); intent {
	case view.IntentSubmit:
		_, err = h.forms.Submit(ctx, draft.ID)
	case view.IntentTabList:
		_, err = h.forms.SelectLocationTab(ctx, draft.ID, string(adform.TabList))
	case view.IntentTabCurrent:
		_, err = h.forms.SelectLocationTab(ctx, draft.ID, string(adform.TabCurrent))
	}
	if err != nil && !errors.Is(err, pkgerrors.ErrNotFound) {
		h.respondPageError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, pagePath)
}

// applyFields forwards every posted value that differs from the draft as
// it was rendered. Fields are applied in form order so a brand change
// empties the model before the stale model value is looked at.
func (h *PageHandler) applyFields(c *gin.Context, draft *models.DraftResponse) {
	for _, field := range adform.ScalarFields {
		if field == adform.FieldCategory || field == adform.FieldCountry {
			continue
		}
		value, ok := c.GetPostForm(string(field))
		if !ok || value == draft.Draft.Get(field) {
			continue
		}
		if _, err := h.forms.SetField(c.Request.Context(), draft.ID, string(field), value); err != nil {
			attachError(c, err)
			logger.Debug("Field edit skipped",
				zap.String("draft_id", draft.ID),
				zap.String("field", string(field)),
				zap.Error(err))
		}
	}
}

func (h *PageHandler) startUploads(c *gin.Context, id string, files map[string][]*multipart.FileHeader) {
	ctx := c.Request.Context()
	start := func(name string, upload func(adform.OpenFunc) error) {
		fhs := files[name]
		if len(fhs) == 0 || fhs[0].Size == 0 {
			return
		}
		open, err := bufferUpload(fhs[0])
		if err == nil {
			err = upload(open)
		}
		if err != nil {
			attachError(c, err)
			logger.Warn("Upload not started", zap.String("draft_id", id), zap.String("input", name), zap.Error(err))
		}
	}

	for i := 0; i < adform.MaxImages; i++ {
		start(view.ImageSlotName(i), func(open adform.OpenFunc) error {
			return h.forms.UploadImage(ctx, id, i, open)
		})
	}
	start(view.ProfileImageName, func(open adform.OpenFunc) error {
		return h.forms.UploadProfileImage(ctx, id, open)
	})
}

// session loads the draft named by the session cookie, starting a new
// one when it is missing or expired. The cookie is refreshed either way.
func (h *PageHandler) session(c *gin.Context) (*models.DraftResponse, error) {
	ctx := c.Request.Context()

	var draft *models.DraftResponse
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		draft, err = h.forms.GetDraft(ctx, id)
		if err != nil && !errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, err
		}
	}
	if draft == nil {
		var err error
		if draft, err = h.forms.CreateDraft(ctx); err != nil {
			return nil, err
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, draft.ID, int(h.cfg.SessionTTL/time.Second), "/", "", h.cfg.SecureCookie, true)
	return draft, nil
}

func (h *PageHandler) respondPageError(c *gin.Context, err error) {
	attachError(c, err)

	status, message := http.StatusInternalServerError, "Something went wrong. Please try again."
	switch {
	case errors.Is(err, pkgerrors.ErrTooLarge):
		status, message = http.StatusRequestEntityTooLarge, "The selected files are too large."
	case errors.Is(err, pkgerrors.ErrInvalidInput):
		status, message = http.StatusBadRequest, "The form could not be read."
	case errors.Is(err, pkgerrors.ErrUnavailable):
		status, message = http.StatusServiceUnavailable, "The form is not available yet. Please try again shortly."
	}
	c.String(status, message)
}

// renderHTML writes a gomponents node as the response body
func renderHTML(c *gin.Context, status int, node g.Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := node.Render(c.Writer); err != nil {
		attachError(c, err)
	}
}
