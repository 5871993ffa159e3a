package cache

import (
	"time"

	"github.com/google/uuid"
	"github.com/postad/postad-api/internal/adform"
	"github.com/postad/postad-api/pkg/logger"
	"github.com/postad/postad-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	formCacheName    = "form_sessions"
	formCleanupEvery = time.Minute
)

// FormCache keeps one form per session ID. An entry expires after ttl
// without access; every Get pushes the deadline out again.
type FormCache struct {
	cache   *gocache.Cache
	ttl     time.Duration
	newForm func() *adform.Form
}

// NewFormCache creates a session store building new forms with newForm
func NewFormCache(ttl time.Duration, newForm func() *adform.Form) *FormCache {
	c := gocache.New(ttl, formCleanupEvery)
	c.OnEvicted(func(id string, _ interface{}) {
		metrics.FormSessions.Dec()
		logger.Debug("Form session evicted", zap.String("session_id", id))
	})

	return &FormCache{
		cache:   c,
		ttl:     ttl,
		newForm: newForm,
	}
}

// Create starts a new session and returns its ID
func (fc *FormCache) Create() (string, *adform.Form) {
	id := uuid.NewString()
	form := fc.newForm()

	fc.cache.Set(id, form, fc.ttl)
	metrics.FormSessions.Inc()
	metrics.CacheSize.WithLabelValues(formCacheName).Set(float64(fc.cache.ItemCount()))

	return id, form
}

// Get returns the form of a live session and renews its expiry
func (fc *FormCache) Get(id string) (*adform.Form, bool) {
	data, found := fc.cache.Get(id)
	if !found {
		metrics.CacheMisses.WithLabelValues(formCacheName).Inc()
		return nil, false
	}

	form, ok := data.(*adform.Form)
	if !ok {
		logger.Error("Invalid form cache data type", zap.String("session_id", id))
		fc.cache.Delete(id)
		return nil, false
	}

	if !fc.renew(id, form) {
		metrics.CacheMisses.WithLabelValues(formCacheName).Inc()
		return nil, false
	}

	metrics.CacheHits.WithLabelValues(formCacheName).Inc()
	return form, true
}

// renew pushes out the expiry of a session that is still stored. A session
// deleted or expired since it was read stays gone.
func (fc *FormCache) renew(id string, form *adform.Form) bool {
	return fc.cache.Replace(id, form, fc.ttl) == nil
}

// Delete ends a session
func (fc *FormCache) Delete(id string) {
	fc.cache.Delete(id)
}

// Count returns the number of stored sessions, expired ones included until
// the next cleanup
func (fc *FormCache) Count() int {
	return fc.cache.ItemCount()
}
