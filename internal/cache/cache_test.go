package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/postad/postad-api/internal/adform"
	"github.com/postad/postad-api/internal/catalog"
	"github.com/postad/postad-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	loads atomic.Int32
	fail  int32
}

func (s *countingSource) Load(context.Context) (*catalog.Catalog, error) {
	n := s.loads.Add(1)
	if n <= s.fail {
		return nil, errors.New("source down")
	}
	return catalog.Default(), nil
}

func newForm() *adform.Form {
	return adform.New(adform.Config{})
}

func TestFormCache_CreateAndGet(t *testing.T) {
	fc := NewFormCache(time.Minute, newForm)

	id, form := fc.Create()
	require.NotEmpty(t, id)

	got, ok := fc.Get(id)
	require.True(t, ok)
	assert.Same(t, form, got)
	assert.Equal(t, 1, fc.Count())
}

func TestFormCache_SessionsAreIndependent(t *testing.T) {
	fc := NewFormCache(time.Minute, newForm)

	idA, a := fc.Create()
	idB, b := fc.Create()
	require.NoError(t, a.SetField(adform.FieldTitle, "first"))

	assert.NotEqual(t, idA, idB)
	assert.Empty(t, b.Snapshot().Draft.Title)
}

func TestFormCache_UnknownAndDeleted(t *testing.T) {
	fc := NewFormCache(time.Minute, newForm)

	_, ok := fc.Get("nope")
	assert.False(t, ok)

	id, _ := fc.Create()
	fc.Delete(id)
	_, ok = fc.Get(id)
	assert.False(t, ok)
}

func TestFormCache_Expires(t *testing.T) {
	fc := NewFormCache(20*time.Millisecond, newForm)
	id, _ := fc.Create()

	// Any Get renews the session, so nothing may look at it while it ages.
	time.Sleep(60 * time.Millisecond)

	_, ok := fc.Get(id)
	assert.False(t, ok)
}

func TestFormCache_RenewDoesNotReviveDeleted(t *testing.T) {
	fc := NewFormCache(time.Minute, newForm)
	id, form := fc.Create()
	require.True(t, fc.renew(id, form))

	fc.Delete(id)

	assert.False(t, fc.renew(id, form))
	_, ok := fc.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, fc.Count())
}

func TestFormCache_SessionGaugeBalances(t *testing.T) {
	fc := NewFormCache(time.Minute, newForm)
	before := testutil.ToFloat64(metrics.FormSessions)

	id, form := fc.Create()
	_, ok := fc.Get(id)
	require.True(t, ok)
	fc.Delete(id)
	fc.renew(id, form)

	assert.Equal(t, before, testutil.ToFloat64(metrics.FormSessions))
}

func TestFormCache_GetExtendsExpiry(t *testing.T) {
	fc := NewFormCache(80*time.Millisecond, newForm)
	id, _ := fc.Create()

	for i := 0; i < 4; i++ {
		time.Sleep(40 * time.Millisecond)
		_, ok := fc.Get(id)
		require.True(t, ok, "session expired after %d touches", i)
	}
}

func TestCatalogCache_NotReady(t *testing.T) {
	cc := NewCatalogCache(&countingSource{})

	assert.False(t, cc.IsReady())
	_, err := cc.Get(context.Background())
	assert.Error(t, err)
}

func TestCatalogCache_InitializeAndHit(t *testing.T) {
	src := &countingSource{}
	cc := NewCatalogCache(src)

	require.NoError(t, cc.Initialize(context.Background()))
	c, err := cc.Get(context.Background())
	require.NoError(t, err)
	_, err = cc.Get(context.Background())
	require.NoError(t, err)

	assert.True(t, cc.IsReady())
	assert.Equal(t, catalog.Default().Brands, c.Brands)
	assert.Equal(t, int32(1), src.loads.Load())
}

func TestCatalogCache_InitializeRetries(t *testing.T) {
	src := &countingSource{fail: 1}
	cc := NewCatalogCache(src)
	cc.retry.InitialDelay = time.Millisecond
	cc.retry.MaxDelay = time.Millisecond

	require.NoError(t, cc.Initialize(context.Background()))
	assert.Equal(t, int32(2), src.loads.Load())
}

func TestCatalogCache_InitializeFails(t *testing.T) {
	src := &countingSource{fail: 100}
	cc := NewCatalogCache(src)
	cc.retry.MaxRetries = 1
	cc.retry.InitialDelay = time.Millisecond
	cc.retry.MaxDelay = time.Millisecond

	assert.Error(t, cc.Initialize(context.Background()))
	assert.False(t, cc.IsReady())
}

func TestCatalogCache_ReloadsAfterEviction(t *testing.T) {
	src := &countingSource{}
	cc := NewCatalogCache(src)
	require.NoError(t, cc.Initialize(context.Background()))

	cc.cache.Delete(catalogCacheKey)
	_, err := cc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), src.loads.Load())
}
