package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/apothekehub/backend/internal/application/feedsync"
	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
	syncdomain "github.com/apothekehub/backend/internal/domain/sync"
	"github.com/apothekehub/backend/internal/infrastructure/cache"
	"github.com/apothekehub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const syncTestFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss xmlns:g="http://base.google.com/ns/1.0" version="2.0">
  <channel>
    <item>
      <g:id>TEA-001</g:id>
      <g:title>Chamomile Dream</g:title>
      <g:price>4,99 EUR</g:price>
      <g:product_type>Herbal Tea | Chamomile</g:product_type>
    </item>
  </channel>
</rss>`

type staticFeedSource struct {
	document string
}

func (s *staticFeedSource) Fetch(ctx context.Context, feedURL string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.document)), nil
}

type passthroughTxManager struct {
	repos feedsync.BatchRepos
}

func (m *passthroughTxManager) InTransaction(ctx context.Context, fn func(feedsync.BatchRepos) error) error {
	return fn(m.repos)
}

// MockFeedTaxonomyRepository implements catalog.FeedTaxonomyRepository for testing
type MockFeedTaxonomyRepository struct {
	mock.Mock
}

func (m *MockFeedTaxonomyRepository) FindByCategory(ctx context.Context, category string) (*catalog.FeedTaxonomy, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.FeedTaxonomy), args.Error(1)
}

func (m *MockFeedTaxonomyRepository) FindAll(ctx context.Context) ([]catalog.FeedTaxonomy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.FeedTaxonomy), args.Error(1)
}

func (m *MockFeedTaxonomyRepository) Save(ctx context.Context, taxonomy *catalog.FeedTaxonomy) error {
	args := m.Called(ctx, taxonomy)
	return args.Error(0)
}

type syncFixture struct {
	productRepo       *MockProductRepository
	taxonomyRepo      *MockFeedTaxonomyRepository
	backupRepo        *MockMarketingBackupRepository
	galleryRepo       *MockGalleryImageRepository
	galleryBackupRepo *MockGalleryBackupRepository
	historyRepo       *MockSyncHistoryRepository
	lock              *cache.InMemorySyncLock
	engine            *gin.Engine
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()

	f := &syncFixture{
		productRepo:       new(MockProductRepository),
		taxonomyRepo:      new(MockFeedTaxonomyRepository),
		backupRepo:        new(MockMarketingBackupRepository),
		galleryRepo:       new(MockGalleryImageRepository),
		galleryBackupRepo: new(MockGalleryBackupRepository),
		historyRepo:       new(MockSyncHistoryRepository),
		lock:              cache.NewInMemorySyncLock(),
	}
	t.Cleanup(func() { f.lock.Close() })

	txManager := &passthroughTxManager{repos: feedsync.BatchRepos{
		Products:       f.productRepo,
		Taxonomies:     f.taxonomyRepo,
		Backups:        f.backupRepo,
		GalleryImages:  f.galleryRepo,
		GalleryBackups: f.galleryBackupRepo,
	}}

	syncService := feedsync.NewSyncService(
		&staticFeedSource{document: syncTestFeed},
		txManager,
		f.historyRepo,
		f.lock,
		nil,
		feedsync.SyncServiceConfig{DefaultFeedURL: "https://feeds.example.com/products.xml"},
		nil,
	)
	historyService := feedsync.NewHistoryService(f.historyRepo)
	h := NewSyncHandler(syncService, historyService)

	f.engine = gin.New()
	group := f.engine.Group("/api/v1")
	group.POST("/sync", h.TriggerSync)
	group.GET("/sync/history", h.ListHistory)
	group.GET("/sync/history/latest", h.GetLatestRun)
	group.GET("/sync/history/:id", h.GetRun)

	return f
}

func (f *syncFixture) do(method, path string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func completedRun(t *testing.T) *syncdomain.SyncHistory {
	t.Helper()
	run, err := syncdomain.NewSyncHistory("https://feeds.example.com/products.xml", syncdomain.SyncTriggerManual)
	require.NoError(t, err)
	require.NoError(t, run.Start())
	require.NoError(t, run.Complete(3, 2, 1, 0))
	return run
}

func TestSyncHandler_TriggerSync(t *testing.T) {
	t.Run("runs a sync and reports counters", func(t *testing.T) {
		f := newSyncFixture(t)
		f.productRepo.On("FindBySKU", mock.Anything, "TEA-001").Return(nil, shared.ErrNotFound)
		f.productRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.backupRepo.On("FindBySKU", mock.Anything, "TEA-001").Return(nil, shared.ErrNotFound)
		f.taxonomyRepo.On("FindByCategory", mock.Anything, "Herbal Tea").Return(nil, shared.ErrNotFound)
		f.taxonomyRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.historyRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		w := f.do(http.MethodPost, "/api/v1/sync", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		data := resp.Data.(map[string]any)
		assert.Equal(t, float64(1), data["total"])
		assert.Equal(t, float64(1), data["created"])
		assert.Equal(t, float64(0), data["skipped"])
	})

	t.Run("returns conflict while another sync holds the lock", func(t *testing.T) {
		f := newSyncFixture(t)
		held, err := f.lock.Acquire(context.Background(), "feed-sync", time.Minute)
		require.NoError(t, err)
		require.True(t, held)

		w := f.do(http.MethodPost, "/api/v1/sync", "")

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeSyncInProgress, resp.Error.Code)
	})

	t.Run("rejects a malformed feed URL override", func(t *testing.T) {
		f := newSyncFixture(t)

		w := f.do(http.MethodPost, "/api/v1/sync", `{"feed_url":"not a url"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSyncHandler_GetLatestRun(t *testing.T) {
	t.Run("returns the most recent run", func(t *testing.T) {
		f := newSyncFixture(t)
		run := completedRun(t)
		f.historyRepo.On("FindLatest", mock.Anything).Return(run, nil)

		w := f.do(http.MethodGet, "/api/v1/sync/history/latest", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.Equal(t, "completed", data["status"])
		assert.Equal(t, float64(3), data["total_items"])
	})
}

func TestSyncHandler_GetRun(t *testing.T) {
	t.Run("rejects malformed ID", func(t *testing.T) {
		f := newSyncFixture(t)

		w := f.do(http.MethodGet, "/api/v1/sync/history/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSyncHandler_ListHistory(t *testing.T) {
	t.Run("rejects unknown status filter", func(t *testing.T) {
		f := newSyncFixture(t)

		w := f.do(http.MethodGet, "/api/v1/sync/history?status=bogus", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("lists runs with pagination meta", func(t *testing.T) {
		f := newSyncFixture(t)
		run := completedRun(t)
		f.historyRepo.On("FindAll", mock.Anything, mock.Anything, 1, 20).Return(&syncdomain.SyncHistoryListResult{
			Items:      []*syncdomain.SyncHistory{run},
			TotalCount: 1,
		}, nil)

		w := f.do(http.MethodGet, "/api/v1/sync/history?page=1&page_size=20", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
	})
}
