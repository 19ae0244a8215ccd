package feedsync

import (
	"context"
	"io"
	"strings"
	stdsync "sync"

	"github.com/apothekehub/backend/internal/domain/catalog"
	"github.com/apothekehub/backend/internal/domain/shared"
	syncdomain "github.com/apothekehub/backend/internal/domain/sync"
	"github.com/google/uuid"
)

// fakeFeedSource serves a fixed document, or a fixed error
type fakeFeedSource struct {
	document string
	err      error
	fetches  int
}

func (f *fakeFeedSource) Fetch(_ context.Context, _ string) (io.ReadCloser, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.document)), nil
}

// fakeProductRepo is an in-memory catalog.ProductRepository
type fakeProductRepo struct {
	mu       stdsync.Mutex
	products map[uuid.UUID]*catalog.Product
	saveErr  error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU != nil && *p.SKU == sku {
			copied := *p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindTop(_ context.Context) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) FindAllSKUs(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var skus []string
	for _, p := range r.products {
		if p.SKU != nil && *p.SKU != "" {
			skus = append(skus, *p.SKU)
		}
	}
	return skus, nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	_, err := r.FindBySKU(ctx, sku)
	if err == nil {
		return true, nil
	}
	return false, nil
}

// fakeTaxonomyRepo is an in-memory catalog.FeedTaxonomyRepository
type fakeTaxonomyRepo struct {
	mu         stdsync.Mutex
	taxonomies map[string]*catalog.FeedTaxonomy
}

func newFakeTaxonomyRepo() *fakeTaxonomyRepo {
	return &fakeTaxonomyRepo{taxonomies: make(map[string]*catalog.FeedTaxonomy)}
}

func (r *fakeTaxonomyRepo) FindByCategory(_ context.Context, category string) (*catalog.FeedTaxonomy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.taxonomies[category]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTaxonomyRepo) FindAll(_ context.Context) ([]catalog.FeedTaxonomy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.FeedTaxonomy, 0, len(r.taxonomies))
	for _, t := range r.taxonomies {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTaxonomyRepo) Save(_ context.Context, taxonomy *catalog.FeedTaxonomy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *taxonomy
	r.taxonomies[taxonomy.Category] = &copied
	return nil
}

// fakeBackupRepo is an in-memory catalog.MarketingBackupRepository
type fakeBackupRepo struct {
	mu      stdsync.Mutex
	backups map[string]*catalog.MarketingBackup
}

func newFakeBackupRepo() *fakeBackupRepo {
	return &fakeBackupRepo{backups: make(map[string]*catalog.MarketingBackup)}
}

func (r *fakeBackupRepo) FindBySKU(_ context.Context, sku string) (*catalog.MarketingBackup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.backups[sku]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeBackupRepo) FindAll(_ context.Context) ([]catalog.MarketingBackup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.MarketingBackup, 0, len(r.backups))
	for _, b := range r.backups {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBackupRepo) Save(_ context.Context, backup *catalog.MarketingBackup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *backup
	r.backups[backup.SKU] = &copied
	return nil
}

func (r *fakeBackupRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for sku, b := range r.backups {
		if b.ID == id {
			delete(r.backups, sku)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeBackupRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.backups)), nil
}

// fakeGalleryRepo is an in-memory catalog.GalleryImageRepository
type fakeGalleryRepo struct {
	mu     stdsync.Mutex
	images map[uuid.UUID]*catalog.GalleryImage
}

func newFakeGalleryRepo() *fakeGalleryRepo {
	return &fakeGalleryRepo{images: make(map[uuid.UUID]*catalog.GalleryImage)}
}

func (r *fakeGalleryRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if img, ok := r.images[id]; ok {
		copied := *img
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeGalleryRepo) FindByProduct(_ context.Context, productID uuid.UUID) ([]catalog.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.GalleryImage
	for _, img := range r.images {
		if img.ProductID == productID {
			out = append(out, *img)
		}
	}
	return out, nil
}

func (r *fakeGalleryRepo) Save(_ context.Context, image *catalog.GalleryImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *image
	r.images[image.ID] = &copied
	return nil
}

func (r *fakeGalleryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.images, id)
	return nil
}

func (r *fakeGalleryRepo) DeleteByProduct(_ context.Context, productID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, img := range r.images {
		if img.ProductID == productID {
			delete(r.images, id)
		}
	}
	return nil
}

// fakeGalleryBackupRepo is an in-memory catalog.GalleryBackupRepository
type fakeGalleryBackupRepo struct {
	mu      stdsync.Mutex
	backups []catalog.GalleryBackup
}

func newFakeGalleryBackupRepo() *fakeGalleryBackupRepo {
	return &fakeGalleryBackupRepo{}
}

func (r *fakeGalleryBackupRepo) FindBySKU(_ context.Context, sku string) ([]catalog.GalleryBackup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.GalleryBackup
	for _, b := range r.backups {
		if b.SKU == sku {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeGalleryBackupRepo) ExistsBySKUAndKey(_ context.Context, sku, storageKey string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.backups {
		if b.SKU == sku && b.StorageKey == storageKey {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeGalleryBackupRepo) Save(_ context.Context, backup *catalog.GalleryBackup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backups = append(r.backups, *backup)
	return nil
}

func (r *fakeGalleryBackupRepo) DeleteBySKU(_ context.Context, sku string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.backups[:0]
	for _, b := range r.backups {
		if b.SKU != sku {
			kept = append(kept, b)
		}
	}
	r.backups = kept
	return nil
}

func (r *fakeGalleryBackupRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.backups)), nil
}

// fakeTxManager hands the shared fakes to the batch function. It does
// not roll back; batch atomicity is covered by the repository tests.
type fakeTxManager struct {
	products       *fakeProductRepo
	taxonomies     *fakeTaxonomyRepo
	backups        *fakeBackupRepo
	gallery        *fakeGalleryRepo
	galleryBackups *fakeGalleryBackupRepo
	calls          int
}

func (m *fakeTxManager) InTransaction(_ context.Context, fn func(repos BatchRepos) error) error {
	m.calls++
	return fn(BatchRepos{
		Products:       m.products,
		Taxonomies:     m.taxonomies,
		Backups:        m.backups,
		GalleryImages:  m.gallery,
		GalleryBackups: m.galleryBackups,
	})
}

// fakeHistoryRepo is an in-memory sync history store
type fakeHistoryRepo struct {
	mu      stdsync.Mutex
	entries map[uuid.UUID]*syncdomain.SyncHistory
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{entries: make(map[uuid.UUID]*syncdomain.SyncHistory)}
}

func (r *fakeHistoryRepo) FindByID(_ context.Context, id uuid.UUID) (*syncdomain.SyncHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.entries[id]; ok {
		copied := *h
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeHistoryRepo) FindAll(_ context.Context, _ syncdomain.SyncHistoryFilter, page, pageSize int) (*syncdomain.SyncHistoryListResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := &syncdomain.SyncHistoryListResult{Page: page, PageSize: pageSize}
	for _, h := range r.entries {
		copied := *h
		result.Items = append(result.Items, &copied)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeHistoryRepo) FindLatest(_ context.Context) (*syncdomain.SyncHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *syncdomain.SyncHistory
	for _, h := range r.entries {
		if latest == nil || h.CreatedAt.After(latest.CreatedAt) {
			latest = h
		}
	}
	if latest == nil {
		return nil, shared.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeHistoryRepo) Save(_ context.Context, history *syncdomain.SyncHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *history
	r.entries[history.ID] = &copied
	return nil
}

func (r *fakeHistoryRepo) single() *syncdomain.SyncHistory {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.entries {
		return h
	}
	return nil
}

// capturingEventBus records published events
type capturingEventBus struct {
	mu     stdsync.Mutex
	events []shared.DomainEvent
}

func (b *capturingEventBus) Publish(_ context.Context, events ...shared.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, events...)
	return nil
}

func (b *capturingEventBus) published() []shared.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]shared.DomainEvent(nil), b.events...)
}

// fakeArchiver records archive calls and reports a fixed outcome
type fakeArchiver struct {
	backedUp bool
	reason   string
	err      error
	archived []uuid.UUID
}

func (a *fakeArchiver) ArchiveProduct(_ context.Context, product *catalog.Product) (bool, string, error) {
	a.archived = append(a.archived, product.ID)
	return a.backedUp, a.reason, a.err
}
