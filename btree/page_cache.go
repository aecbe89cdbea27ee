package btree

import (
	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
)

// cachePages is the number of pages the read cache admits (1 MB of pages).
const cachePages = 256

// CachedPager is a read-through page cache layered over another Pager.
// Writes go to the underlying pager and update the cache in the same call,
// so a read never observes stale bytes. External behavior is identical to
// the wrapped pager.
type CachedPager struct {
	inner Pager
	cache *ristretto.Cache[uint64, []byte]
}

func NewCachedPager(inner Pager) (*CachedPager, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, []byte]{
		NumCounters: cachePages * 10,
		MaxCost:     cachePages * PageSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create page cache")
	}
	return &CachedPager{inner: inner, cache: cache}, nil
}

func (p *CachedPager) ReadPage(id PageID) ([]byte, error) {
	if data, ok := p.cache.Get(uint64(id)); ok {
		out := make([]byte, PageSize)
		copy(out, data)
		return out, nil
	}

	data, err := p.inner.ReadPage(id)
	if err != nil {
		return nil, err
	}

	cached := make([]byte, PageSize)
	copy(cached, data)
	p.cache.Set(uint64(id), cached, PageSize)
	// Wait here too: if this Set were still buffered when a later write to
	// the same page calls Set, ristretto would admit this older copy and
	// reject the newer one, leaving the cache stale.
	p.cache.Wait()
	return data, nil
}

func (p *CachedPager) WritePage(id PageID, data []byte) error {
	if err := p.inner.WritePage(id, data); err != nil {
		return err
	}
	cached := make([]byte, PageSize)
	copy(cached, data)
	p.cache.Set(uint64(id), cached, PageSize)
	// Ristretto admits sets asynchronously; wait so a read-after-write
	// never races the admission buffer into serving an older copy.
	p.cache.Wait()
	return nil
}

func (p *CachedPager) AllocatePage() (PageID, error) {
	return p.inner.AllocatePage()
}

func (p *CachedPager) TotalPages() PageID {
	return p.inner.TotalPages()
}

func (p *CachedPager) Sync() error {
	return p.inner.Sync()
}

func (p *CachedPager) Close() error {
	p.cache.Close()
	return p.inner.Close()
}
