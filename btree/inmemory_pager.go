package btree

import "github.com/pkg/errors"

// InMemoryPager is a map-backed Pager used by tests.
type InMemoryPager struct {
	pages    map[PageID][]byte
	nextPage PageID
	closed   bool
}

func NewInMemoryPager() *InMemoryPager {
	return &InMemoryPager{
		pages:    make(map[PageID][]byte),
		nextPage: 1,
	}
}

func (p *InMemoryPager) ReadPage(id PageID) ([]byte, error) {
	if p.closed {
		return nil, ErrClosed
	}
	data, ok := p.pages[id]
	if !ok {
		return nil, errors.Errorf("page %d not found", id)
	}
	// Return a copy so the caller cannot modify internal state directly
	// without calling WritePage.
	out := make([]byte, PageSize)
	copy(out, data)
	return out, nil
}

func (p *InMemoryPager) WritePage(id PageID, data []byte) error {
	if p.closed {
		return ErrClosed
	}
	if len(data) != PageSize {
		return errors.Errorf("data size %d does not match page size %d", len(data), PageSize)
	}
	dest := make([]byte, PageSize)
	copy(dest, data)
	p.pages[id] = dest
	return nil
}

func (p *InMemoryPager) AllocatePage() (PageID, error) {
	if p.closed {
		return 0, ErrClosed
	}
	id := p.nextPage
	p.nextPage++
	p.pages[id] = make([]byte, PageSize)
	return id, nil
}

func (p *InMemoryPager) TotalPages() PageID {
	return p.nextPage
}

func (p *InMemoryPager) Sync() error {
	if p.closed {
		return ErrClosed
	}
	return nil
}

func (p *InMemoryPager) Close() error {
	// Dropping the map helps catch use-after-close bugs.
	p.pages = nil
	p.closed = true
	return nil
}
