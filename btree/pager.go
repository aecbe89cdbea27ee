package btree

import (
	"os"

	"github.com/pkg/errors"
)

// Pager is the persistence abstraction: fixed 4096-byte pages addressed by
// page number. Pages are never shrunk or reused once allocated.
type Pager interface {
	ReadPage(id PageID) ([]byte, error)
	WritePage(id PageID, data []byte) error
	AllocatePage() (PageID, error)
	TotalPages() PageID
	Sync() error
	Close() error
}

// OnDiskPager implements Pager over a single table file.
type OnDiskPager struct {
	file     *os.File
	filePath string
	nextPage PageID
}

// NewOnDiskPager opens or creates the table file at path.
func NewOnDiskPager(path string) (*OnDiskPager, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open table file %s", path)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "stat table file %s", path)
	}

	numPages := PageID(stat.Size() / PageSize)
	if numPages == 0 {
		// Page 0 is reserved for the header; node pages start at 1.
		numPages = 1
	}

	return &OnDiskPager{
		file:     file,
		filePath: path,
		nextPage: numPages,
	}, nil
}

// ReadPage reads the 4KB page at the given id. Fails if the file is
// shorter than (id+1)*4096 bytes or the read is truncated.
func (p *OnDiskPager) ReadPage(id PageID) ([]byte, error) {
	if p.file == nil {
		return nil, ErrClosed
	}

	page := make([]byte, PageSize)
	offset := int64(id) * PageSize

	n, err := p.file.ReadAt(page, offset)
	if err != nil {
		return nil, errors.Wrapf(err, "read page %d (got %d of %d bytes)", id, n, PageSize)
	}
	return page, nil
}

// WritePage performs a positioned write of exactly one page.
func (p *OnDiskPager) WritePage(id PageID, data []byte) error {
	if p.file == nil {
		return ErrClosed
	}
	if len(data) != PageSize {
		return errors.Errorf("data size %d does not match page size %d", len(data), PageSize)
	}

	offset := int64(id) * PageSize
	if _, err := p.file.WriteAt(data, offset); err != nil {
		return errors.Wrapf(err, "write page %d", id)
	}
	return nil
}

// AllocatePage appends a new all-zero page at end-of-file and returns its
// id. This is the only way page ids are created, so ids are dense and
// monotonically increasing from 1.
func (p *OnDiskPager) AllocatePage() (PageID, error) {
	if p.file == nil {
		return 0, ErrClosed
	}

	id := p.nextPage
	emptyPage := make([]byte, PageSize)
	offset := int64(id) * PageSize
	if _, err := p.file.WriteAt(emptyPage, offset); err != nil {
		return 0, errors.Wrapf(err, "allocate page %d", id)
	}
	p.nextPage++
	return id, nil
}

// TotalPages returns the number of pages in the file, header included.
func (p *OnDiskPager) TotalPages() PageID {
	return p.nextPage
}

// Sync flushes pending writes to disk.
func (p *OnDiskPager) Sync() error {
	if p.file == nil {
		return ErrClosed
	}
	return p.file.Sync()
}

// Close syncs and closes the table file.
func (p *OnDiskPager) Close() error {
	if p.file == nil {
		return nil
	}
	if err := p.file.Sync(); err != nil {
		p.file.Close()
		p.file = nil
		return errors.Wrap(err, "sync before close")
	}
	err := p.file.Close()
	p.file = nil
	return err
}
