package btree

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// TestDiskPagerBasicOperations tests allocate/write/read and persistence
// across reopen.
func TestDiskPagerBasicOperations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_table.tbl")

	pager, err := NewOnDiskPager(path)
	if err != nil {
		t.Fatalf("Failed to create disk pager: %v", err)
	}
	defer pager.Close()

	pageID, err := pager.AllocatePage()
	if err != nil {
		t.Fatalf("Failed to allocate page: %v", err)
	}
	if pageID != 1 {
		t.Errorf("Expected first page ID to be 1, got %d", pageID)
	}

	testData := make([]byte, PageSize)
	copy(testData, []byte("Hello, Disk Pager!"))
	if err := pager.WritePage(pageID, testData); err != nil {
		t.Fatalf("Failed to write page: %v", err)
	}

	readData, err := pager.ReadPage(pageID)
	if err != nil {
		t.Fatalf("Failed to read page: %v", err)
	}
	if !bytes.Equal(testData, readData) {
		t.Errorf("Data mismatch: expected %q, got %q", string(testData[:20]), string(readData[:20]))
	}

	pageID2, err := pager.AllocatePage()
	if err != nil {
		t.Fatalf("Failed to allocate second page: %v", err)
	}
	if pageID2 != 2 {
		t.Errorf("Expected second page ID to be 2, got %d", pageID2)
	}

	if err := pager.Sync(); err != nil {
		t.Fatalf("Failed to sync: %v", err)
	}
	pager.Close()

	newPager, err := NewOnDiskPager(path)
	if err != nil {
		t.Fatalf("Failed to reopen pager: %v", err)
	}
	defer newPager.Close()

	if got := newPager.TotalPages(); got != 3 {
		t.Errorf("Expected 3 pages after reopen, got %d", got)
	}
	persistedData, err := newPager.ReadPage(pageID)
	if err != nil {
		t.Fatalf("Failed to read persisted page: %v", err)
	}
	if !bytes.Equal(testData, persistedData) {
		t.Errorf("Data not persisted correctly")
	}
}

// TestDiskPagerShortFile tests that reading past end-of-file fails rather
// than padding.
func TestDiskPagerShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.tbl")

	pager, err := NewOnDiskPager(path)
	if err != nil {
		t.Fatalf("Failed to create disk pager: %v", err)
	}
	defer pager.Close()

	if _, err := pager.ReadPage(5); err == nil {
		t.Error("Expected error when reading unallocated page")
	}

	// Truncate mid-page and verify the partial read errors too.
	id, err := pager.AllocatePage()
	if err != nil {
		t.Fatalf("Failed to allocate page: %v", err)
	}
	if err := os.Truncate(path, int64(id)*PageSize+100); err != nil {
		t.Fatalf("Failed to truncate: %v", err)
	}
	if _, err := pager.ReadPage(id); err == nil {
		t.Error("Expected error when read is truncated")
	}
}

// TestDiskPagerPageSizeEnforcement tests that writes must be exactly one
// page.
func TestDiskPagerPageSizeEnforcement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "size.tbl")

	pager, err := NewOnDiskPager(path)
	if err != nil {
		t.Fatalf("Failed to create disk pager: %v", err)
	}
	defer pager.Close()

	pageID, err := pager.AllocatePage()
	if err != nil {
		t.Fatalf("Failed to allocate page: %v", err)
	}

	if err := pager.WritePage(pageID, make([]byte, PageSize-1)); err == nil {
		t.Error("Expected error when writing data smaller than PageSize")
	}
	if err := pager.WritePage(pageID, make([]byte, PageSize+1)); err == nil {
		t.Error("Expected error when writing data larger than PageSize")
	}
	if err := pager.WritePage(pageID, make([]byte, PageSize)); err != nil {
		t.Errorf("Writing correct size data should succeed, got: %v", err)
	}
}

// TestCachedPagerReadBack tests that the ristretto layer serves writes
// back byte-identically.
func TestCachedPagerReadBack(t *testing.T) {
	pager, err := NewCachedPager(NewInMemoryPager())
	if err != nil {
		t.Fatalf("Failed to create cached pager: %v", err)
	}
	defer pager.Close()

	numPages := 5
	pageData := make([][]byte, numPages)
	for i := 0; i < numPages; i++ {
		id, err := pager.AllocatePage()
		if err != nil {
			t.Fatalf("Failed to allocate page %d: %v", i, err)
		}
		data := make([]byte, PageSize)
		copy(data, []byte{byte(i), byte(i + 1), byte(i + 2)})
		pageData[i] = data
		if err := pager.WritePage(id, data); err != nil {
			t.Fatalf("Failed to write page %d: %v", i, err)
		}
	}

	// Two rounds: the first may fill the cache, the second hits it.
	for round := 0; round < 2; round++ {
		for i := 0; i < numPages; i++ {
			readData, err := pager.ReadPage(PageID(i + 1))
			if err != nil {
				t.Fatalf("Failed to read page %d: %v", i+1, err)
			}
			if !bytes.Equal(pageData[i], readData) {
				t.Errorf("Page %d data mismatch on round %d", i+1, round)
			}
		}
	}

	// Overwrite must be visible immediately.
	updated := make([]byte, PageSize)
	copy(updated, []byte("updated"))
	if err := pager.WritePage(1, updated); err != nil {
		t.Fatalf("Failed to overwrite page: %v", err)
	}
	readData, err := pager.ReadPage(1)
	if err != nil {
		t.Fatalf("Failed to read overwritten page: %v", err)
	}
	if !bytes.Equal(updated, readData) {
		t.Error("Overwritten page served stale data")
	}
}
