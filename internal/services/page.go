package services

// PageSize is the fixed page size for every list endpoint.
const PageSize = 6

// normalizePage maps any non-positive page to the first page.
func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// totalPages rounds the item count up to whole pages.
func totalPages(total int64) int {
	return int((total + PageSize - 1) / PageSize)
}
