package dto

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// NormalizePage clamps client paging input to the window list queries
// actually run with. Controllers echo the same values in the response
// envelope so the reported page size never disagrees with the result.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
