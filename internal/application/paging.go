package application

// Page is the slice-and-count result of Paginate.
type Page[T any] struct {
	Items      []T
	TotalPages int
}

// Paginate returns the 1-based pageNumber window of items together with the
// total page count. It is pure: no sorting, no mutation, caller order
// preserved. Requesting a page beyond TotalPages (or below 1) yields an empty
// Items slice rather than an error, which tolerates a UI transiently asking
// for a stale page right after a filter shrinks the collection.
func Paginate[T any](items []T, pageSize, pageNumber int) Page[T] {
	if pageSize < 1 {
		return Page[T]{Items: []T{}}
	}

	totalPages := (len(items) + pageSize - 1) / pageSize

	start := (pageNumber - 1) * pageSize
	if pageNumber < 1 || start >= len(items) {
		return Page[T]{Items: []T{}, TotalPages: totalPages}
	}

	end := min(start+pageSize, len(items))
	return Page[T]{Items: items[start:end], TotalPages: totalPages}
}

// VisiblePageNumbers returns [1..totalPages] in ascending order, for
// rendering page-selector controls.
func VisiblePageNumbers(totalPages int) []int {
	pages := make([]int, 0, max(totalPages, 0))
	for p := 1; p <= totalPages; p++ {
		pages = append(pages, p)
	}
	return pages
}

// SelectPage accepts a requested page number only when it falls within
// [1, totalPages]. The second return value reports acceptance; on rejection
// the caller keeps its current page.
func SelectPage(requested, totalPages int) (int, bool) {
	if requested < 1 || requested > totalPages {
		return 0, false
	}
	return requested, true
}
