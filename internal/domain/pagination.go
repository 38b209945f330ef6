package domain

// Pagination describes one page of a listing as reported by the backend.
type Pagination struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	Total      int  `json:"total"`
	HasMore    bool `json:"has_more"`
}

// NewPagination derives the page metadata for a listing of total items cut
// into pages of pageSize. A non-positive pageSize yields a single page.
func NewPagination(page, pageSize, total int) Pagination {
	if page < 1 {
		page = 1
	}
	totalPages := 1
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
		if totalPages < 1 {
			totalPages = 1
		}
	}
	return Pagination{
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		HasMore:    page < totalPages,
	}
}
