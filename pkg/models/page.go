package models

// Table describes the pagination block returned next to every list payload.
type Table struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageLimit   int   `json:"pageLimit"`
	TotalCount  int64 `json:"totalCount"`
}

func NewTable(page, limit int, total int64) Table {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return Table{
		CurrentPage: page,
		TotalPages:  pages,
		PageLimit:   limit,
		TotalCount:  total,
	}
}
