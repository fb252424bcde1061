package model

// PageInfo points at an adjacent page in a paginated listing.
type PageInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries next/prev pointers; each is present only when more
// pages exist in that direction.
type Pagination struct {
	Next *PageInfo `json:"next,omitempty"`
	Prev *PageInfo `json:"prev,omitempty"`
}

// BuildPagination computes the next/prev pointers for a page of a listing.
func BuildPagination(page, limit int, total int64) Pagination {
	p := Pagination{}
	if int64(page*limit) < total {
		p.Next = &PageInfo{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &PageInfo{Page: page - 1, Limit: limit}
	}
	return p
}

// TotalPages returns the page count for a listing of the given size.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}

// ListIncidentsResp is the paginated incident listing envelope.
type ListIncidentsResp struct {
	Success    bool              `json:"success"`
	Count      int               `json:"count"`
	Pagination Pagination        `json:"pagination"`
	TotalPages int               `json:"totalPages"`
	Incidents  []*IncidentDetail `json:"incidents"`
}

// ListAuditLogsResp is the paginated audit log envelope.
type ListAuditLogsResp struct {
	Success    bool        `json:"success"`
	Count      int         `json:"count"`
	Pagination Pagination  `json:"pagination"`
	TotalPages int         `json:"totalPages"`
	Logs       []*AuditLog `json:"logs"`
}
