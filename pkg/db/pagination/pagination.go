package pagination

import "gorm.io/gorm"

// Pagination is a plain offset/limit page request bound from query params.
type Pagination struct {
	Page     int `form:"page,default=1" validate:"gte=1"`
	PageSize int `form:"page_size,default=20" validate:"gte=1,lte=250"`
}

type PageInfo struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

func (p Pagination) normalized() Pagination {
	out := p
	if out.Page < 1 {
		out.Page = 1
	}
	if out.PageSize < 1 {
		out.PageSize = 20
	}
	if out.PageSize > 250 {
		out.PageSize = 250
	}
	return out
}

// Apply adds offset/limit to a gorm statement. One extra row is fetched so
// callers can derive HasMore; trim with Trim.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	n := p.normalized()
	return stmt.Offset((n.Page - 1) * n.PageSize).Limit(n.PageSize + 1)
}

// Trim cuts the probe row and reports whether more pages exist.
func Trim[T any](rows []T, p Pagination) ([]T, PageInfo) {
	n := p.normalized()
	info := PageInfo{Page: n.Page, PageSize: n.PageSize}
	if len(rows) > n.PageSize {
		info.HasMore = true
		rows = rows[:n.PageSize]
	}
	return rows, info
}
