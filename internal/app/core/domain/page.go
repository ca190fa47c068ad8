package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest 分頁請求，Page 從 1 開始
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest 建立分頁請求，超出範圍的值會被修正
func NewPageRequest(page, size int) PageRequest {
	if page < 1 {
		page = 1
	}
	switch {
	case size > MaxPageSize:
		size = MaxPageSize
	case size <= 0:
		size = DefaultPageSize
	}
	return PageRequest{Page: page, Size: size}
}

// Offset 回傳資料起始位置
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// Page 一頁資料
type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

// NewPage 建立一頁資料，items 為 nil 時回傳空 slice
func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Page:  req.Page,
		Size:  req.Size,
		Total: total,
	}
}

// TotalPages 總頁數
func (p Page[T]) TotalPages() int {
	if p.Total <= 0 || p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// MapPage 轉換一頁資料的元素型別
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return Page[U]{Items: items, Page: p.Page, Size: p.Size, Total: p.Total}
}
