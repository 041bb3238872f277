package model

// Pagination describes one page of a result set. TotalRecords is -1 until a
// count has been executed.
type Pagination struct {
	TotalRecords int64
	TotalPages   int
	PageSize     int
	PageNumber   int
}

// DefaultPagination - page 1 of 20 with the total still unknown
func DefaultPagination() Pagination {
	return Pagination{TotalRecords: -1, TotalPages: 0, PageSize: 20, PageNumber: 1}
}

// PaginationFromDocument parses a client pagination spec, falling back to the
// defaults for absent or unusable values
func PaginationFromDocument(doc Document) Pagination {
	pagination := DefaultPagination()
	if doc == nil {
		return pagination
	}
	if size := intValue(doc["PageSize"]); size > 0 {
		pagination.PageSize = size
	}
	if number := intValue(doc["PageNumber"]); number > 0 {
		pagination.PageNumber = number
	}
	return pagination
}

func (p Pagination) ToDocument() Document {
	return Document{
		"TotalRecords": p.TotalRecords,
		"TotalPages":   p.TotalPages,
		"PageSize":     p.PageSize,
		"PageNumber":   p.PageNumber,
	}
}

// TotalPages - the number of pages needed for total records at the given size
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}

func intValue(v interface{}) int {
	switch value := v.(type) {
	case int:
		return value
	case int32:
		return int(value)
	case int64:
		return int(value)
	case float64:
		return int(value)
	}
	return 0
}
