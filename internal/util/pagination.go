package util

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Clamp normalizes client-supplied limit/offset values.
func Clamp(limit, offset int) (int, int) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Calculate turns a page/size pair into an offset and limit.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxLimit {
		size = 10
	}
	from = (page - 1) * size
	return from, size
}
