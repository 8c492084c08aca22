package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 12
	// MaxLimit caps how many cards any page can request.
	MaxLimit = 100
)

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Window describes the slice of a result set covered by a page.
type Window struct {
	Page       int
	Limit      int
	Start      int
	End        int
	Total      int
	TotalPages int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps the page to be 1-based.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// TotalPages returns how many pages of size limit cover total rows.
func TotalPages(total, limit int) int {
	limit = NormalizeLimit(limit)
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Compute resolves the [Start, End) bounds for the requested page. Pages past
// the end yield an empty window (Start == End == total).
func Compute(params Params, total int) Window {
	if total < 0 {
		total = 0
	}
	limit := NormalizeLimit(params.Limit)
	page := NormalizePage(params.Page)

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return Window{
		Page:       page,
		Limit:      limit,
		Start:      start,
		End:        end,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}
}
