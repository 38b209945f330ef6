package listing

import (
	"net/url"
	"strconv"
)

const pageParam = "page"

// Ellipsis marks a gap in a compact page-number strip.
const Ellipsis = -1

// PageFromQuery reads the active page from URL query values. Absent or
// unparseable values mean page 1.
func PageFromQuery(query url.Values) int {
	raw := query.Get(pageParam)
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// PageURL renders the canonical URL for a page: page 1 carries no page
// parameter at all, later pages encode ?page=N. Existing query parameters on
// path are preserved.
func PageURL(path string, page int) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	query := u.Query()
	if page <= 1 {
		query.Del(pageParam)
	} else {
		query.Set(pageParam, strconv.Itoa(page))
	}
	u.RawQuery = query.Encode()
	return u.String()
}

// PageStrip lays out a compact page-number control: always the first and
// last page, a window of current +/- 2, and Ellipsis markers in the gaps.
// Purely presentational; it never affects what is fetched.
func PageStrip(current, total int) []int {
	if total < 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	var strip []int
	prev := 0
	for page := 1; page <= total; page++ {
		show := page == 1 || page == total ||
			(page >= current-2 && page <= current+2)
		if !show {
			continue
		}
		if prev != 0 && page-prev > 1 {
			strip = append(strip, Ellipsis)
		}
		strip = append(strip, page)
		prev = page
	}
	return strip
}
