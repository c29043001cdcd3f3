package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// pageParam parses the page query parameter. Anything non-numeric or
// non-positive means the first page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// searchParam returns the trimmed search query parameter.
func searchParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("search"))
}
