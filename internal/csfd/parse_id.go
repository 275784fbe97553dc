package csfd

import (
	"strconv"
	"strings"
)

// ExtractShowID recovers the numeric id from a ČSFD film path such as
// /film/{id}-{slug}/ or /film/{id}-{slug}/prehled/. The id is the numeric
// prefix of the first path component after /film/.
func ExtractShowID(path string) (int, bool) {
	const marker = "/film/"

	i := strings.Index(path, marker)
	if i < 0 {
		return 0, false
	}

	segment, _, _ := strings.Cut(path[i+len(marker):], "/")
	idStr, _, _ := strings.Cut(segment, "-")

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ExtractNestedID recovers the id of a resource nested under a show, such
// as a season or an episode: /film/{show_id}-{slug}/{id}-{slug}/. It is
// the same rule as ExtractShowID applied one path component deeper.
func ExtractNestedID(path string) (int, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if part != "film" || i+2 >= len(parts) {
			continue
		}
		idStr, _, _ := strings.Cut(parts[i+2], "-")
		id, err := strconv.Atoi(idStr)
		if err == nil && id > 0 {
			return id, true
		}
	}
	return 0, false
}
