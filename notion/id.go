package notion

import "strings"

// FormatID normalizes a Notion object ID into the dashed 8-4-4-4-12 UUID
// form the API expects. IDs copied from notion.so URLs come without dashes.
func FormatID(id string) string {
	var clean strings.Builder
	for _, r := range id {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') {
			clean.WriteRune(r)
		}
	}

	s := clean.String()
	if len(s) != 32 {
		// Not a bare ID, leave it alone.
		return id
	}

	return s[:8] + "-" + s[8:12] + "-" + s[12:16] + "-" + s[16:20] + "-" + s[20:]
}
