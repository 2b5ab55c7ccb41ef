package util

import "strings"

func NormaliseKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ShortLabel keeps the first parts of a comma separated display name
func ShortLabel(name string, parts int) string {
	split := strings.Split(name, ",")

	var kept []string
	for _, part := range split {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		kept = append(kept, part)
		if len(kept) == parts {
			break
		}
	}

	return strings.Join(kept, ", ")
}

func ContainsFold(s string, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
