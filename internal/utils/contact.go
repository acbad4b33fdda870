package utils

import "strings"

var contactSeparators = strings.NewReplacer(" ", "", "-", "")

// NormalizeContactNumber maps any accepted form of a Bangladeshi mobile
// number to the canonical 11-digit local form: "+8801…" and "8801…" both
// become "01…". Anything else passes through unchanged after separator
// stripping.
func NormalizeContactNumber(num string) string {
	if num == "" {
		return ""
	}

	cleaned := contactSeparators.Replace(num)

	if strings.HasPrefix(cleaned, "+8801") {
		return strings.TrimPrefix(cleaned, "+88")
	}
	if strings.HasPrefix(cleaned, "8801") {
		return cleaned[2:]
	}

	return cleaned
}
