package recommendations

import "strings"

var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"laptop", "computers"},
	{"headphones", "audio"},
	{"smartphone", "mobile"},
	{"mouse", "accessories"},
	{"keyboard", "accessories"},
	{"monitor", "displays"},
	{"speaker", "audio"},
	{"tablet", "mobile"},
}

// Category derives a product category from its name. The first keyword
// found wins; unmatched names are "general".
func Category(productName string) string {
	name := strings.ToLower(productName)
	for _, entry := range categoryKeywords {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}
	return "general"
}
