package sanitizer

// NormalizeStringSlice applies the normalizer to every element, dropping
// empties and duplicates while preserving order.
func NormalizeStringSlice(items []string, normalizer func(string) string) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)
		if normalized == "" {
			continue
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

func NormalizeDestinations(destinations []string) []string {
	return NormalizeStringSlice(destinations, TrimAndNormalize)
}

func NormalizeTags(tags []string) []string {
	return NormalizeStringSlice(tags, TrimAndNormalize)
}

func NormalizeImageURLs(urls []string) []string {
	return NormalizeStringSlice(urls, NormalizeURL)
}
