package runtime

// Placeholders returns the identifiers referenced by template, in order of
// appearance, with duplicates kept. It recognizes exactly what Expand substitutes.
func Placeholders(template string) []string {
	matches := placeholder.FindAllStringSubmatch(template, -1)
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m[1]
	}
	return ids
}
