package importer

// AutoDetect guesses a header for each Field. Fields are visited in order and
// each takes the first unconsumed header, in file order, matching one of its
// keywords. A header is never assigned twice; fields without a match stay
// unmapped.
func AutoDetect(headers []string) Mapping {
	m := NewMapping()
	used := make(map[string]bool, len(headers))
	for _, fp := range headerPatterns {
		for _, h := range headers {
			if h == "" || used[h] {
				continue
			}
			if fp.matches(h) {
				m.Set(fp.field, h)
				used[h] = true
				break
			}
		}
	}
	return m
}
