package translate

// findPath returns a directed node path from start to end, or nil when no
// path exists. Depth-first with backtracking; channel direction is honored.
func (t *Translator) findPath(start, end string) []string {
	seen := map[string]bool{start: true}

	var walk func(cur string, path []string) []string
	walk = func(cur string, path []string) []string {
		path = append(path, cur)
		if cur == end {
			return path
		}
		for _, next := range t.sch.Successors(cur) {
			if seen[next] {
				continue
			}
			seen[next] = true
			if found := walk(next, path); found != nil {
				return found
			}
		}

		return nil
	}

	return walk(start, nil)
}
