package normalizer

// DedupeByKey retains exactly one row per distinct key value. The row kept
// among duplicates is the first occurrence in input order; that tie-break
// applies to both customer dedup (mobile number) and order dedup (order
// id). The output preserves input order and its length equals the number
// of distinct keys, which also makes the operation idempotent.
func DedupeByKey[T any, K comparable](rows []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(rows))
	out := make([]T, 0, len(rows))

	for _, row := range rows {
		k := key(row)
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		out = append(out, row)
	}

	return out
}
