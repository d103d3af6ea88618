package embedding

// span is a half-open range [start, end) of chunk indices.
type span struct {
	start, end int
}

func (s span) len() int {
	return s.end - s.start
}

// partition splits n items into consecutive spans of at most size items.
func partition(n, size int) []span {
	if n <= 0 {
		return nil
	}
	spans := make([]span, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		spans = append(spans, span{start: start, end: end})
	}
	return spans
}
