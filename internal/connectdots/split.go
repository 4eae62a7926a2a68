package connectdots

import "fmt"

// Split caps a record at max pairs per note. A record that fits is returned
// as is; a larger one is cut into the fewest possible chunks with sizes
// within one of each other, larger chunks first, pairs ordered by left value
// and assigned contiguously. The first chunk keeps the key, the rest get
// ":2", ":3" and so on appended.
func Split(r *Record, max int) []*Record {
	if max <= 0 || r.Len() <= max {
		return []*Record{r}
	}

	pairs := r.sortedPairs()
	n := len(pairs)
	chunks := (n + max - 1) / max
	base := n / chunks
	extra := n % chunks

	out := make([]*Record, 0, chunks)
	start := 0
	for i := 0; i < chunks; i++ {
		size := base
		if i < extra {
			size++
		}
		key := r.Key
		if i > 0 {
			key = fmt.Sprintf("%s:%d", r.Key, i+1)
		}
		part := &Record{
			Key:   key,
			Left:  make([]string, size),
			Right: make([]string, size),
		}
		for j, p := range pairs[start : start+size] {
			part.Left[j] = p.left
			part.Right[j] = p.right
		}
		out = append(out, part)
		start += size
	}
	return out
}
