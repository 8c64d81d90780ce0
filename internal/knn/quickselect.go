package knn

import "math/rand"

// neighborRecord pairs a training-set index with its distance to the
// query point.
type neighborRecord struct {
	Index int
	Dist  float64
}

// quickselect partitions v in place so that after it returns, for all
// i < k and j >= k, v[i].Dist <= v[j].Dist. It uses a randomized
// Lomuto partition — a uniformly random pivot swapped to the
// rightmost slot, then a single left-to-right scan on strict "<" —
// and runs in expected O(len(v)) time. Order within the first k (and
// within the remainder) is otherwise unspecified; the multiset of v
// is unchanged.
func quickselect(v []neighborRecord, k int) {
	if k >= len(v) {
		return
	}
	l, h := 0, len(v)-1
	for {
		if l >= h {
			return
		}
		pi := lomutoPartition(v, l, h, l+rand.Intn(h-l+1))
		switch {
		case pi == k-1:
			return
		case k-1 < pi:
			h = pi - 1
		default:
			l = pi + 1
		}
	}
}

// lomutoPartition partitions v[l..h] around v[pi].Dist (swapped to
// the rightmost slot first) and returns the pivot's final index.
func lomutoPartition(v []neighborRecord, l, h, pi int) int {
	pivot := v[pi].Dist
	v[pi], v[h] = v[h], v[pi]
	x := l
	for i := l; i < h; i++ {
		if v[i].Dist < pivot {
			v[x], v[i] = v[i], v[x]
			x++
		}
	}
	v[h], v[x] = v[x], v[h]
	return x
}
