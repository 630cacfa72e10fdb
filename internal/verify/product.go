package verify

import "iter"

// Combinations yields every way of picking one element per slot, the last
// slot varying fastest. The yielded slice is reused between iterations.
// Nothing is yielded when a slot is empty.
func Combinations[T any](slots [][]T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if len(slots) == 0 {
			return
		}
		for _, s := range slots {
			if len(s) == 0 {
				return
			}
		}
		idx := make([]int, len(slots))
		cur := make([]T, len(slots))
		for i := range slots {
			cur[i] = slots[i][0]
		}
		for {
			if !yield(cur) {
				return
			}
			i := len(slots) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(slots[i]) {
					cur[i] = slots[i][idx[i]]
					break
				}
				idx[i] = 0
				cur[i] = slots[i][0]
			}
			if i < 0 {
				return
			}
		}
	}
}

// Count is the number of combinations Combinations yields, saturating at
// the maximum int.
func Count[T any](slots [][]T) int {
	if len(slots) == 0 {
		return 0
	}
	n := 1
	for _, s := range slots {
		if len(s) == 0 {
			return 0
		}
		if n > int(^uint(0)>>1)/len(s) {
			return int(^uint(0) >> 1)
		}
		n *= len(s)
	}
	return n
}
