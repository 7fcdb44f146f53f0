// ABOUTME: Lazy Cartesian product over ordered value lists
// ABOUTME: Drives generation order: first list outermost, last list varying fastest

package autogen

import "iter"

// product yields every combination picking one value per list, last list varying fastest.
// The yielded slice is reused between iterations. Any empty list yields nothing.
func product(lists [][]string) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for _, l := range lists {
			if len(l) == 0 {
				return
			}
		}

		indexes := make([]int, len(lists))
		combination := make([]string, len(lists))

		for {
			for i, l := range lists {
				combination[i] = l[indexes[i]]
			}

			if !yield(combination) {
				return
			}

			// Odometer increment from the right
			i := len(lists) - 1
			for ; i >= 0; i-- {
				indexes[i]++
				if indexes[i] < len(lists[i]) {
					break
				}

				indexes[i] = 0
			}

			if i < 0 {
				return
			}
		}
	}
}
