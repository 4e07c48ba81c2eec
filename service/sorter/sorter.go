// Package sorter implements the per-row workload: ordering a slice of
// integers in descending order. It is deliberately free of any concurrency
// concerns; parallelism across rows is the dispatcher's job.
package sorter

const insertionCutoff = 12

// Sort returns a new slice holding row's elements in descending order. The
// input is never mutated so callers can keep the unsorted original around
// for validation. Rows of length <= 1 come back as an unchanged copy.
func Sort(row []int) []int {
	out := make([]int, len(row))
	copy(out, row)
	if len(out) > 1 {
		quicksort(out, 0, len(out)-1)
	}
	return out
}

// quicksort orders a[lo..hi] descending using a three-way swap-based
// partition: one pass groups elements greater than, equal to and less than
// the pivot, so runs of duplicates settle in a single level of recursion.
func quicksort(a []int, lo, hi int) {
	for hi-lo >= insertionCutoff {
		gt, lt := partition(a, lo, hi)
		// recurse into the smaller side, iterate on the larger one to keep
		// stack depth logarithmic
		if gt-lo < hi-lt {
			quicksort(a, lo, gt-1)
			lo = lt + 1
		} else {
			quicksort(a, lt+1, hi)
			hi = gt - 1
		}
	}
	insertion(a, lo, hi)
}

// partition arranges a[lo..hi] so that a[lo..gt-1] > pivot,
// a[gt..lt] == pivot and a[lt+1..hi] < pivot, returning (gt, lt).
func partition(a []int, lo, hi int) (int, int) {
	m := medianOfThree(a, lo, lo+(hi-lo)/2, hi)
	a[lo], a[m] = a[m], a[lo]
	pivot := a[lo]

	gt, i, lt := lo, lo+1, hi
	for i <= lt {
		switch {
		case a[i] > pivot:
			a[gt], a[i] = a[i], a[gt]
			gt++
			i++
		case a[i] < pivot:
			a[i], a[lt] = a[lt], a[i]
			lt--
		default:
			i++
		}
	}
	return gt, lt
}

func medianOfThree(a []int, l, m, r int) int {
	if a[l] < a[m] {
		if a[m] < a[r] {
			return m
		} else if a[l] < a[r] {
			return r
		}
		return l
	}
	if a[r] < a[m] {
		return m
	} else if a[r] < a[l] {
		return r
	}
	return l
}

func insertion(a []int, lo, hi int) {
	for i := lo + 1; i <= hi; i++ {
		for j := i; j > lo && a[j] > a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}
