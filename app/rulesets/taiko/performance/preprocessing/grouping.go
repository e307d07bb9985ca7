package preprocessing

import "math"

func almostEquals(a, b, margin float64) bool {
	return math.Abs(a-b) <= margin
}

// groupByInterval partitions [0, n) into contiguous runs whose consecutive intervals agree within margin.
// An element preceding a clear slowdown is kept with the faster run it ends.
func groupByInterval(n int, interval func(i int) float64, margin float64) [][]int {
	groups := make([][]int, 0)

	for i := 0; i < n; {
		var group []int
		group, i = nextIntervalGroup(n, i, interval, margin)
		groups = append(groups, group)
	}

	return groups
}

func nextIntervalGroup(n, i int, interval func(i int) float64, margin float64) ([]int, int) {
	group := []int{i}
	i++

	for ; i < n-1; i++ {
		if !almostEquals(interval(i), interval(i+1), margin) {
			if interval(i+1) > interval(i)+margin {
				group = append(group, i)
				i++
			}

			return group, i
		}

		group = append(group, i)
	}

	if n > 2 && i < n && almostEquals(interval(n-1), interval(n-2), margin) {
		group = append(group, i)
		i++
	}

	return group, i
}
