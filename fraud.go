//
//
//

package fraudstat

// factor used by CountAnomalies
const DefaultFactor = 2.0

// CountAnomalies returns how many values are at least twice the median of the d values before them.
// Zero for d <= 0 or when there are no more than d values.
func CountAnomalies[T Number](values []T, d int) int {
	return CountAnomaliesWith(values, d, DefaultFactor, PartitionFor[T](d))
}

func CountAnomaliesWith[T Number](values []T, d int, factor float64, new_partition NewPartition_t[T]) (res int) {
	if d <= 0 || len(values) <= d {
		return
	}
	tracker := NewTracker(new_partition)
	for i, v := range values {
		if i >= d {
			if med, _ := tracker.Median(); float64(v) >= factor*med {
				res++
			}
			tracker.Remove(values[i-d])
		}
		tracker.Add(v)
	}
	return
}
