package vec

const (
	growthFactor = 2
	minCapacity  = 2
)

// grow returns the capacity to allocate so that at least n elements fit,
// given the current capacity.
func grow(capacity, n int) int {
	switch {
	case capacity == 0:
		return max(n, minCapacity)
	case n > capacity*growthFactor:
		return n
	default:
		return capacity * growthFactor
	}
}
