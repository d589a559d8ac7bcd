package spacedrep

// Intervals defines the expanding review ladder in days.
var Intervals = []int{1, 3, 7, 14, 30, 60}

// MaxInterval is the last rung of the ladder. An item at this interval is
// mastered.
const MaxInterval = 60

// Advance returns the interval that follows current on the ladder, clamped
// at MaxInterval. A value that is not on the ladder moves to the next
// larger rung, or MaxInterval if there is none.
func Advance(current int) int {
	for i, v := range Intervals {
		if v == current {
			return Intervals[min(i+1, len(Intervals)-1)]
		}
	}
	for _, v := range Intervals {
		if v > current {
			return v
		}
	}
	return MaxInterval
}

// Reset returns the first rung of the ladder.
func Reset() int {
	return Intervals[0]
}

// OnLadder reports whether days is one of Intervals.
func OnLadder(days int) bool {
	for _, v := range Intervals {
		if v == days {
			return true
		}
	}
	return false
}

// StatusFor derives the item status from its interval.
func StatusFor(intervalDays int) Status {
	if intervalDays >= MaxInterval {
		return StatusMastered
	}
	return StatusActive
}
