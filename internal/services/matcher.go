package services

import (
	"sort"

	"lotto645/internal/models"
)

// FindMatch reports whether the candidate's 6 numbers exactly match the main
// numbers of any past draw, comparing as sets (order ignored, bonus number
// excluded). It returns the round of the first match found in iteration
// order, or ok=false when no draw matches. The scan is linear; history is at
// most a few thousand rows.
func FindMatch(candidate []int, history []models.DrawRecord) (round int, ok bool) {
	if len(candidate) != models.NumberCount {
		return 0, false
	}
	want := sortedCopy(candidate)
	for _, draw := range history {
		if len(draw.Numbers) != models.NumberCount {
			continue
		}
		if equalSorted(want, sortedCopy(draw.Numbers)) {
			return draw.Round, true
		}
	}
	return 0, false
}

func sortedCopy(numbers []int) []int {
	out := make([]int, len(numbers))
	copy(out, numbers)
	sort.Ints(out)
	return out
}

func equalSorted(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
