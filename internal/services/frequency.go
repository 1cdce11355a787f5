package services

import (
	"sort"

	"lotto645/internal/models"
)

// Analyze counts how often each number 1..45 appeared among the main numbers
// of the given history (bonus numbers excluded) and derives the hot and cold
// lists. Every number is present in the result even with a zero count, so an
// empty history yields all zeros. Ties break by ascending number value to
// keep the lists deterministic.
func Analyze(history []models.DrawRecord) models.FrequencyProfile {
	counts := make(map[int]int, models.MaxNumber)
	for n := 1; n <= models.MaxNumber; n++ {
		counts[n] = 0
	}
	for _, draw := range history {
		for _, n := range draw.Numbers {
			if n >= 1 && n <= models.MaxNumber {
				counts[n]++
			}
		}
	}

	byCountDesc := rankedNumbers(counts, func(ci, cj, ni, nj int) bool {
		if ci != cj {
			return ci > cj
		}
		return ni < nj
	})
	byCountAsc := rankedNumbers(counts, func(ci, cj, ni, nj int) bool {
		if ci != cj {
			return ci < cj
		}
		return ni < nj
	})

	return models.FrequencyProfile{
		Counts: counts,
		Hot:    byCountDesc[:models.NumberCount],
		Cold:   byCountAsc[:models.NumberCount],
	}
}

// rankedNumbers returns all 45 numbers ordered by the given comparison over
// (count, number) pairs.
func rankedNumbers(counts map[int]int, less func(ci, cj, ni, nj int) bool) []int {
	numbers := make([]int, 0, models.MaxNumber)
	for n := 1; n <= models.MaxNumber; n++ {
		numbers = append(numbers, n)
	}
	sort.Slice(numbers, func(i, j int) bool {
		return less(counts[numbers[i]], counts[numbers[j]], numbers[i], numbers[j])
	})
	return numbers
}
