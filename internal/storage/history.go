package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/logger"

	"lotto645/internal/models"
)

// Draw CSV columns: round, draw date, comma-separated winning numbers,
// bonus number, first prize total, first prize winner count.
const historyFieldCount = 6

// LoadHistory reads the draw history CSV at path. An unreadable file is an
// error for the caller to surface; individual bad rows are dropped, not
// fatal.
func LoadHistory(path string) ([]models.DrawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()
	return ParseHistory(f), nil
}

// ParseHistory parses draw records from r, skipping any row that is
// malformed, lacks a round number, or fails validation. The result is sorted
// by round descending (most recent first).
func ParseHistory(r io.Reader) []models.DrawRecord {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var history []models.DrawRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Infof("Skipping unreadable CSV row: %v", err)
			continue
		}

		draw, err := parseDrawRow(record)
		if err != nil {
			logger.Infof("Skipping draw row %v: %v", record, err)
			continue
		}
		history = append(history, draw)
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Round > history[j].Round
	})
	return history
}

func parseDrawRow(record []string) (models.DrawRecord, error) {
	if len(record) != historyFieldCount {
		return models.DrawRecord{}, fmt.Errorf("expected %d fields, got %d", historyFieldCount, len(record))
	}

	round, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return models.DrawRecord{}, fmt.Errorf("invalid round: %w", err)
	}

	numbers, err := parseNumbers(record[2])
	if err != nil {
		return models.DrawRecord{}, err
	}

	bonus, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		return models.DrawRecord{}, fmt.Errorf("invalid bonus number: %w", err)
	}

	// Prize figures are display-only; a blank field reads as zero.
	prizeTotal, _ := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
	winnerCount, _ := strconv.Atoi(strings.TrimSpace(record[5]))

	draw := models.DrawRecord{
		Round:             round,
		DrawDate:          strings.TrimSpace(record[1]),
		FirstPrizeTotal:   prizeTotal,
		FirstPrizeWinners: winnerCount,
		Numbers:           numbers,
		Bonus:             bonus,
	}
	if err := draw.Validate(); err != nil {
		return models.DrawRecord{}, err
	}
	return draw, nil
}

func parseNumbers(field string) ([]int, error) {
	parts := strings.Split(field, ",")
	numbers := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid winning number %q: %w", p, err)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}
