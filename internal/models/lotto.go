package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// NumberCount is how many balls one combination holds, MaxNumber the largest
// ball in the machine. Achievable sums for 6 distinct numbers from 1-45 run
// from MinPossibleSum (1+2+3+4+5+6) to MaxPossibleSum (40+...+45).
const (
	NumberCount    = 6
	MaxNumber      = 45
	MinPossibleSum = 21
	MaxPossibleSum = 255
)

var validate = validator.New()

// DrawRecord is one official past draw as published by the lottery authority.
// Numbers keeps the drawn order; it is not necessarily sorted.
type DrawRecord struct {
	Round             int    `json:"round" validate:"required,gt=0"`
	DrawDate          string `json:"drawDate"`
	FirstPrizeTotal   int64  `json:"firstPrizeTotal" validate:"gte=0"`
	FirstPrizeWinners int    `json:"firstPrizeWinners" validate:"gte=0"`
	Numbers           []int  `json:"numbers" validate:"len=6,unique,dive,min=1,max=45"`
	Bonus             int    `json:"bonus" validate:"min=1,max=45"`
}

// ErrBonusOverlap means the bonus number duplicates one of the main numbers.
var ErrBonusOverlap = errors.New("bonus number duplicates a main number")

// Validate checks a record parsed from the data file. Rows failing validation
// are dropped at the ingestion boundary rather than propagated half-formed.
func (d *DrawRecord) Validate() error {
	if err := validate.Struct(d); err != nil {
		return err
	}
	for _, n := range d.Numbers {
		if n == d.Bonus {
			return ErrBonusOverlap
		}
	}
	return nil
}

// GeneratedCombination is a candidate set proposed to the user. It lives in
// memory until explicitly bookmarked, at which point a copy is persisted.
type GeneratedCombination struct {
	ID         string `json:"id"`
	Numbers    []int  `json:"numbers"` // always sorted ascending
	Sum        int    `json:"sum"`
	Reason     string `json:"reason"`
	MatchRound *int   `json:"matchRound,omitempty"` // round of an identical past win, if any
}

// FrequencyProfile is derived from the full history on demand, never stored.
// Hot and Cold each hold 6 numbers; ties break by ascending number value.
type FrequencyProfile struct {
	Counts map[int]int `json:"counts"`
	Hot    []int       `json:"hot"`
	Cold   []int       `json:"cold"`
}
