package domain

import (
	"fmt"
	"math"
	"strings"
)

// WordsPerMinute is the reading speed used for estimates.
const WordsPerMinute = 200

// ReadingTime is an estimate derived from a post body.
type ReadingTime struct {
	Words   int     `json:"words"`
	Minutes float64 `json:"minutes"`
	Text    string  `json:"text"`
}

// EstimateReadingTime counts whitespace separated words in body. Text rounds
// minutes up, so any non-empty body reads as at least one minute.
func EstimateReadingTime(body string) ReadingTime {
	words := len(strings.Fields(body))
	minutes := float64(words) / WordsPerMinute
	display := int(math.Ceil(minutes))
	return ReadingTime{
		Words:   words,
		Minutes: minutes,
		Text:    fmt.Sprintf("%d min read", display),
	}
}
