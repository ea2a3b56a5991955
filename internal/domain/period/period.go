package period

import (
	"fmt"
	"strconv"
	"strings"
)

// The dashboard runs on the Solar Hijri business calendar, so the year opens
// in spring and the fixed season partition falls on month boundaries.
var Months = [12]string{
	"Farvardin", "Ordibehesht", "Khordad",
	"Tir", "Mordad", "Shahrivar",
	"Mehr", "Aban", "Azar",
	"Dey", "Bahman", "Esfand",
}

const (
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
	SeasonWinter = "winter"
)

var Seasons = [4]string{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// Period is an immutable (month, year) value. Month is the canonical name
// from Months, year is a 4-digit Solar Hijri year.
type Period struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
}

func New(month string, year int) Period {
	return Period{Month: month, Year: year}
}

// MonthIndex returns the canonical 0..11 index for a month name, or -1 for
// an unknown name.
func MonthIndex(month string) int {
	for i, name := range Months {
		if name == month {
			return i
		}
	}
	return -1
}

// SeasonOf maps a month name to its season. Three consecutive months per
// season, in canonical order. Unknown months map to an empty season.
func SeasonOf(month string) string {
	idx := MonthIndex(month)
	if idx < 0 {
		return ""
	}
	return Seasons[idx/3]
}

// MonthsOf returns the three month names of a season, in canonical order.
func MonthsOf(season string) []string {
	for i, name := range Seasons {
		if name == season {
			return []string{Months[i*3], Months[i*3+1], Months[i*3+2]}
		}
	}
	return nil
}

// Previous returns the preceding period, wrapping Farvardin back to Esfand
// of the prior year.
func (p Period) Previous() Period {
	idx := MonthIndex(p.Month)
	if idx <= 0 {
		return Period{Month: Months[11], Year: p.Year - 1}
	}
	return Period{Month: Months[idx-1], Year: p.Year}
}

// Compare orders periods chronologically: by year, then by month index.
// Returns -1, 0 or 1.
func Compare(a, b Period) int {
	if a.Year != b.Year {
		if a.Year < b.Year {
			return -1
		}
		return 1
	}
	ai, bi := MonthIndex(a.Month), MonthIndex(b.Month)
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	default:
		return 0
	}
}

// Key renders the "Month-Year" projection used as the map/storage key.
func (p Period) Key() string {
	return fmt.Sprintf("%s-%d", p.Month, p.Year)
}

// ParseKey parses a "Month-Year" key back into a Period.
func ParseKey(key string) (Period, error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("invalid period key %q", key)
	}
	if MonthIndex(parts[0]) < 0 {
		return Period{}, fmt.Errorf("unknown month %q", parts[0])
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("invalid year in period key %q", key)
	}
	return Period{Month: parts[0], Year: year}, nil
}

func (p Period) String() string {
	return p.Key()
}
