package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser converts user-supplied schedule dates to absolute time.Time values.
// It accepts ISO dates ("2026-09-01") and a small set of relative forms
// ("today", "tomorrow", "in 3 days", "next monday").
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "America/Sao_Paulo"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

var inDurationRe = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)

// Parse converts a date string to an absolute start-of-day time.Time.
// The baseTime is used as the reference point (usually time.Now()).
// Unrecognized input is an error so callers can re-prompt the user.
func (p *Parser) Parse(input string, baseTime time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	if t, err := time.ParseInLocation("2006-01-02", input, p.location); err == nil {
		return t, nil
	}

	switch input {
	case "today", "now", "hoje":
		return p.startOfDay(baseTime), nil
	case "tomorrow", "amanha", "amanhã":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	}

	if strings.HasPrefix(input, "in ") {
		return p.parseInDuration(input, baseTime)
	}

	if strings.HasPrefix(input, "next ") {
		return p.parseNextWeekday(input, baseTime)
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", input)
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) parseInDuration(input string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid duration format: %q", input)
	}

	amount, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "day"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	case strings.HasPrefix(unit, "month"):
		return p.startOfDay(baseTime.AddDate(0, amount, 0)), nil
	}

	return time.Time{}, fmt.Errorf("unknown time unit: %q", unit)
}

// parseNextWeekday handles patterns like "next monday", "next friday".
func (p *Parser) parseNextWeekday(input string, baseTime time.Time) (time.Time, error) {
	weekdays := map[string]time.Weekday{
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	}

	dayName := strings.TrimPrefix(input, "next ")
	targetWeekday, ok := weekdays[dayName]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown weekday: %q", dayName)
	}

	currentWeekday := baseTime.Weekday()
	daysUntil := int(targetWeekday - currentWeekday)
	if daysUntil <= 0 {
		daysUntil += 7
	}

	return p.startOfDay(baseTime.AddDate(0, 0, daysUntil)), nil
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
