package utils

import (
	"strings"
	"time"
	"unicode"

	"github.com/goodsign/monday"
	"github.com/jinzhu/now"
	"golang.org/x/text/language"
)

// InvalidDate is rendered when a date string cannot be parsed.
const InvalidDate = "Invalid Date"

// DateLayout is the day-precision layout accepted by FormatDate and produced
// by FormatDateISO.
const DateLayout = "2006-01-02"

// DefaultLocale is the locale every date is rendered in unless overridden.
var DefaultLocale = language.MustParse("es-MX")

type DayStyle int

const (
	Day2Digit DayStyle = iota
	DayNumeric
	DayNone
)

type MonthStyle int

const (
	MonthShort MonthStyle = iota
	MonthLong
	MonthNarrow
	MonthNumeric
	Month2Digit
	MonthNone
)

type YearStyle int

const (
	YearNumeric YearStyle = iota
	Year2Digit
	YearNone
)

type WeekdayStyle int

const (
	WeekdayNone WeekdayStyle = iota
	WeekdayShort
	WeekdayLong
)

type dateFormat struct {
	locale  language.Tag
	day     DayStyle
	month   MonthStyle
	year    YearStyle
	weekday WeekdayStyle
}

// DateOption overrides one field of the default es-MX rendering
// {day: 2-digit, month: short, year: numeric}.
type DateOption func(*dateFormat)

func WithDay(s DayStyle) DateOption { return func(f *dateFormat) { f.day = s } }
func WithMonth(s MonthStyle) DateOption { return func(f *dateFormat) { f.month = s } }
func WithYear(s YearStyle) DateOption { return func(f *dateFormat) { f.year = s } }
func WithWeekday(s WeekdayStyle) DateOption { return func(f *dateFormat) { f.weekday = s } }
func WithLocale(tag language.Tag) DateOption {
	return func(f *dateFormat) { f.locale = tag }
}

// localeFormat describes how one supported locale arranges the date parts.
type localeFormat struct {
	names      monday.Locale
	monthFirst bool
	// connector joins parts when the month is spelled out in full.
	connector string
	// comma separates day and year in month-first textual dates.
	comma bool
}

var (
	supportedTags = []language.Tag{
		language.MustParse("es-MX"),
		language.MustParse("en-US"),
	}
	localeFormats = []localeFormat{
		{names: monday.LocaleEsES, connector: " de "},
		{names: monday.LocaleEnUS, monthFirst: true, comma: true},
	}
	localeMatcher = language.NewMatcher(supportedTags)
)

func lookupLocale(tag language.Tag) localeFormat {
	_, idx, _ := localeMatcher.Match(tag)
	return localeFormats[idx]
}

// FormatDate renders a YYYY-MM-DD date string, read as local midnight, in
// the es-MX locale. Invalid input renders as InvalidDate.
func FormatDate(dateStr string, opts ...DateOption) string {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(dateStr), time.Local)
	if err != nil {
		return InvalidDate
	}
	return FormatTime(t, opts...)
}

// FormatTime renders t with the same rules as FormatDate.
func FormatTime(t time.Time, opts ...DateOption) string {
	f := dateFormat{locale: DefaultLocale}
	for _, opt := range opts {
		opt(&f)
	}
	lf := lookupLocale(f.locale)

	day := formatDay(t, f.day)
	year := formatYear(t, f.year)

	var out string
	switch f.month {
	case MonthNumeric, Month2Digit:
		month := "1"
		if f.month == Month2Digit {
			month = "01"
		}
		parts := []string{day, monday.Format(t, month, lf.names), year}
		if lf.monthFirst {
			parts[0], parts[1] = parts[1], parts[0]
		}
		out = joinParts("/", parts...)
	case MonthNone:
		out = joinParts(" ", day, year)
	default:
		month := formatMonthName(t, f.month, lf.names)
		switch {
		case lf.monthFirst && lf.comma && day != "" && year != "":
			out = joinParts(" ", month, day+",", year)
		case lf.monthFirst:
			out = joinParts(" ", month, day, year)
		case f.month == MonthLong:
			out = joinParts(lf.connector, day, month, year)
		default:
			out = joinParts(" ", day, month, year)
		}
	}

	if f.weekday != WeekdayNone {
		layout := "Mon"
		if f.weekday == WeekdayLong {
			layout = "Monday"
		}
		out = joinParts(", ", monday.Format(t, layout, lf.names), out)
	}
	return out
}

func formatDay(t time.Time, s DayStyle) string {
	switch s {
	case DayNone:
		return ""
	case DayNumeric:
		return t.Format("2")
	default:
		return t.Format("02")
	}
}

func formatYear(t time.Time, s YearStyle) string {
	switch s {
	case YearNone:
		return ""
	case Year2Digit:
		return t.Format("06")
	default:
		return t.Format("2006")
	}
}

func formatMonthName(t time.Time, s MonthStyle, names monday.Locale) string {
	switch s {
	case MonthLong:
		return monday.Format(t, "January", names)
	case MonthNarrow:
		long := []rune(monday.Format(t, "January", names))
		if len(long) == 0 {
			return ""
		}
		return string(unicode.ToUpper(long[0]))
	default:
		return monday.Format(t, "Jan", names)
	}
}

func joinParts(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// GetMonday returns the Monday of t's week; weeks start on Monday, so a
// Sunday goes back six days. Clock time and location are kept.
func GetMonday(t time.Time) time.Time {
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	return t.AddDate(0, 0, -offset)
}

// FormatDateISO returns the UTC calendar date of t as YYYY-MM-DD. A local
// time close to midnight can land on the neighbouring UTC day.
func FormatDateISO(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDateISO reads a YYYY-MM-DD string as UTC midnight.
func ParseDateISO(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// WeekRange returns the first and last instant of t's Monday-first week in
// t's location.
func WeekRange(t time.Time) (time.Time, time.Time) {
	cfg := &now.Config{WeekStartDay: time.Monday, TimeLocation: t.Location()}
	n := cfg.With(t)
	return n.BeginningOfWeek(), n.EndOfWeek()
}
