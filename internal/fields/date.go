package fields

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"metastd/internal/reference"
	"metastd/internal/util"
)

type granularity int

const (
	byYear granularity = iota
	byMonth
	byDay
)

type dateLayout struct {
	layout string
	gran   granularity
}

// Slash dates are read month first, the way NCBI submitters write them.
var dateLayouts = []dateLayout{
	{"2006-01-02", byDay},
	{time.RFC3339, byDay},
	{"2006-01-02T15:04:05", byDay},
	{"2006-01-02 15:04:05", byDay},
	{"2006-01-02T15:04", byDay},
	{"02-Jan-2006", byDay},
	{"2-Jan-2006", byDay},
	{"02 Jan 2006", byDay},
	{"2 Jan 2006", byDay},
	{"2 January 2006", byDay},
	{"January 2, 2006", byDay},
	{"Jan 2, 2006", byDay},
	{"2006/01/02", byDay},
	{"01/02/2006", byDay},
	{"1/2/2006", byDay},
	{"20060102", byDay},
	{"2006-01", byMonth},
	{"2006/01", byMonth},
	{"Jan-2006", byMonth},
	{"January-2006", byMonth},
	{"Jan 2006", byMonth},
	{"January 2006", byMonth},
	{"01/2006", byMonth},
	{"1/2006", byMonth},
	{"2006", byYear},
}

var reISODate = regexp.MustCompile(`^\d{4}(-\d{2}(-\d{2})?)?$`)

type dateVariant struct{}

func (dateVariant) Kind() Kind           { return CollectionDate }
func (dateVariant) Keys() []string       { return []string{"year", "month", "day"} }
func (dateVariant) ColumnStrs() []string { return []string{"collection_date"} }

func (v dateVariant) Parse(raw string, _ *reference.Data) []string {
	out := empty(len(v.Keys()))
	value := strings.TrimSpace(raw)
	if util.IsPlaceholder(value) {
		return out
	}
	value = strings.TrimSuffix(value, ".")

	// ISO 8601 interval: keep the start.
	if head, tail, ok := strings.Cut(value, "/"); ok {
		head, tail = strings.TrimSpace(head), strings.TrimSpace(tail)
		if reISODate.MatchString(head) && reISODate.MatchString(tail) {
			value = head
		}
	}

	t, gran, ok := parseDate(value)
	if !ok || t.Year() < 1800 || t.Year() > 2100 {
		return out
	}
	out[0] = fmt.Sprintf("%04d", t.Year())
	if gran >= byMonth {
		out[1] = fmt.Sprintf("%02d", int(t.Month()))
	}
	if gran == byDay {
		out[2] = fmt.Sprintf("%02d", t.Day())
	}
	return out
}

func parseDate(value string) (time.Time, granularity, bool) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l.layout, value); err == nil {
			return t, l.gran, true
		}
	}
	return time.Time{}, 0, false
}
