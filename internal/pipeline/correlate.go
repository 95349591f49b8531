package pipeline

import (
	"slices"
	"strings"
)

const sampleSegment = "SAMPLE"

// FieldMapping ties a field marker to a column index.
type FieldMapping struct {
	Field  string
	Column int
}

// ColumnGroup is one accession column plus the field columns that share its
// numeric suffix. Mappings[0] is always the accession.
type ColumnGroup struct {
	Mappings []FieldMapping
}

func (g ColumnGroup) Accession() FieldMapping { return g.Mappings[0] }

// Correlation is the result of FindPositions. Observed starts with the
// accession marker followed by every field marker that joined a group, in
// first-seen order.
type Correlation struct {
	Groups   []ColumnGroup
	Observed []string
}

// FindPositions groups header columns around each accession column. A field
// column joins a group when its digit segments equal the accession's digit
// segments and its name, without digit and SAMPLE segments, equals one of
// the markers. The bool is false when the headers hold no accession column
// or no field column at all.
func FindPositions(accession string, markers, headers []string) (Correlation, bool) {
	markers = dedupe(markers)

	var accCols, fieldCols []int
	for i, h := range headers {
		if strings.Contains(h, accession) {
			accCols = append(accCols, i)
		}
		for _, m := range markers {
			if strings.Contains(h, m) {
				fieldCols = append(fieldCols, i)
				break
			}
		}
	}
	if len(accCols) == 0 || len(fieldCols) == 0 {
		return Correlation{}, false
	}

	corr := Correlation{Observed: []string{accession}}
	for _, a := range accCols {
		accSuffix, _ := splitHeader(headers[a])
		group := ColumnGroup{Mappings: []FieldMapping{{Field: accession, Column: a}}}
		for _, f := range fieldCols {
			suffix, name := splitHeader(headers[f])
			if !slices.Equal(accSuffix, suffix) || !slices.Contains(markers, name) {
				continue
			}
			group.Mappings = append(group.Mappings, FieldMapping{Field: name, Column: f})
			if !slices.Contains(corr.Observed, name) {
				corr.Observed = append(corr.Observed, name)
			}
		}
		corr.Groups = append(corr.Groups, group)
	}
	return corr, true
}

// splitHeader returns the numeric segments of an underscore separated header,
// normalized so that "01" and "1" compare equal, and the remaining segments
// minus SAMPLE joined back with "_".
func splitHeader(header string) (suffix []string, name string) {
	var rest []string
	for _, seg := range strings.Split(header, "_") {
		switch {
		case isDigits(seg):
			n := strings.TrimLeft(seg, "0")
			if n == "" {
				n = "0"
			}
			suffix = append(suffix, n)
		case seg == sampleSegment:
		default:
			rest = append(rest, seg)
		}
	}
	return suffix, strings.Join(rest, "_")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
