package fields

import (
	"regexp"
	"strings"

	"metastd/internal/reference"
	"metastd/internal/util"
)

var (
	reSerovarLabel = regexp.MustCompile(`\b(serovar|serotype|ser\.|sv\.)\s*`)
	reTaxonPrefix  = regexp.MustCompile(`^(salmonella|s\.|enterica|subsp\.?\s+\S+|subspecies\s+\S+)\s*`)
)

type serovarVariant struct{}

func (serovarVariant) Kind() Kind           { return Serovar }
func (serovarVariant) Keys() []string       { return []string{"name"} }
func (serovarVariant) ColumnStrs() []string { return []string{"serovar"} }

func (v serovarVariant) Parse(raw string, ref *reference.Data) []string {
	out := empty(len(v.Keys()))
	if ref == nil || ref.Serovars == nil || util.IsPlaceholder(raw) {
		return out
	}
	name := stripTaxon(util.Fold(raw))
	if name == "" {
		return out
	}

	// longest leading run of words that is a known alias wins
	words := strings.Fields(name)
	for n := len(words); n > 0; n-- {
		if canonical, ok := ref.Serovars.Lookup(strings.Join(words[:n], " ")); ok {
			out[0] = canonical
			return out
		}
	}
	return out
}

// stripTaxon drops the genus, species and subspecies words and anything up
// to an explicit "serovar" label.
func stripTaxon(folded string) string {
	if loc := reSerovarLabel.FindStringIndex(folded); loc != nil {
		folded = folded[loc[1]:]
	}
	for {
		loc := reTaxonPrefix.FindStringIndex(folded)
		if loc == nil || loc[1] == 0 {
			break
		}
		folded = folded[loc[1]:]
	}
	return strings.Trim(folded, " ,;")
}
