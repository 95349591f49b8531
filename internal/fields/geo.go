package fields

import (
	"strings"

	"metastd/internal/reference"
	"metastd/internal/util"
)

type geoVariant struct{}

func (geoVariant) Kind() Kind     { return GeoLocation }
func (geoVariant) Keys() []string { return []string{"country", "province"} }
func (geoVariant) ColumnStrs() []string {
	return []string{"geo_loc_name", "geographic_location"}
}

// Parse resolves the country first and then looks for a province of that
// country in what is left of the text. Values follow the INSDC
// "Country: region" convention when a colon is present.
func (v geoVariant) Parse(raw string, ref *reference.Data) []string {
	out := empty(len(v.Keys()))
	if ref == nil || util.IsPlaceholder(raw) {
		return out
	}
	folded := util.Fold(raw)

	country, rest := "", ""
	if head, tail, ok := strings.Cut(folded, ":"); ok {
		if c, _, _, found := matchCountry(head, ref); found {
			country, rest = c, tail
		}
	}
	if country == "" {
		c, start, end, found := matchCountry(folded, ref)
		if !found {
			return out
		}
		country, rest = c, folded[:start]+" "+folded[end:]
	}

	out[0] = country
	out[1] = matchProvince(country, rest, ref)
	return out
}

// matchCountry tries canonical names in library order, then the replacement
// patterns in insertion order. The first hit wins.
func matchCountry(folded string, ref *reference.Data) (string, int, int, bool) {
	if ref.Library != nil {
		for _, c := range ref.Library.Countries() {
			if start, end, ok := util.FindWord(folded, util.Fold(c)); ok {
				return c, start, end, true
			}
		}
	}
	if ref.Countries != nil {
		return ref.Countries.Match(folded)
	}
	return "", 0, 0, false
}

func matchProvince(country, folded string, ref *reference.Data) string {
	if ref.Library == nil || strings.TrimSpace(folded) == "" {
		return ""
	}

	best := ""
	for _, p := range ref.Library.Provinces(country) {
		fp := util.Fold(p)
		if len(fp) <= len(util.Fold(best)) {
			continue
		}
		if _, _, ok := util.FindWord(folded, fp); ok {
			best = p
		}
	}
	if best != "" {
		return best
	}

	if ref.Provinces == nil {
		return ""
	}
	ref.Provinces.Each(func(raw string, entry reference.ProvinceEntry) bool {
		if !sameCountry(entry.Country, country, ref) {
			return true
		}
		if _, _, ok := util.FindWord(folded, util.Fold(raw)); !ok {
			return true
		}
		if canonical, ok := ref.Library.Province(country, entry.Province); ok {
			best = canonical
			return false
		}
		return true
	})
	return best
}

// sameCountry reports whether a raw country token from the State/Province
// table names the resolved canonical country.
func sameCountry(token, country string, ref *reference.Data) bool {
	folded := util.Fold(token)
	if folded == util.Fold(country) {
		return true
	}
	c, start, end, ok := matchCountry(folded, ref)
	return ok && c == country && start == 0 && end == len(folded)
}
