package reference

import (
	"regexp"

	"metastd/internal/util"
)

// Data bundles every lookup structure. It is built once by Load and only
// read afterwards.
type Data struct {
	Countries *CountryReplacements
	Library   *GeoLibrary
	Provinces *StateProvinces
	Serovars  *Serovars
	Isolation *IsolationSources
}

// CountryReplacements maps a country pattern to its canonical name. A later
// line with the same key replaces the value but keeps the first position.
type CountryReplacements struct {
	order    []string
	values   map[string]string
	patterns map[string]*regexp.Regexp
}

func NewCountryReplacements() *CountryReplacements {
	return &CountryReplacements{values: map[string]string{}, patterns: map[string]*regexp.Regexp{}}
}

func (c *CountryReplacements) Set(key, value string) {
	if _, ok := c.values[key]; !ok {
		c.order = append(c.order, key)
		c.patterns[key] = compilePattern(key)
	}
	c.values[key] = value
}

func (c *CountryReplacements) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

func (c *CountryReplacements) Len() int { return len(c.order) }

// Match scans patterns in insertion order against folded text and returns
// the canonical country and the matched byte span of the first hit.
func (c *CountryReplacements) Match(folded string) (string, int, int, bool) {
	for _, key := range c.order {
		for _, loc := range c.patterns[key].FindAllStringIndex(folded, -1) {
			if loc[0] == loc[1] {
				continue
			}
			if util.IsWordBoundary(folded, loc[0], loc[1]) {
				return c.values[key], loc[0], loc[1], true
			}
		}
	}
	return "", 0, 0, false
}

// GeoLibrary lists canonical provinces per canonical country. Countries keep
// the order in which they were first seen.
type GeoLibrary struct {
	countries []string
	provinces map[string][]string
	folded    map[string]string
}

func NewGeoLibrary() *GeoLibrary {
	return &GeoLibrary{provinces: map[string][]string{}, folded: map[string]string{}}
}

func (g *GeoLibrary) Add(country, province string) {
	if _, ok := g.provinces[country]; !ok {
		g.countries = append(g.countries, country)
		g.provinces[country] = nil
		g.folded[util.Fold(country)] = country
	}
	if province != "" {
		g.provinces[country] = append(g.provinces[country], province)
	}
}

func (g *GeoLibrary) Countries() []string { return g.countries }

func (g *GeoLibrary) Len() int { return len(g.countries) }

func (g *GeoLibrary) Provinces(country string) []string { return g.provinces[country] }

// Canonical resolves a country name ignoring case and accents.
func (g *GeoLibrary) Canonical(name string) (string, bool) {
	c, ok := g.folded[util.Fold(name)]
	return c, ok
}

// Province returns the library spelling of province under country.
func (g *GeoLibrary) Province(country, province string) (string, bool) {
	want := util.Fold(province)
	for _, p := range g.provinces[country] {
		if util.Fold(p) == want {
			return p, true
		}
	}
	return "", false
}

// ProvinceEntry is the value side of a State_Province line: the raw country
// token it was listed under and the canonical province.
type ProvinceEntry struct {
	Country  string
	Province string
}

type StateProvinces struct {
	order   []string
	entries map[string]ProvinceEntry
}

func NewStateProvinces() *StateProvinces {
	return &StateProvinces{entries: map[string]ProvinceEntry{}}
}

func (s *StateProvinces) Set(raw string, entry ProvinceEntry) {
	if _, ok := s.entries[raw]; !ok {
		s.order = append(s.order, raw)
	}
	s.entries[raw] = entry
}

func (s *StateProvinces) Get(raw string) (ProvinceEntry, bool) {
	e, ok := s.entries[raw]
	return e, ok
}

func (s *StateProvinces) Len() int { return len(s.order) }

// Each visits entries in insertion order until fn returns false.
func (s *StateProvinces) Each(fn func(raw string, entry ProvinceEntry) bool) {
	for _, raw := range s.order {
		if !fn(raw, s.entries[raw]) {
			return
		}
	}
}

// Serovars resolves folded aliases to canonical serovar names.
type Serovars struct {
	canonical map[string]string
}

func NewSerovars() *Serovars {
	return &Serovars{canonical: map[string]string{}}
}

func (s *Serovars) Add(alias, canonical string) {
	s.canonical[util.Fold(alias)] = canonical
}

func (s *Serovars) Lookup(name string) (string, bool) {
	c, ok := s.canonical[util.Fold(name)]
	return c, ok
}

func (s *Serovars) Len() int { return len(s.canonical) }

type IsolationRule struct {
	Pattern     *regexp.Regexp
	Category    string
	Subcategory string
}

type IsolationSources struct {
	rules []IsolationRule
}

func NewIsolationSources() *IsolationSources { return &IsolationSources{} }

func (s *IsolationSources) Add(pattern, category, subcategory string) {
	s.rules = append(s.rules, IsolationRule{Pattern: compilePattern(pattern), Category: category, Subcategory: subcategory})
}

// Classify returns the first rule whose pattern matches the folded text on
// word boundaries.
func (s *IsolationSources) Classify(folded string) (IsolationRule, bool) {
	for _, rule := range s.rules {
		for _, loc := range rule.Pattern.FindAllStringIndex(folded, -1) {
			if loc[0] != loc[1] && util.IsWordBoundary(folded, loc[0], loc[1]) {
				return rule, true
			}
		}
	}
	return IsolationRule{}, false
}

func (s *IsolationSources) Len() int { return len(s.rules) }

// compilePattern treats keys as case-insensitive regular expressions and
// falls back to a literal match when the key does not compile.
func compilePattern(key string) *regexp.Regexp {
	re, err := regexp.Compile(`(?i)(?:` + key + `)`)
	if err != nil {
		return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(key))
	}
	return re
}
