package fields

import (
	"fmt"
	"strings"

	"metastd/internal/reference"
)

// Kind enumerates the supported metadata field variants.
type Kind int

const (
	CollectionDate Kind = iota
	GeoLocation
	Serovar
	IsolationSource
)

func (k Kind) String() string {
	switch k {
	case CollectionDate:
		return "collection_date"
	case GeoLocation:
		return "geographic_location"
	case Serovar:
		return "serovar"
	case IsolationSource:
		return "isolation_source"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Variant normalizes one metadata category. Parse never fails: it returns
// exactly len(Keys()) values, using "" for anything it cannot map.
type Variant interface {
	Kind() Kind
	// Keys names the output sub-fields, in output order.
	Keys() []string
	// ColumnStrs lists the header names this variant owns.
	ColumnStrs() []string
	Parse(raw string, ref *reference.Data) []string
}

func New(k Kind) (Variant, error) {
	switch k {
	case CollectionDate:
		return dateVariant{}, nil
	case GeoLocation:
		return geoVariant{}, nil
	case Serovar:
		return serovarVariant{}, nil
	case IsolationSource:
		return isolationVariant{}, nil
	default:
		return nil, fmt.Errorf("unknown field kind %d", int(k))
	}
}

// ParseKind accepts the configured field name, with "-" or "_" separators.
func ParseKind(name string) (Kind, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
	case "collection_date", "date":
		return CollectionDate, nil
	case "geographic_location", "geo_loc_name", "geo":
		return GeoLocation, nil
	case "serovar":
		return Serovar, nil
	case "isolation_source":
		return IsolationSource, nil
	default:
		return 0, fmt.Errorf("unknown field %q", name)
	}
}

// Variants builds the variants for the configured field names, keeping the
// given order.
func Variants(names []string) ([]Variant, error) {
	out := make([]Variant, 0, len(names))
	seen := map[Kind]bool{}
	for _, name := range names {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		v, err := New(k)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func empty(n int) []string {
	return make([]string, n)
}
