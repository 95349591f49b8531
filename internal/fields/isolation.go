package fields

import (
	"metastd/internal/reference"
	"metastd/internal/util"
)

type isolationVariant struct{}

func (isolationVariant) Kind() Kind           { return IsolationSource }
func (isolationVariant) Keys() []string       { return []string{"category", "subcategory"} }
func (isolationVariant) ColumnStrs() []string { return []string{"isolation_source"} }

func (v isolationVariant) Parse(raw string, ref *reference.Data) []string {
	out := empty(len(v.Keys()))
	if ref == nil || ref.Isolation == nil || util.IsPlaceholder(raw) {
		return out
	}
	rule, ok := ref.Isolation.Classify(util.Fold(raw))
	if !ok {
		return out
	}
	out[0], out[1] = rule.Category, rule.Subcategory
	return out
}
