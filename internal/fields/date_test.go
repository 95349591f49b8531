package fields

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDateParse(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{raw: "2014-05-01", want: []string{"2014", "05", "01"}},
		{raw: "2014-05", want: []string{"2014", "05", ""}},
		{raw: "2014", want: []string{"2014", "", ""}},
		{raw: "01-May-2014", want: []string{"2014", "05", "01"}},
		{raw: "1-may-2014", want: []string{"2014", "05", "01"}},
		{raw: "May-2014", want: []string{"2014", "05", ""}},
		{raw: "September 2009", want: []string{"2009", "09", ""}},
		{raw: "05/14/2014", want: []string{"2014", "05", "14"}},
		{raw: "2014/05/14", want: []string{"2014", "05", "14"}},
		{raw: "2014-05-01T10:30:00Z", want: []string{"2014", "05", "01"}},
		{raw: "2014-01-01/2014-03-31", want: []string{"2014", "01", "01"}},
		{raw: "2013/2014", want: []string{"2013", "", ""}},
		{raw: " 2014-05-01. ", want: []string{"2014", "05", "01"}},
		{raw: "missing", want: []string{"", "", ""}},
		{raw: "not collected", want: []string{"", "", ""}},
		{raw: "1066", want: []string{"", "", ""}},
		{raw: "last summer", want: []string{"", "", ""}},
	}

	v := dateVariant{}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, v.Parse(tc.raw, nil)); diff != "" {
				t.Errorf("Parse(%q) (-want +got):\n%s", tc.raw, diff)
			}
		})
	}
}
