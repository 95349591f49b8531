package fields

import "testing"

func TestSerovarParse(t *testing.T) {
	ref := testRef()
	cases := []struct {
		raw  string
		want string
	}{
		{raw: "Typhimurium", want: "Typhimurium"},
		{raw: "typhimurium", want: "Typhimurium"},
		{raw: "Salmonella enterica subsp. enterica serovar Typhimurium", want: "Typhimurium"},
		{raw: "Salmonella Typhimurium DT104", want: "Typhimurium"},
		{raw: "S. Paratyphi B", want: "Paratyphi B"},
		{raw: "St. Paul", want: "Saintpaul"},
		{raw: "I 4,[5],12:i:-", want: "I 4,[5],12:i:-"},
		{raw: "Salmonella enterica", want: ""},
		{raw: "Weltevreden", want: ""},
		{raw: "missing", want: ""},
	}

	v := serovarVariant{}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got := v.Parse(tc.raw, ref)
			if len(got) != 1 || got[0] != tc.want {
				t.Errorf("Parse(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestIsolationParse(t *testing.T) {
	ref := testRef()
	cases := []struct {
		raw                   string
		category, subcategory string
	}{
		{raw: "Ground Beef", category: "Food", subcategory: "Meat"},
		{raw: "chicken feces", category: "Animal", subcategory: "Poultry"},
		{raw: "human stool", category: "Human", subcategory: "Stool"},
		{raw: "groundwater", category: "", subcategory: ""},
		{raw: "not provided", category: "", subcategory: ""},
	}

	v := isolationVariant{}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got := v.Parse(tc.raw, ref)
			if got[0] != tc.category || got[1] != tc.subcategory {
				t.Errorf("Parse(%q) = %q, want [%q %q]", tc.raw, got, tc.category, tc.subcategory)
			}
		})
	}
}
