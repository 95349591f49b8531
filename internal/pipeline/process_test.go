package pipeline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"metastd/internal"
	"metastd/internal/fields"
	"metastd/internal/reference"
)

func mustRef(t *testing.T) *reference.Data {
	t.Helper()
	ref, err := reference.Load("")
	if err != nil {
		t.Fatalf("reference.Load() error = %v", err)
	}
	return ref
}

func mustVariants(t *testing.T, names ...string) []fields.Variant {
	t.Helper()
	if len(names) == 0 {
		names = []string{"collection_date", "geographic_location", "serovar", "isolation_source"}
	}
	vs, err := fields.Variants(names)
	if err != nil {
		t.Fatalf("fields.Variants() error = %v", err)
	}
	return vs
}

func TestProcessEndToEnd(t *testing.T) {
	in := internal.Table{
		Headers: []string{"RUN", "geo_loc_name", "collection_date", "host"},
		Rows: [][]string{
			{"SRR001", "Canada", "missing", "Homo sapiens"},
		},
	}

	res, err := Process(in, mustVariants(t), mustRef(t), "RUN")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := internal.Table{
		Headers: []string{
			"RUN",
			"collection_date_year", "collection_date_month", "collection_date_day",
			"geo_loc_name_country", "geo_loc_name_province",
		},
		Rows: [][]string{
			{"SRR001", "", "", "", "Canada", ""},
		},
	}
	if diff := cmp.Diff(want, res.Table); diff != "" {
		t.Errorf("table (-want +got):\n%s", diff)
	}
	if res.Groups != 1 {
		t.Errorf("Groups = %d, want 1", res.Groups)
	}
}

func TestProcessMissingFieldKeepsColumnsAligned(t *testing.T) {
	in := internal.Table{
		Headers: []string{"RUN_1", "serovar_1", "RUN_2", "geo_loc_name_2"},
		Rows: [][]string{
			{"SRR1", "Salmonella enterica serovar Typhimurium", "SRR2", "USA: Ohio"},
		},
	}

	res, err := Process(in, mustVariants(t), mustRef(t), "RUN")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := internal.Table{
		Headers: []string{"RUN", "geo_loc_name_country", "geo_loc_name_province", "serovar_name"},
		Rows: [][]string{
			{"SRR1", "", "", "Typhimurium"},
			{"SRR2", "United States", "Ohio", ""},
		},
	}
	if diff := cmp.Diff(want, res.Table); diff != "" {
		t.Errorf("table (-want +got):\n%s", diff)
	}
}

func TestProcessRowFilter(t *testing.T) {
	in := internal.Table{
		Headers: []string{"RUN_1", "isolation_source_1", "RUN_2"},
		Rows: [][]string{
			{"SRR1", "human stool", "SRR2"},
			{"", "ground beef", ""},
			{"SRR3", "not collected", "SRR4"},
			{"SRR5"},
		},
	}

	res, err := Process(in, mustVariants(t), mustRef(t), "RUN")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// accession-only groups (RUN_2) are all blank and always dropped
	want := [][]string{{"SRR1", "Human", "Stool"}}
	if diff := cmp.Diff(want, res.Table.Rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestProcessSentinels(t *testing.T) {
	cases := []struct {
		name    string
		table   internal.Table
		wantErr error
	}{
		{
			name:    "no accession column",
			table:   internal.Table{Headers: []string{"sample", "serovar"}, Rows: [][]string{{"a", "Typhimurium"}}},
			wantErr: ErrNoRelevantColumns,
		},
		{
			name:    "no field column",
			table:   internal.Table{Headers: []string{"RUN", "host"}, Rows: [][]string{{"SRR1", "cow"}}},
			wantErr: ErrNoRelevantColumns,
		},
		{
			name:    "nothing recognized",
			table:   internal.Table{Headers: []string{"RUN", "geo_loc_name"}, Rows: [][]string{{"SRR9", "Atlantis"}}},
			wantErr: ErrNoRows,
		},
		{
			name:    "no data rows",
			table:   internal.Table{Headers: []string{"RUN", "geo_loc_name"}},
			wantErr: ErrNoRows,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Process(tc.table, mustVariants(t), mustRef(t), "RUN")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestProcessRespectsFieldSelection(t *testing.T) {
	in := internal.Table{
		Headers: []string{"RUN", "serovar", "isolation_source"},
		Rows:    [][]string{{"SRR1", "Enteritidis", "eggs"}},
	}

	res, err := Process(in, mustVariants(t, "isolation_source"), mustRef(t), "RUN")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := internal.Table{
		Headers: []string{"RUN", "isolation_source_category", "isolation_source_subcategory"},
		Rows:    [][]string{{"SRR1", "Food", "Eggs"}},
	}
	if diff := cmp.Diff(want, res.Table); diff != "" {
		t.Errorf("table (-want +got):\n%s", diff)
	}
}

func TestFlatten(t *testing.T) {
	got := Flatten(Scalar("a"), Seq{Scalar("b"), Seq{Scalar("c"), Seq{}}, Scalar("")}, SeqOf([]string{"d", "e"}))
	if diff := cmp.Diff([]string{"a", "b", "c", "", "d", "e"}, got); diff != "" {
		t.Errorf("Flatten (-want +got):\n%s", diff)
	}
}
