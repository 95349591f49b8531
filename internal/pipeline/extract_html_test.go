package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseHTMLTable(t *testing.T) {
	html := `<html><body>
<table>
  <tr><th>RUN</th><th>geo_loc_name</th></tr>
  <tr><td>SRR001</td><td> Canada:
      Ontario </td></tr>
  <tr><td>SRR002</td></tr>
</table>
<table><tr><td>ignored</td></tr></table>
</body></html>`

	table, err := parseHTMLTable([]byte(html))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"RUN", "geo_loc_name"}, table.Headers); diff != "" {
		t.Errorf("headers (-want +got):\n%s", diff)
	}
	want := [][]string{{"SRR001", "Canada: Ontario"}, {"SRR002"}}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestParseHTMLWithoutTable(t *testing.T) {
	table, err := parseHTMLTable([]byte(`<p>no table here</p>`))
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Headers) != 0 || len(table.Rows) != 0 {
		t.Fatalf("expected empty table, got %+v", table)
	}
}
