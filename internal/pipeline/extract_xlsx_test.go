package pipeline

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func mkXLSX(rows [][]any) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	_, _ = f.WriteTo(buf)
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	blob := mkXLSX([][]any{
		{"RUN", "collection_date", "isolation_source"},
		{"SRR001", "2014-05-01", "ground beef"},
		{"SRR002", 2015},
	})
	table, err := parseXLSX(blob)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"SRR001", "2014-05-01", "ground beef"},
		{"SRR002", "2015"},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	out := t.TempDir() + "/out.xlsx"
	in := tableOf([]string{"RUN", "serovar_name"}, []string{"SRR1", "Typhimurium"})
	if err := WriteTable(in, out, "xlsx", ""); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]string{{"RUN", "serovar_name"}, {"SRR1", "Typhimurium"}}, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}
