package pipeline

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/transform"

	"metastd/internal"
)

// WriteTable writes t to outputPath as csv or xlsx.
func WriteTable(t internal.Table, outputPath, format, encodingLabel string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	switch format {
	case "", "csv":
		return writeCSV(t, outputPath, encodingLabel)
	case "xlsx":
		return writeXLSX(t, outputPath)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeCSV(t internal.Table, outputPath, encodingLabel string) (err error) {
	enc, err := lookupEncoding(encodingLabel)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	buf := bufio.NewWriter(f)
	encoded := transform.NewWriter(buf, enc.NewEncoder())
	w := csv.NewWriter(encoded)
	if err := w.Write(t.Headers); err != nil {
		return err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return err
	}
	if err := encoded.Close(); err != nil {
		return err
	}
	return buf.Flush()
}

func writeXLSX(t internal.Table, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range t.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range t.Rows {
		r := i + 2
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, r)
			_ = f.SetCellStr(sheet, cell, value)
		}
	}

	return f.SaveAs(outputPath)
}
