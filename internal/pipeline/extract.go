package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"metastd/internal"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Decoder returns the decoder for a WHATWG encoding label such as "utf-8",
// "windows-1252" or "latin1".
func Decoder(label string) (*encoding.Decoder, error) {
	enc, err := lookupEncoding(label)
	if err != nil {
		return nil, err
	}
	return enc.NewDecoder(), nil
}

func lookupEncoding(label string) (encoding.Encoding, error) {
	if strings.TrimSpace(label) == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown text encoding %q: %w", label, err)
	}
	return enc, nil
}

// parseDelimited reads a delimited table whose first record is the header.
// Records may have differing lengths.
func parseDelimited(content []byte, comma rune, encodingLabel string) (internal.Table, error) {
	dec, err := Decoder(encodingLabel)
	if err != nil {
		return internal.Table{}, err
	}
	var r io.Reader = transform.NewReader(bytes.NewReader(content), unicode.BOMOverride(dec))

	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return internal.Table{}, err
	}
	return tableFromRecords(records), nil
}

func parseXLSX(content []byte) (internal.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return internal.Table{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return internal.Table{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return internal.Table{}, err
	}
	return tableFromRecords(rows), nil
}

func parseHTMLTable(content []byte) (internal.Table, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return internal.Table{}, err
	}

	var records [][]string
	doc.Find("table").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, normalizeSpaces(cell.Text()))
		})
		if len(cells) > 0 {
			records = append(records, cells)
		}
	})
	return tableFromRecords(records), nil
}

func tableFromRecords(records [][]string) internal.Table {
	if len(records) == 0 {
		return internal.Table{}
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	return internal.Table{Headers: headers, Rows: records[1:]}
}

func normalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}
