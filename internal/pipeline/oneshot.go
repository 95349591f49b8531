package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"metastd/internal"
)

// ReadTable loads an input file by extension. Delimited text is decoded
// with encodingLabel; xlsx and html carry their own encoding.
func ReadTable(path, encodingLabel string) (internal.Table, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return internal.Table{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", "":
		return parseDelimited(blob, ',', encodingLabel)
	case ".tsv", ".tab":
		return parseDelimited(blob, '\t', encodingLabel)
	case ".xlsx", ".xlsm":
		return parseXLSX(blob)
	case ".html", ".htm":
		return parseHTMLTable(blob)
	default:
		return internal.Table{}, fmt.Errorf("unsupported input type: %s", filepath.Ext(path))
	}
}

// OutputPath derives the sibling output name: the input without its
// extension plus suffix. The suffix extension follows the output format.
func OutputPath(input, suffix, format string) string {
	if ext := filepath.Ext(suffix); ext != "" && format != "" && !strings.EqualFold(ext, "."+format) {
		suffix = strings.TrimSuffix(suffix, ext) + "." + format
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}
