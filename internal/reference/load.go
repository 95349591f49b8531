package reference

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const (
	CountryReplacementsFile = "Country_Replacements.txt"
	GeoLibraryFile          = "Geo_Library.txt"
	StateProvinceFile       = "State_Province.txt"
	SerovarsFile            = "Serovars.txt"
	IsolationSourcesFile    = "Isolation_Sources.txt"
)

//go:embed resources/*.txt
var embedded embed.FS

// ErrMalformedLine marks a resource line that split into too few tokens.
var ErrMalformedLine = errors.New("malformed reference line")

// Load reads the reference resources from dir, falling back to the embedded
// copy for any file dir does not provide. An empty dir uses only the
// embedded resources.
func Load(dir string) (*Data, error) {
	defaults, err := fs.Sub(embedded, "resources")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dir) == "" {
		return LoadFS(defaults)
	}
	return LoadFS(overlayFS{primary: os.DirFS(dir), fallback: defaults})
}

// LoadFS parses every resource from fsys. Any malformed line fails the
// whole load.
func LoadFS(fsys fs.FS) (*Data, error) {
	data := &Data{
		Countries: NewCountryReplacements(),
		Library:   NewGeoLibrary(),
		Provinces: NewStateProvinces(),
		Serovars:  NewSerovars(),
		Isolation: NewIsolationSources(),
	}

	err := readResource(fsys, CountryReplacementsFile, ":", 2, func(tokens []string) {
		data.Countries.Set(tokens[0], tokens[1])
	})
	if err != nil {
		return nil, err
	}

	err = readResource(fsys, GeoLibraryFile, "|", 2, func(tokens []string) {
		data.Library.Add(tokens[0], tokens[1])
	})
	if err != nil {
		return nil, err
	}

	err = readResource(fsys, StateProvinceFile, "|\t", 3, func(tokens []string) {
		data.Provinces.Set(tokens[1], ProvinceEntry{Country: tokens[0], Province: tokens[2]})
	})
	if err != nil {
		return nil, err
	}

	err = readResource(fsys, SerovarsFile, "|", 1, func(tokens []string) {
		if len(tokens) == 1 || tokens[1] == "" {
			data.Serovars.Add(tokens[0], tokens[0])
			return
		}
		data.Serovars.Add(tokens[0], tokens[1])
	})
	if err != nil {
		return nil, err
	}

	// patterns may use "|" alternation, so this file is tab separated
	err = readResource(fsys, IsolationSourcesFile, "\t", 3, func(tokens []string) {
		data.Isolation.Add(tokens[0], tokens[1], tokens[2])
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

func readResource(fsys fs.FS, name, separators string, minTokens int, apply func([]string)) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		tokens := splitAny(line, separators)
		if len(tokens) < minTokens {
			return fmt.Errorf("%s line %d: %w: want %d fields, got %d", name, lineNo, ErrMalformedLine, minTokens, len(tokens))
		}
		apply(tokens)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

// splitAny splits on any of the separator bytes, keeping empty fields so a
// short line is still detected.
func splitAny(line, separators string) []string {
	var out []string
	start := 0
	for i := 0; i < len(line); i++ {
		if strings.IndexByte(separators, line[i]) >= 0 {
			out = append(out, strings.TrimSpace(line[start:i]))
			start = i + 1
		}
	}
	return append(out, strings.TrimSpace(line[start:]))
}

type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return o.fallback.Open(name)
	}
	return f, err
}
