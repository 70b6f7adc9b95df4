package pdf

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResolvePaths expands inputs into PDF file paths. Files are kept as given;
// directories contribute their *.pdf files (any case) in lexical order,
// walking subdirectories when recursive is set.
func ResolvePaths(inputs []string, recursive bool) ([]string, error) {
	var out []string
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", in, err)
		}
		if !info.IsDir() {
			out = append(out, in)
			continue
		}
		found, err := scanDir(in, recursive)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

func scanDir(dir string, recursive bool) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if IsPDFName(d.Name()) {
			found = append(found, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	sort.Strings(found)
	return found, nil
}

// IsPDFName reports whether name has a .pdf extension.
func IsPDFName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
