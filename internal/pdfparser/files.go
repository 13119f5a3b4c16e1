package pdfparser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// FindStatements lists the .pdf files of dir (any extension case), sorted
// by name.
func FindStatements(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading statement directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// strftimePatterns maps the conversions accepted in a sort format to the
// text they match in a file name.
var strftimePatterns = map[byte]string{
	'Y': `\d{4}`,
	'y': `\d{2}`,
	'm': `\d{2}`,
	'd': `\d{2}`,
	'H': `\d{2}`,
	'M': `\d{2}`,
	'S': `\d{2}`,
	'b': `[A-Za-z]{3}`,
	'z': `[+-]\d{4}`,
	'Z': `[A-Z]{3}`,
	'%': `%`,
}

// filenameDatePattern turns a strftime format such as "%d-%m-%Y" into a
// regular expression finding such a date inside a file name.
func filenameDatePattern(format string) (*regexp.Regexp, error) {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			b.WriteString(regexp.QuoteMeta(format[i : i+1]))
			continue
		}
		i++
		if i == len(format) {
			return nil, fmt.Errorf("sort format %q ends with '%%'", format)
		}
		pattern, ok := strftimePatterns[format[i]]
		if !ok {
			return nil, fmt.Errorf("sort format %q: unsupported conversion %%%c", format, format[i])
		}
		b.WriteString(pattern)
	}
	return regexp.Compile(b.String())
}

// SortByFilenameDate orders files by the date their base name carries in
// the strftime format. Files without such a date sort first, as if dated
// 1970-01-01; ties keep their current order.
func SortByFilenameDate(files []string, format string) error {
	re, err := filenameDatePattern(format)
	if err != nil {
		return err
	}

	dates := make(map[string]time.Time, len(files))
	for _, f := range files {
		match := re.FindString(filepath.Base(f))
		if match == "" {
			dates[f] = time.Unix(0, 0).UTC()
			continue
		}
		d, err := strftime.Parse(format, match)
		if err != nil {
			return fmt.Errorf("file %s: date %q does not match %q: %w", f, match, format, err)
		}
		dates[f] = d
	}

	sort.SliceStable(files, func(i, j int) bool {
		return dates[files[i]].Before(dates[files[j]])
	})
	return nil
}
