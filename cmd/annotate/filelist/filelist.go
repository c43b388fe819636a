// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filelist loads a list of file paths, either one per line from
// a plain text file or from a named/indexed column of a CSV or TSV file.
package filelist

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// IsDelimited reports whether path looks like a CSV or TSV file list,
// based on its extension.
func IsDelimited(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".csv" || ext == ".tsv"
}

// LoadPlainFileList reads path as a newline-separated list of file
// paths, one per line, trimming trailing whitespace from each line. If
// limit is positive, at most limit lines are returned.
func LoadPlainFileList(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("filelist: opening %q: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), " \t\r\n"))
		if limit > 0 && len(lines) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("filelist: reading %q: %w", path, err)
	}
	return lines, nil
}

// LoadDelimitedFileList reads path as a CSV or TSV file and returns the
// values of the given column (by header name, or by zero-based index
// when header is false). If limit is positive, at most limit data rows
// are returned.
func LoadDelimitedFileList(path string, column string, header bool, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("filelist: opening %q: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if strings.ToLower(filepath.Ext(path)) == ".tsv" {
		reader.Comma = '\t'
	}

	columnIndex := -1
	if header {
		headerRow, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("filelist: reading header of %q: %w", path, err)
		}
		for i, name := range headerRow {
			if name == column {
				columnIndex = i
				break
			}
		}
		if columnIndex < 0 {
			return nil, fmt.Errorf("filelist: column %q not found in %q", column, path)
		}
	} else {
		idx, err := strconv.Atoi(column)
		if err != nil {
			return nil, fmt.Errorf("filelist: column %q is not a valid index: %w", column, err)
		}
		columnIndex = idx
	}

	var out []string
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		if columnIndex >= len(record) {
			continue
		}
		out = append(out, record[columnIndex])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Load dispatches to LoadDelimitedFileList or LoadPlainFileList based on
// path's extension.
func Load(path, column string, header bool, limit int) ([]string, error) {
	if IsDelimited(path) {
		return LoadDelimitedFileList(path, column, header, limit)
	}
	return LoadPlainFileList(path, limit)
}
