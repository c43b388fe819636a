// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command annotate is a small demonstration harness for the annotation
// engine: it loads a plain-text document and a list of target values
// from the command line, runs the fuzzy matching annotator over them,
// and prints the resulting token tags.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pvk444/sciencebeam-gym-go/annotation"
	baseerrors "github.com/pvk444/sciencebeam-gym-go/base/errors"
	"github.com/pvk444/sciencebeam-gym-go/cmd/annotate/filelist"
)

var (
	targetsFile string
	column      string
	noHeader    bool
	limit       int
)

func main() {
	root := &cobra.Command{
		Use:   "annotate [document-file]",
		Short: "Fuzzily tag a plain-text document against a list of target values",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().StringVar(&targetsFile, "targets", "", "file listing target annotation values (plain, .csv, or .tsv)")
	root.Flags().StringVar(&column, "column", "0", "column name or index holding target values in a delimited targets file")
	root.Flags().BoolVar(&noHeader, "no-header", false, "the targets file has no header row")
	root.Flags().IntVar(&limit, "limit", 0, "limit the number of targets loaded (0 = no limit)")
	_ = root.MarkFlagRequired("targets")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	docPath := args[0]

	lines, err := loadDocumentLines(docPath)
	if err != nil {
		return baseerrors.Log(err)
	}

	values, err := filelist.Load(targetsFile, column, !noHeader, limit)
	if err != nil {
		return baseerrors.Log(err)
	}

	doc := documentFromLines(lines)

	targets := make([]annotation.TargetAnnotation, len(values))
	for i, v := range values {
		targets[i] = annotation.TargetAnnotation{
			Name:  fmt.Sprintf("target-%d", i),
			Value: annotation.StringValue(v),
		}
	}

	ann := annotation.NewMatchingAnnotator(nil)
	if err := ann.Annotate(doc, targets); err != nil {
		return baseerrors.Log(err)
	}

	printTags(doc)
	return nil
}

func loadDocumentLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("annotate: opening %q: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func documentFromLines(lines []string) *annotation.SimpleDocument {
	simpleLines := make([]*annotation.SimpleLine, len(lines))
	for i, line := range lines {
		simpleLines[i] = annotation.NewSimpleLine(strings.Fields(line)...)
	}
	return annotation.NewSimpleDocument(simpleLines...)
}

func printTags(doc *annotation.SimpleDocument) {
	for li, line := range doc.Lines() {
		for _, tok := range line.Tokens() {
			if tok.Tag() == "" {
				continue
			}
			slog.Info("tagged token", "line", li, "text", tok.Text(), "tag", tok.Tag())
		}
	}
}
