// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a small set of error handling helpers used by
// the cmd/annotate tool, extending the standard library errors package
// with slog-aware logging wrappers.
package errors

import (
	"log/slog"
	"runtime"
	"strconv"
)

// Log takes the given error and logs it at warn level if it is non-nil.
// The intended usage is:
//
//	errors.Log(annotator.Annotate(doc, targets))
func Log(err error) error {
	if err != nil {
		slog.Warn(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 takes the given value and error, logs the error at warn level if
// it is non-nil, and returns the value unchanged in either case.
// The intended usage is:
//
//	list := errors.Log1(filelist.LoadPlainFileList(path, 0))
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Warn(err.Error() + " | " + CallerInfo())
	}
	return v
}

// CallerInfo returns string information about the caller of the
// function that called CallerInfo, for inclusion in a log line.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name() + " " + file + ":" + strconv.Itoa(line)
}
