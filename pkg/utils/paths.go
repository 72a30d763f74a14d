// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"os"
	"path/filepath"
)

// ResolvePath makes p absolute relative to basePath, unless it already is
func ResolvePath(basePath, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(basePath, p))
}

// FileExists reports whether path names an existing regular file.
// Any stat error counts as "does not exist".
func FileExists(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !s.IsDir()
}

func DirExists(path string) (bool, error) {
	s, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return s.IsDir(), nil
}

func EnsureDirs(dirs ...string) error {
	for _, d := range dirs {
		if err := os.MkdirAll(d, os.ModePerm); err != nil && !os.IsExist(err) {
			return err
		}
	}
	return nil
}

// FindInAncestors looks for filename in startDir and each of its parents,
// returning the absolute path of the first match
func FindInAncestors(startDir, filename string) (absolutePath string, ok bool, err error) {
	p, ok := doFindInAncestors(startDir, filename)
	if !ok {
		return "", false, nil
	}
	absolutePath, err = filepath.Abs(p)
	return
}

func doFindInAncestors(startDir, filename string) (string, bool) {
	f := filepath.Join(startDir, filename)

	info, err := os.Stat(f)
	if err == nil && !info.IsDir() {
		return f, true
	}

	parent := filepath.Dir(startDir)
	if parent == startDir {
		return "", false
	}

	return doFindInAncestors(parent, filename)
}

// MkdirTemp is like os.MkdirTemp but returns a cleanup function for deleting the created dir
func MkdirTemp(dir, pattern string) (string, func() error, error) {
	d, err := os.MkdirTemp(dir, pattern)
	if err != nil {
		return "", nil, err
	}
	fn := func() error {
		return os.RemoveAll(d)
	}
	return d, fn, err
}
