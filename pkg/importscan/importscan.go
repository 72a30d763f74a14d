// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package importscan extracts the package header of a source file:
// the declared package name and its imports. It does not parse the rest of the file.
package importscan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var (
	defpackageLine = regexp.MustCompile(`^\s*defpackage\s+([^\s:()\[\]]+)`)
	importLine     = regexp.MustCompile(`^\s*import\s+([^\s:()\[\]]+)`)
)

var ErrNoPackage = fmt.Errorf("no defpackage header")

// Header is what a source file says about itself
type Header struct {
	Package string
	// in order of first appearance, without duplicates
	Imports []string
}

func ScanFile(path string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := Scan(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

func Scan(r io.Reader) (*Header, error) {
	var h Header
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := stripComment(scanner.Text())
		if m := defpackageLine.FindStringSubmatch(line); m != nil {
			if h.Package != "" {
				return nil, fmt.Errorf("second defpackage %q after %q", m[1], h.Package)
			}
			h.Package = m[1]
			continue
		}
		if m := importLine.FindStringSubmatch(line); m != nil {
			h.Imports = append(h.Imports, m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if h.Package == "" {
		return nil, ErrNoPackage
	}
	h.Imports = lo.Uniq(h.Imports)
	return &h, nil
}

// a ';' starts a line comment
func stripComment(line string) string {
	before, _, _ := strings.Cut(line, ";")
	return before
}
