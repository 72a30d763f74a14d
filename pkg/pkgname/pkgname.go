// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package pkgname

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

const Separator = "/"

var ErrInvalidName = fmt.Errorf("invalid package name")

// Name is a slash-separated hierarchical package name, e.g. "math/vector".
// The last segment names the package, the preceding ones its namespace.
type Name string

func (n Name) String() string {
	return string(n)
}

func (n Name) Segments() []string {
	if n == "" {
		return nil
	}
	return strings.Split(string(n), Separator)
}

// Namespace is every segment but the last
func (n Name) Namespace() []string {
	segs := n.Segments()
	if len(segs) == 0 {
		return nil
	}
	return segs[:len(segs)-1]
}

// Base is the last segment
func (n Name) Base() string {
	return lo.LastOr(n.Segments(), "")
}

// Parse validates s as a package name
func Parse(s string) (Name, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	for _, seg := range strings.Split(s, Separator) {
		if !IsValidSymbol(seg) {
			return "", fmt.Errorf("%w: %q has an invalid segment %q", ErrInvalidName, s, seg)
		}
	}
	return Name(s), nil
}

// IsValidSymbol reports whether seg can be one segment of a package name
func IsValidSymbol(seg string) bool {
	if seg == "" {
		return false
	}
	return !strings.ContainsFunc(seg, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r) || r == '/' || r == '\\' || r == '"'
	})
}

// IsValidPathComponent reports whether seg can be used as a single file path element
func IsValidPathComponent(seg string) bool {
	return IsValidSymbol(seg) && seg != "." && seg != ".."
}
