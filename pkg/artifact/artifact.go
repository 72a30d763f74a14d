// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"fmt"
)

// Candidate is where a compiled package was found. It is one of
// FromExplicitDirectory, FromCache or NotFound.
type Candidate interface {
	fmt.Stringer
	isCandidate()
}

// FromExplicitDirectory is an artifact in one of the project's declared pkg dirs.
// These are user-pinned and never checked for freshness.
type FromExplicitDirectory struct {
	Path string
}

// FromCache is an artifact in the pkg cache, produced by an earlier build.
// It is only usable once proven fresh.
type FromCache struct {
	Path string
}

type NotFound struct{}

func (FromExplicitDirectory) isCandidate() {}
func (FromCache) isCandidate()             {}
func (NotFound) isCandidate()              {}

func (c FromExplicitDirectory) String() string {
	return "pkg-dir:" + c.Path
}

func (c FromCache) String() string {
	return "pkg-cache:" + c.Path
}

func (NotFound) String() string {
	return "not-found"
}

// Path returns the artifact file of c, if any
func Path(c Candidate) (string, bool) {
	switch v := c.(type) {
	case FromExplicitDirectory:
		return v.Path, true
	case FromCache:
		return v.Path, true
	default:
		return "", false
	}
}

// CacheParams enables lookups in the pkg cache. It is only passed
// when the package also has a source file.
type CacheParams struct {
	Dir        string
	SourceFile string
}

// Finder locates compiled packages
type Finder interface {
	FindArtifact(name string, optimize bool, cache *CacheParams) Candidate
}
