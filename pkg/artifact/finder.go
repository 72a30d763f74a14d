// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"lbstanza.org/x/pkgresolve/pkg/pkgname"
	"lbstanza.org/x/pkgresolve/pkg/utils"
)

const (
	DebugExtension     = ".pkg"
	OptimizedExtension = ".fpkg"
)

// FileName is the artifact file name of a package, e.g. "math$vector.fpkg"
func FileName(name string, optimize bool) string {
	ext := lo.Ternary(optimize, OptimizedExtension, DebugExtension)
	return strings.ReplaceAll(name, pkgname.Separator, "$") + ext
}

// DirFinder looks for artifacts on the local filesystem:
// first in the pkg cache (when cache params are given), then in
// the declared pkg dirs in declaration order.
type DirFinder struct {
	PkgDirs []string
}

func NewDirFinder(pkgDirs ...string) *DirFinder {
	return &DirFinder{PkgDirs: pkgDirs}
}

func (f *DirFinder) FindArtifact(name string, optimize bool, cache *CacheParams) Candidate {
	fileName := FileName(name, optimize)

	if cache != nil && cache.Dir != "" {
		p := filepath.Join(cache.Dir, fileName)
		if utils.FileExists(p) {
			slog.Debug("artifact found in pkg cache", "package", name, "path", p)
			return FromCache{Path: p}
		}
	}

	for _, d := range f.PkgDirs {
		p := filepath.Join(d, fileName)
		if utils.FileExists(p) {
			slog.Debug("artifact found in pkg dir", "package", name, "path", p)
			return FromExplicitDirectory{Path: p}
		}
	}

	return NotFound{}
}

var _ Finder = (*DirFinder)(nil)
