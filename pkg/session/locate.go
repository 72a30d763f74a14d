// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"log/slog"

	"github.com/samber/lo"

	"lbstanza.org/x/pkgresolve/pkg/artifact"
	"lbstanza.org/x/pkgresolve/pkg/pkgname"
	"lbstanza.org/x/pkgresolve/pkg/utils"
)

// ResolvedLocation says where a package comes from. UseArtifact is true
// when the compiled artifact can be loaded instead of compiling Source.
type ResolvedLocation struct {
	Package     string
	Source      *string
	Artifact    artifact.Candidate
	UseArtifact bool
}

// FindPackage locates the source and compiled artifact of name and decides
// which one supplies the package. It returns false if neither is usable.
func (s *Session) FindPackage(name string) (*ResolvedLocation, bool) {
	source := s.findSource(name)

	var cache *artifact.CacheParams
	if s.pkgCache != "" && source != nil {
		cache = &artifact.CacheParams{Dir: s.pkgCache, SourceFile: *source}
	}
	candidate := s.finder.FindArtifact(name, s.optimize, cache)

	useArtifact := false
	switch a := candidate.(type) {
	case artifact.FromCache:
		if source != nil {
			useArtifact = s.oracle.IsFresh(name, a.Path, *source)
		}
	case artifact.FromExplicitDirectory:
		useArtifact = source == nil
	}

	slog.Debug("find package", "package", name, "source", lo.FromPtr(source), "artifact", candidate.String(), "use-artifact", useArtifact)
	if !useArtifact && source == nil {
		return nil, false
	}
	return &ResolvedLocation{
		Package:     name,
		Source:      source,
		Artifact:    candidate,
		UseArtifact: useArtifact,
	}, true
}

func (s *Session) findSource(name string) *string {
	if p, ok := s.sourceFiles[name]; ok {
		return &p
	}

	n, err := pkgname.Parse(name)
	if err != nil {
		return nil
	}
	p, ok := s.trie.FilenameFor(n)
	if !ok || !utils.FileExists(p) {
		return nil
	}
	return &p
}

// FindPackages resolves every name independently. Names that cannot be
// located are returned separately, in input order.
func (s *Session) FindPackages(names ...string) (found []*ResolvedLocation, missing []string) {
	for _, n := range names {
		if loc, ok := s.FindPackage(n); ok {
			found = append(found, loc)
		} else {
			missing = append(missing, n)
		}
	}
	return found, missing
}
