// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package session answers package-resolution queries for one project.
// A Session is built once from the project's statements and never mutated
// afterwards, so it can be shared by concurrent callers.
package session

import (
	"path/filepath"
	"slices"

	"github.com/samber/lo"

	"lbstanza.org/x/pkgresolve/pkg/artifact"
	"lbstanza.org/x/pkgresolve/pkg/condimport"
	"lbstanza.org/x/pkgresolve/pkg/freshness"
	"lbstanza.org/x/pkgresolve/pkg/pathtrie"
	"lbstanza.org/x/pkgresolve/pkg/project"
	"lbstanza.org/x/pkgresolve/pkg/syntaxplugin"
	"lbstanza.org/x/pkgresolve/pkg/utils/stringset"
)

type Options struct {
	// Finder defaults to a DirFinder over the project's pkg dirs
	Finder artifact.Finder
	// Store holds the records of previous builds. Without one, cached
	// artifacts are never trusted.
	Store freshness.Store
	// Fingerprinter defaults to freshness.ContentFingerprinter
	Fingerprinter freshness.Fingerprinter
	Build         freshness.BuildConfig
	// PkgCache overrides the project's pkg-cache directory
	PkgCache string
}

type Session struct {
	// package name -> explicitly declared source file
	sourceFiles map[string]string
	trie        *pathtrie.Trie

	finder   artifact.Finder
	oracle   *freshness.Oracle
	optimize bool
	pkgCache string

	conditional *condimport.Expander
	syntax      *syntaxplugin.Resolver
	// cleaned file path -> build target
	macroTargets map[string]string
	dynamicLibs  map[string][]project.DynamicLibraryDecl
}

// New builds a session. It fails only if the project statements are malformed.
func New(p *project.Project, opts Options) (*Session, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		sourceFiles:  make(map[string]string),
		trie:         pathtrie.New(),
		finder:       opts.Finder,
		optimize:     opts.Build.Optimize,
		pkgCache:     lo.Ternary(opts.PkgCache != "", opts.PkgCache, p.PkgCache),
		conditional:  condimport.New(p.ConditionalImports),
		syntax:       syntaxplugin.New(p.SyntaxPackages),
		macroTargets: make(map[string]string),
		dynamicLibs:  make(map[string][]project.DynamicLibraryDecl),
	}

	for _, d := range p.Packages {
		if d.IsNamespace() {
			s.trie.Insert(d.NamespaceSegments(), d.DefinedIn)
		} else {
			s.sourceFiles[d.Name] = d.DefinedIn
		}
	}

	for _, d := range p.DynamicLibraries {
		s.dynamicLibs[d.Package] = append(s.dynamicLibs[d.Package], project.DynamicLibraryDecl{
			Package:   d.Package,
			Libraries: slices.Clone(d.Libraries),
			Folders:   slices.Clone(d.Folders),
		})
	}

	for _, t := range p.BuildTargets {
		s.macroTargets[filepath.Clean(t.File)] = t.Target
	}

	if s.finder == nil {
		s.finder = artifact.NewDirFinder(p.PkgDirs...)
	}
	fingerprinter := opts.Fingerprinter
	if fingerprinter == nil {
		fingerprinter = freshness.ContentFingerprinter{}
	}
	s.oracle = freshness.NewOracle(opts.Store, fingerprinter, opts.Build)

	return s, nil
}

// PkgCacheDir is the directory holding build-derived artifacts, if configured
func (s *Session) PkgCacheDir() (string, bool) {
	return s.pkgCache, s.pkgCache != ""
}

// ConditionalImports returns the packages that must be loaded because of
// the conditional-import rules, given the already loaded ones. Sorted.
func (s *Session) ConditionalImports(loaded ...string) []string {
	return s.conditional.Expand(stringset.New(loaded...)).Sorted()
}

// TriggeredImports is the single step of ConditionalImports: only rules whose
// triggers are all in loaded fire. Sorted.
func (s *Session) TriggeredImports(loaded ...string) []string {
	return s.conditional.Triggered(stringset.New(loaded...)).Sorted()
}

// FindSyntaxPackages returns the plugin implementing every required syntax package
func (s *Session) FindSyntaxPackages(required ...string) (string, bool) {
	return s.syntax.Resolve(required)
}

// AllListedSyntaxGroups lists the plugin groups in preference order
func (s *Session) AllListedSyntaxGroups() []syntaxplugin.Group {
	return s.syntax.Groups()
}

// FindMacroBuildTarget returns the build target compiling the macros defined in filename
func (s *Session) FindMacroBuildTarget(filename string) (string, bool) {
	t, ok := s.macroTargets[filepath.Clean(filename)]
	return t, ok
}
