// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"lbstanza.org/x/pkgresolve/pkg/condimport"
	"lbstanza.org/x/pkgresolve/pkg/pkgname"
	"lbstanza.org/x/pkgresolve/pkg/schema"
	"lbstanza.org/x/pkgresolve/pkg/syntaxplugin"
	"lbstanza.org/x/pkgresolve/pkg/utils"
)

const (
	ProjectKind    = "Project"
	ProjectVersion = "v1"

	// namespaceWildcard marks a declaration covering every package under a namespace
	namespaceWildcard = "*"
)

var ErrInvalidProject = fmt.Errorf("invalid project")

// Project is the pre-parsed set of project statements
type Project struct {
	// absolute path of the file the project was read from, if any
	AbsolutePath string `yaml:"-"`

	schema.ManifestMeta `yaml:",inline"`
	Packages            []*PackageDecl        `yaml:"packages,omitempty"`
	PkgDirs             []string              `yaml:"pkg-dirs,omitempty"`
	PkgCache            string                `yaml:"pkg-cache,omitempty"`
	ConditionalImports  []condimport.Rule     `yaml:"conditional-imports,omitempty"`
	SyntaxPackages      []syntaxplugin.Group  `yaml:"syntax-packages,omitempty"`
	DynamicLibraries    []*DynamicLibraryDecl `yaml:"dynamic-libraries,omitempty"`
	BuildTargets        []*BuildTargetDecl    `yaml:"build-targets,omitempty"`
}

// PackageDecl says where sources live. "a/b/*" declares the directory of the
// namespace a/b, "*" the root directory, and a plain name the exact source
// file of that one package.
type PackageDecl struct {
	Name      string `yaml:"name"`
	DefinedIn string `yaml:"defined-in"`
}

func (d *PackageDecl) IsNamespace() bool {
	return d.Name == namespaceWildcard || strings.HasSuffix(d.Name, pkgname.Separator+namespaceWildcard)
}

// NamespaceSegments of "a/b/*" are [a b]; of "*" none
func (d *PackageDecl) NamespaceSegments() []string {
	if d.Name == namespaceWildcard {
		return nil
	}
	return pkgname.Name(strings.TrimSuffix(d.Name, pkgname.Separator+namespaceWildcard)).Segments()
}

// DynamicLibraryDecl lists the native libraries a package links against
type DynamicLibraryDecl struct {
	Package   string   `yaml:"package"`
	Libraries []string `yaml:"libraries"`
	Folders   []string `yaml:"folders,omitempty"`
}

// BuildTargetDecl names the build target that compiles the macros of File
type BuildTargetDecl struct {
	File   string `yaml:"file"`
	Target string `yaml:"target"`
}

// Validate checks every statement, returning all problems at once
func (p *Project) Validate() error {
	var errs []error

	for _, d := range p.Packages {
		if d.DefinedIn == "" {
			errs = append(errs, fmt.Errorf("package statement %q has no 'defined-in' path", d.Name))
		}
		if d.IsNamespace() {
			if d.Name == namespaceWildcard {
				continue
			}
			if _, err := pkgname.Parse(strings.Join(d.NamespaceSegments(), pkgname.Separator)); err != nil {
				errs = append(errs, fmt.Errorf("package statement %q: %w", d.Name, err))
			}
		} else if _, err := pkgname.Parse(d.Name); err != nil {
			errs = append(errs, fmt.Errorf("package statement %q: %w", d.Name, err))
		}
	}

	for _, r := range p.ConditionalImports {
		for _, n := range append([]string{r.Package}, r.Triggers...) {
			if _, err := pkgname.Parse(n); err != nil {
				errs = append(errs, fmt.Errorf("conditional import of %q: %w", r.Package, err))
			}
		}
	}

	for i, g := range p.SyntaxPackages {
		if g.Plugin == "" {
			errs = append(errs, fmt.Errorf("syntax package group #%d has no plugin", i))
		}
		for _, n := range g.Packages {
			if _, err := pkgname.Parse(n); err != nil {
				errs = append(errs, fmt.Errorf("syntax package group #%d: %w", i, err))
			}
		}
	}

	for _, d := range p.DynamicLibraries {
		if _, err := pkgname.Parse(d.Package); err != nil {
			errs = append(errs, fmt.Errorf("dynamic libraries statement: %w", err))
		}
	}

	for _, d := range p.BuildTargets {
		if d.File == "" || d.Target == "" {
			errs = append(errs, fmt.Errorf("build target statement needs both 'file' and 'target' (got %q, %q)", d.File, d.Target))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProject, err)
	}
	return nil
}

// ResolvePaths makes every path in the project absolute relative to baseDir
func (p *Project) ResolvePaths(baseDir string) {
	resolve := func(s string, _ int) string {
		return utils.ResolvePath(baseDir, s)
	}

	for _, d := range p.Packages {
		d.DefinedIn = utils.ResolvePath(baseDir, d.DefinedIn)
	}
	p.PkgDirs = lo.Map(p.PkgDirs, resolve)
	if p.PkgCache != "" {
		p.PkgCache = utils.ResolvePath(baseDir, p.PkgCache)
	}
	for i := range p.SyntaxPackages {
		p.SyntaxPackages[i].Plugin = utils.ResolvePath(baseDir, p.SyntaxPackages[i].Plugin)
	}
	for _, d := range p.DynamicLibraries {
		d.Folders = lo.Map(d.Folders, resolve)
	}
	for _, d := range p.BuildTargets {
		d.File = utils.ResolvePath(baseDir, d.File)
	}
}

// Dir is the directory of the project file
func (p *Project) Dir() string {
	return filepath.Dir(p.AbsolutePath)
}
