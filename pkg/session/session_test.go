// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lbstanza.org/x/pkgresolve/pkg/artifact"
	"lbstanza.org/x/pkgresolve/pkg/freshness"
	"lbstanza.org/x/pkgresolve/pkg/project"
	"lbstanza.org/x/pkgresolve/pkg/syntaxplugin"
	"lbstanza.org/x/pkgresolve/pkg/testutil"
)

type fakeFinder struct {
	result artifact.Candidate
	calls  []*artifact.CacheParams
}

func (f *fakeFinder) FindArtifact(_ string, _ bool, cache *artifact.CacheParams) artifact.Candidate {
	f.calls = append(f.calls, cache)
	if f.result == nil {
		return artifact.NotFound{}
	}
	return f.result
}

type memStore map[string]struct{}

func (m memStore) Contains(r freshness.Record) bool {
	_, ok := m[r.Key()]
	return ok
}

func recordFor(t *testing.T, pkg, artifactPath, sourcePath string, config freshness.BuildConfig) freshness.Record {
	fp := freshness.ContentFingerprinter{}
	a, err := fp.Fingerprint(artifactPath)
	require.NoError(t, err)
	s, err := fp.Fingerprint(sourcePath)
	require.NoError(t, err)
	return freshness.NewRecord(pkg, a, s, config)
}

func newSession(t *testing.T, p *project.Project, opts Options) *Session {
	s, err := New(p, opts)
	require.NoError(t, err)
	return s
}

func mathProject(dir string) *project.Project {
	return &project.Project{
		Packages: []*project.PackageDecl{
			{Name: "math/*", DefinedIn: filepath.Join(dir, "src", "math")},
		},
		PkgCache: filepath.Join(dir, "cache"),
	}
}

func TestFindPackageSourceOnly(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFile(t, filepath.Join(dir, "src", "math", "vector.stanza"), "defpackage math/vector")

	s := newSession(t, mathProject(dir), Options{})
	loc, ok := s.FindPackage("math/vector")
	require.True(t, ok)
	assert.Equal(t, "math/vector", loc.Package)
	assert.Equal(t, src, lo.FromPtr(loc.Source))
	assert.Equal(t, artifact.NotFound{}, loc.Artifact)
	assert.False(t, loc.UseArtifact)
}

func TestFindPackageRequiresSourceOnDisk(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, mathProject(dir), Options{})

	_, ok := s.FindPackage("math/vector")
	assert.False(t, ok)
}

func TestFindPackageFreshness(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFile(t, filepath.Join(dir, "src", "math", "vector.stanza"), "defpackage math/vector")
	cached := testutil.WriteFile(t, filepath.Join(dir, "cache", "math$vector.fpkg"), "compiled")
	otherArtifact := testutil.WriteFile(t, filepath.Join(dir, "other", "math$vector.fpkg"), "compiled differently")
	otherSource := testutil.WriteFile(t, filepath.Join(dir, "other", "vector.stanza"), "defpackage math/vector ; edited")

	recorded := freshness.BuildConfig{Flags: []string{"PLATFORM-LINUX"}, Optimize: true}
	store := memStore{recordFor(t, "math/vector", cached, src, recorded).Key(): {}}

	tests := []struct {
		name   string
		config freshness.BuildConfig
		store  memStore
		want   bool
	}{
		{name: "identical fingerprints and flags", config: recorded, store: store, want: true},
		{name: "different build flag", config: freshness.BuildConfig{Flags: []string{"PLATFORM-OS-X"}, Optimize: true}, store: store},
		{name: "debug flag", config: freshness.BuildConfig{Flags: recorded.Flags, Optimize: true, Debug: true}, store: store},
		{name: "artifact fingerprint changed", config: recorded, store: memStore{recordFor(t, "math/vector", otherArtifact, src, recorded).Key(): {}}},
		{name: "source fingerprint changed", config: recorded, store: memStore{recordFor(t, "math/vector", cached, otherSource, recorded).Key(): {}}},
		{name: "empty store", config: recorded, store: memStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, mathProject(dir), Options{Store: tt.store, Build: tt.config, Finder: &fakeFinder{result: artifact.FromCache{Path: cached}}})
			loc, ok := s.FindPackage("math/vector")
			require.True(t, ok)
			assert.Equal(t, tt.want, loc.UseArtifact)
			assert.Equal(t, src, lo.FromPtr(loc.Source))
		})
	}

	t.Run("optimize flag selects another artifact", func(t *testing.T) {
		// the default finder looks for the debug artifact, which isn't there
		s := newSession(t, mathProject(dir), Options{Store: store, Build: freshness.BuildConfig{Flags: recorded.Flags}})
		loc, ok := s.FindPackage("math/vector")
		require.True(t, ok)
		assert.False(t, loc.UseArtifact)
		assert.Equal(t, artifact.NotFound{}, loc.Artifact)
	})

	t.Run("default finder", func(t *testing.T) {
		s := newSession(t, mathProject(dir), Options{Store: store, Build: recorded})
		loc, ok := s.FindPackage("math/vector")
		require.True(t, ok)
		assert.True(t, loc.UseArtifact)
		assert.Equal(t, artifact.FromCache{Path: cached}, loc.Artifact)
	})
}

func TestFindPackageDecisionTable(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "src", "math", "vector.stanza"), "defpackage math/vector")

	tests := []struct {
		name        string
		pkg         string
		candidate   artifact.Candidate
		wantFound   bool
		wantUse     bool
		wantCacheOk bool
	}{
		{name: "explicit dir without source is trusted", pkg: "math/matrix", candidate: artifact.FromExplicitDirectory{Path: "/x/math$matrix.pkg"}, wantFound: true, wantUse: true},
		{name: "explicit dir with source is recompiled", pkg: "math/vector", candidate: artifact.FromExplicitDirectory{Path: "/x/math$vector.pkg"}, wantFound: true, wantCacheOk: true},
		{name: "cache without source is unusable", pkg: "math/matrix", candidate: artifact.FromCache{Path: "/c/math$matrix.pkg"}},
		{name: "nothing at all", pkg: "math/matrix", candidate: artifact.NotFound{}},
		{name: "source without artifact", pkg: "math/vector", candidate: artifact.NotFound{}, wantFound: true, wantCacheOk: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := &fakeFinder{result: tt.candidate}
			s := newSession(t, mathProject(dir), Options{Finder: finder, Store: memStore{}})

			loc, ok := s.FindPackage(tt.pkg)
			require.Equal(t, tt.wantFound, ok)
			if ok {
				assert.Equal(t, tt.wantUse, loc.UseArtifact)
				assert.Equal(t, tt.candidate, loc.Artifact)
			}

			require.Len(t, finder.calls, 1)
			if tt.wantCacheOk {
				require.NotNil(t, finder.calls[0])
				assert.Equal(t, filepath.Join(dir, "cache"), finder.calls[0].Dir)
			} else {
				assert.Nil(t, finder.calls[0])
			}
		})
	}
}

func TestFindPackageWithoutCacheDir(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "src", "math", "vector.stanza"), "defpackage math/vector")
	p := mathProject(dir)
	p.PkgCache = ""

	finder := &fakeFinder{}
	s := newSession(t, p, Options{Finder: finder})
	_, ok := s.FindPackage("math/vector")
	require.True(t, ok)
	require.Len(t, finder.calls, 1)
	assert.Nil(t, finder.calls[0])

	_, ok = s.PkgCacheDir()
	assert.False(t, ok)

	s = newSession(t, p, Options{Finder: finder, PkgCache: "/override"})
	d, ok := s.PkgCacheDir()
	assert.True(t, ok)
	assert.Equal(t, "/override", d)
}

func TestExplicitSourceFileTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "src", "math", "vector.stanza"), "defpackage math/vector")
	p := mathProject(dir)
	override := filepath.Join(dir, "elsewhere", "vec.stanza")
	p.Packages = append(p.Packages, &project.PackageDecl{Name: "math/vector", DefinedIn: override})

	s := newSession(t, p, Options{})
	loc, ok := s.FindPackage("math/vector")
	require.True(t, ok)
	// declared files are taken at their word, existence is not checked
	assert.Equal(t, override, lo.FromPtr(loc.Source))
}

func TestNewRejectsMalformedProject(t *testing.T) {
	_, err := New(&project.Project{Packages: []*project.PackageDecl{{Name: "bad name", DefinedIn: "x"}}}, Options{})
	assert.ErrorIs(t, err, project.ErrInvalidProject)
}

func TestSessionIgnoresLaterProjectChanges(t *testing.T) {
	p := &project.Project{
		DynamicLibraries: []*project.DynamicLibraryDecl{{Package: "gfx/gl", Libraries: []string{"libGL.so"}, Folders: []string{"/usr/lib"}}},
		SyntaxPackages:   []syntaxplugin.Group{{Packages: []string{"sql"}, Plugin: "sql.so"}},
	}
	s := newSession(t, p, Options{})

	p.DynamicLibraries[0].Libraries[0] = "libEGL.so"
	p.DynamicLibraries[0].Folders = append(p.DynamicLibraries[0].Folders, "/opt/lib")
	p.DynamicLibraries[0].Package = "gfx/egl"
	p.SyntaxPackages[0].Packages[0] = "json"

	libs := s.DynamicLibraries("gfx/gl")
	assert.Equal(t, map[string][]string{"gfx/gl": {"libGL.so"}}, libs.Libraries)
	assert.Equal(t, []string{"/usr/lib"}, libs.Folders)
	assert.Equal(t, []syntaxplugin.Group{{Packages: []string{"sql"}, Plugin: "sql.so"}}, s.AllListedSyntaxGroups())
}

func TestSampleProject(t *testing.T) {
	p, err := project.Read(filepath.Join(testutil.CopyTestdata(t, "sample-project"), "stanza.proj.yaml"))
	require.NoError(t, err)
	s := newSession(t, p, Options{})

	t.Run("namespace package", func(t *testing.T) {
		loc, ok := s.FindPackage("math/vector")
		require.True(t, ok)
		assert.Equal(t, filepath.Join(p.Dir(), "src", "math", "vector.stanza"), lo.FromPtr(loc.Source))
		assert.False(t, loc.UseArtifact)
	})

	t.Run("root namespace", func(t *testing.T) {
		loc, ok := s.FindPackage("core")
		require.True(t, ok)
		assert.Equal(t, filepath.Join(p.Dir(), "src", "core.stanza"), lo.FromPtr(loc.Source))
	})

	t.Run("prebuilt package", func(t *testing.T) {
		loc, ok := s.FindPackage("gfx/gl")
		require.True(t, ok)
		assert.Nil(t, loc.Source)
		assert.True(t, loc.UseArtifact)
		assert.Equal(t, artifact.FromExplicitDirectory{Path: filepath.Join(p.Dir(), "prebuilt", "gfx$gl.pkg")}, loc.Artifact)
	})

	t.Run("unknown package", func(t *testing.T) {
		_, ok := s.FindPackage("collections")
		assert.False(t, ok)
	})

	t.Run("many packages", func(t *testing.T) {
		found, missing := s.FindPackages("app", "collections", "gfx/gl", "io")
		assert.Equal(t, []string{"app", "gfx/gl"}, lo.Map(found, func(l *ResolvedLocation, _ int) string { return l.Package }))
		assert.Equal(t, []string{"collections", "io"}, missing)
	})

	t.Run("conditional imports", func(t *testing.T) {
		assert.Empty(t, s.ConditionalImports("math/vector"))
		assert.Equal(t, []string{"math/vector-tests"}, s.ConditionalImports("math/vector", "tests"))
		assert.Equal(t, []string{"math/vector-tests"}, s.TriggeredImports("math/vector", "tests"))
		assert.Empty(t, s.TriggeredImports("math/vector", "tests", "math/vector-tests"))
	})

	t.Run("syntax packages", func(t *testing.T) {
		plugin, ok := s.FindSyntaxPackages("sql")
		require.True(t, ok)
		assert.Equal(t, filepath.Join(p.Dir(), "plugins", "data.so"), plugin)

		_, ok = s.FindSyntaxPackages("xml")
		assert.False(t, ok)

		groups := s.AllListedSyntaxGroups()
		require.Len(t, groups, 2)
		assert.Equal(t, []string{"sql", "json"}, groups[0].Packages)
		assert.IsType(t, syntaxplugin.Group{}, groups[1])
	})

	t.Run("macro build target", func(t *testing.T) {
		target, ok := s.FindMacroBuildTarget(filepath.Join(p.Dir(), "src", ".", "macros.stanza"))
		require.True(t, ok)
		assert.Equal(t, "macros", target)

		_, ok = s.FindMacroBuildTarget(filepath.Join(p.Dir(), "src", "other.stanza"))
		assert.False(t, ok)
	})

	t.Run("dynamic libraries", func(t *testing.T) {
		libs := s.DynamicLibraries("gfx/window", "app", "gfx/gl", "gfx/window")
		assert.Equal(t, map[string][]string{
			"gfx/gl":     {"libGL.so", "libGLU.so"},
			"gfx/window": {"libglfw.so"},
		}, libs.Libraries)
		assert.Equal(t, []string{"/usr/lib", "/opt/glfw/lib"}, libs.Folders)

		assert.Empty(t, s.DynamicLibraries("app").Libraries)
	})

	t.Run("cache dir", func(t *testing.T) {
		d, ok := s.PkgCacheDir()
		require.True(t, ok)
		assert.Equal(t, filepath.Join(p.Dir(), ".pkg-cache"), d)
	})
}
