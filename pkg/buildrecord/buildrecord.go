// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package buildrecord persists the fingerprint records of previous builds
// in a YAML file. Loading and saving hold a file lock next to the record.
package buildrecord

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"

	"lbstanza.org/x/pkgresolve/pkg/freshness"
	"lbstanza.org/x/pkgresolve/pkg/resolutionerrors"
	"lbstanza.org/x/pkgresolve/pkg/schema"
	"lbstanza.org/x/pkgresolve/pkg/utils"
)

const (
	BuildRecordKind    = "BuildRecord"
	BuildRecordVersion = "v1"

	lockSuffix = ".lock"
)

var ErrInvalidBuildRecord = fmt.Errorf("invalid build record")

type File struct {
	schema.ManifestMeta `yaml:",inline"`
	CompilerVersion     string             `yaml:"compiler-version"`
	Records             []freshness.Record `yaml:"records"`
}

// Store is a freshness.Store backed by a build-record file. Add must not be
// called while other goroutines query the store.
type Store struct {
	path            string
	compilerVersion *semver.Version
	records         map[string]freshness.Record
}

// Load reads the build record at path. A missing file yields an empty store.
// Records written by a compiler with another major version than
// compilerVersion are ignored.
func Load(ctx context.Context, path string, compilerVersion *semver.Version) (*Store, error) {
	s := &Store{
		path:            path,
		compilerVersion: compilerVersion,
		records:         make(map[string]freshness.Record),
	}

	err := utils.WithLock(ctx, path+lockSuffix, func() error {
		bytes, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				slog.Debug("no build record", "path", path)
				return nil
			}
			return err
		}

		f, err := ReadContents(bytes)
		if err != nil {
			return resolutionerrors.NewMalformedBuildRecordError(fmt.Errorf("%s: %w", path, err))
		}

		written, err := semver.NewVersion(f.CompilerVersion)
		if err != nil {
			return resolutionerrors.NewMalformedBuildRecordError(fmt.Errorf("%s: %w: compiler-version %q: %w", path, ErrInvalidBuildRecord, f.CompilerVersion, err))
		}
		if written.Major() != compilerVersion.Major() {
			slog.Info("ignoring build record written by an incompatible compiler", "path", path, "written-by", written.String(), "current", compilerVersion.String())
			return nil
		}

		for _, r := range f.Records {
			s.add(r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func ReadContents(contents []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(contents, &f); err != nil {
		return nil, err
	}

	if err := schema.New(BuildRecordKind, BuildRecordVersion).ValidateSchema(f.ManifestMeta); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBuildRecord, err.Error())
	}
	return &f, nil
}

func (s *Store) Contains(r freshness.Record) bool {
	_, ok := s.records[r.Key()]
	return ok
}

// Add records a successful compilation. Any earlier record of the same
// package is replaced.
func (s *Store) Add(r freshness.Record) {
	for k, old := range s.records {
		if old.Package == r.Package {
			delete(s.records, k)
		}
	}
	s.add(r)
}

func (s *Store) add(r freshness.Record) {
	s.records[r.Key()] = freshness.NewRecord(r.Package, r.Artifact, r.Source, freshness.BuildConfig{
		Flags:    r.Flags,
		Optimize: r.Optimize,
		Debug:    r.Debug,
	})
}

// Records lists the stored records ordered by package, then key
func (s *Store) Records() []freshness.Record {
	rs := lo.Values(s.records)
	slices.SortFunc(rs, func(a, b freshness.Record) int {
		if c := strings.Compare(a.Package, b.Package); c != 0 {
			return c
		}
		return strings.Compare(a.Key(), b.Key())
	})
	return rs
}

func (s *Store) Path() string {
	return s.path
}

// Save writes the store back to its file, stamped with the current compiler version
func (s *Store) Save(ctx context.Context) error {
	f := File{
		ManifestMeta:    schema.New(BuildRecordKind, BuildRecordVersion),
		CompilerVersion: s.compilerVersion.String(),
		Records:         s.Records(),
	}
	bytes, err := yaml.Marshal(f)
	if err != nil {
		return err
	}

	return utils.WithLock(ctx, s.path+lockSuffix, func() error {
		tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
		if err != nil {
			return err
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.Write(bytes); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		return os.Rename(tmp.Name(), s.path)
	})
}

var _ freshness.Store = (*Store)(nil)
