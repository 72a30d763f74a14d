// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package freshness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Fingerprint is a content stamp of a file
type Fingerprint string

// BuildConfig is the set of compiler settings that influence codegen
type BuildConfig struct {
	Flags    []string
	Optimize bool
	Debug    bool
}

// Record identifies one compilation of a package. A compiled artifact may be
// reused only if an identical record was stored when it was produced.
type Record struct {
	Package  string      `yaml:"package"`
	Artifact Fingerprint `yaml:"artifact"`
	Source   Fingerprint `yaml:"source"`
	Flags    []string    `yaml:"flags,omitempty"`
	Optimize bool        `yaml:"optimize"`
	Debug    bool        `yaml:"debug"`
}

func NewRecord(pkg string, artifact, source Fingerprint, config BuildConfig) Record {
	return Record{
		Package:  pkg,
		Artifact: artifact,
		Source:   source,
		Flags:    canonicalFlags(config.Flags),
		Optimize: config.Optimize,
		Debug:    config.Debug,
	}
}

// flags are a set: order and repetition don't change codegen
func canonicalFlags(flags []string) []string {
	fs := lo.Uniq(flags)
	slices.Sort(fs)
	return fs
}

// Key is the canonical equality key of r
func (r Record) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s|optimize=%t|debug=%t",
		r.Package, r.Artifact, r.Source,
		strings.Join(canonicalFlags(r.Flags), ","),
		r.Optimize, r.Debug)
}

// Store is the persistent record of previous builds
type Store interface {
	Contains(r Record) bool
}
