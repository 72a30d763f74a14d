// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package buildinfo

import (
	"github.com/Masterminds/semver/v3"
)

// To be populated at build-time, e.g.:
// go build -ldflags "-X 'lbstanza.org/x/pkgresolve/pkg/buildinfo.Version=0.18.4'"
var (
	Version   string
	Build     string
	BuildDate string
)

// DevVersion is reported when Version was not set at build-time, or isn't semver
const DevVersion = "0.0.0-dev"

type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Build     string `json:"build" yaml:"build"`
	BuildDate string `json:"buildDate" yaml:"build-date"`
}

func defaultUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func Get() VersionInfo {
	return VersionInfo{
		Version:   defaultUnknown(Version),
		Build:     defaultUnknown(Build),
		BuildDate: defaultUnknown(BuildDate),
	}
}

// CompilerVersion is the version build records written by this binary carry
func CompilerVersion() *semver.Version {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return semver.MustParse(DevVersion)
	}
	return v
}
