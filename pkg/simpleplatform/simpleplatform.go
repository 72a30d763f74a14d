// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package simpleplatform

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
)

const flagPrefix = "PLATFORM-"

// GOOS -> the name used in build flags
var flagNames = map[string]string{
	"linux":   "LINUX",
	"darwin":  "OS-X",
	"windows": "WINDOWS",
}

// Platform is the operating system packages are compiled for. Every build
// implicitly carries its platform flag, e.g. PLATFORM-LINUX.
type Platform struct {
	// OS is a GOOS value, for example `linux` or `darwin`
	OS string
}

// ParsePlatform accepts a GOOS value or its flag name, case-insensitively ("os-x" == "darwin")
func ParsePlatform(platformStr string) (Platform, error) {
	s := strings.ToLower(strings.TrimPrefix(strings.ToUpper(platformStr), flagPrefix))
	if s == "" {
		return Platform{}, fmt.Errorf("failed to parse platform %q: expected an operating system such as linux, os-x or windows", platformStr)
	}
	if goos, ok := lo.FindKey(flagNames, strings.ToUpper(s)); ok {
		return Platform{OS: goos}, nil
	}
	return Platform{OS: s}, nil
}

func CurrentPlatform() Platform {
	return Platform{OS: runtime.GOOS}
}

// Flag is the build flag announcing this platform to the compiled code
func (p Platform) Flag() string {
	name, ok := flagNames[p.OS]
	if !ok {
		name = strings.ToUpper(p.OS)
	}
	return flagPrefix + name
}

func (p Platform) String() string {
	return p.OS
}

func (p Platform) MarshalYAML() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Platform) UnmarshalYAML(bytes []byte) error {
	var unmarshalled string
	if err := yaml.Unmarshal(bytes, &unmarshalled); err != nil {
		return fmt.Errorf("failed to unmarshal platform: %w", err)
	}
	parsed, err := ParsePlatform(unmarshalled)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

var _ yaml.BytesUnmarshaler = (*Platform)(nil)
var _ yaml.BytesMarshaler = Platform{}
