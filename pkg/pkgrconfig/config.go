// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package pkgrconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"

	"lbstanza.org/x/pkgresolve/pkg/buildinfo"
	"lbstanza.org/x/pkgresolve/pkg/freshness"
	"lbstanza.org/x/pkgresolve/pkg/simpleplatform"
	"lbstanza.org/x/pkgresolve/pkg/utils"
)

type Config struct {
	HomePath string `yaml:"-"`

	BuildRecordPath string `yaml:"build-record,omitempty"`
	// PkgCache overrides the project's pkg-cache
	PkgCache string `yaml:"pkg-cache,omitempty"`

	Optimize bool     `yaml:"optimize,omitempty"`
	Debug    bool     `yaml:"debug,omitempty"`
	Flags    []string `yaml:"flags,omitempty"`
	// Platform defaults to the current OS
	Platform *simpleplatform.Platform `yaml:"platform,omitempty"`

	// CompilerVersion defaults to the version of this binary
	CompilerVersion string `yaml:"compiler-version,omitempty"`
}

// BuildConfig is the active build configuration used for freshness checks.
// Its flags include the platform flag.
func (c *Config) BuildConfig() freshness.BuildConfig {
	return freshness.BuildConfig{
		Flags:    lo.Uniq(append(slices.Clone(c.Flags), c.Platform.Flag())),
		Optimize: c.Optimize,
		Debug:    c.Debug,
	}
}

func (c *Config) ParsedCompilerVersion() (*semver.Version, error) {
	v, err := semver.NewVersion(c.CompilerVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid compiler version %q: %w", c.CompilerVersion, err)
	}
	return v, nil
}

func Get() (*Config, error) {
	homePath, err := getHomePath()
	if err != nil {
		return nil, err
	}
	return GetWithCustomHome(homePath)
}

func GetWithCustomHome(homePath string) (*Config, error) {
	config := Config{}

	// pkgr-config.yaml is optional
	configFilePath := filepath.Join(homePath, ConfigFileName)
	fileInfo, err := os.Stat(configFilePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		if fileInfo.IsDir() {
			return nil, fmt.Errorf("%q is directory and not a file", configFilePath)
		}

		bytes, err := os.ReadFile(configFilePath)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(bytes, &config); err != nil {
			return nil, fmt.Errorf("%s: %w", configFilePath, err)
		}
	}

	if v, ok := os.LookupEnv(BuildRecordEnvVar); ok {
		config.BuildRecordPath = v
	}
	if config.BuildRecordPath == "" {
		config.BuildRecordPath = filepath.Join(homePath, BuildRecordFileName)
	}
	config.BuildRecordPath = utils.ResolvePath(homePath, config.BuildRecordPath)

	if v, ok := os.LookupEnv(PkgCacheEnvVar); ok {
		config.PkgCache = v
	}

	optimize, ok, err := utils.BoolEnvVar(OptimizeEnvVar)
	if err != nil {
		return nil, err
	}
	if ok {
		config.Optimize = optimize
	}

	debug, ok, err := utils.BoolEnvVar(DebugEnvVar)
	if err != nil {
		return nil, err
	}
	if ok {
		config.Debug = debug
	}

	if flags, ok := utils.ListEnvVar(FlagsEnvVar); ok {
		config.Flags = flags
	}

	if v, ok := os.LookupEnv(PlatformEnvVar); ok {
		p, err := simpleplatform.ParsePlatform(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", PlatformEnvVar, err)
		}
		config.Platform = &p
	}
	if config.Platform == nil {
		p := simpleplatform.CurrentPlatform()
		config.Platform = &p
	}

	if v, ok := os.LookupEnv(CompilerVersionEnvVar); ok {
		config.CompilerVersion = v
	}
	if config.CompilerVersion == "" {
		config.CompilerVersion = buildinfo.CompilerVersion().String()
	}

	config.HomePath = homePath
	return &config, nil
}

func getHomePath() (string, error) {
	if v, ok := os.LookupEnv(HomeEnvVar); ok {
		return v, nil
	}

	return getAppUserDataDirectory("pkgr")
}

func getAppUserDataDirectory(appName string) (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir, ok := os.LookupEnv("APPDATA")
		if !ok {
			return "", fmt.Errorf("APPDATA environment variable is not set")
		}
		return filepath.Join(dir, appName), nil
	default:
		dir, ok := os.LookupEnv("HOME")
		if !ok {
			return "", fmt.Errorf("HOME environment variable is not set")
		}
		return filepath.Join(dir, "."+appName), nil
	}
}

// GetProjectFilePath returns the project file named by PKGR_PROJECT, or the
// closest stanza.proj.yaml in the current directory or its ancestors
func GetProjectFilePath() (absPath string, found bool, err error) {
	if p, ok := os.LookupEnv(ProjectEnvVar); ok {
		absPath, err = filepath.Abs(p)
		if err != nil {
			return "", false, err
		}
		if isDir, err := utils.DirExists(absPath); err != nil {
			return "", false, err
		} else if isDir {
			absPath = filepath.Join(absPath, ProjectFileName)
		}
		return absPath, true, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, err
	}
	absPath, found, err = utils.FindInAncestors(cwd, ProjectFileName)
	if err != nil {
		return "", false, fmt.Errorf("error looking for %s: %w", ProjectFileName, err)
	}
	return
}
