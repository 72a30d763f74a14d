// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package pkgrconfig

const envVarPrefix = "PKGR_"

const (
	// HomeEnvVar
	// PKGR_HOME is the absolute path to the `pkgr` home directory
	HomeEnvVar = envVarPrefix + "HOME"

	// ProjectEnvVar
	// PKGR_PROJECT is a path to a project file, or to the directory containing stanza.proj.yaml.
	// This allows running a command against a project without changing directory
	ProjectEnvVar = envVarPrefix + "PROJECT"

	// BuildRecordEnvVar
	// PKGR_BUILD_RECORD overrides the build-record file consulted for artifact freshness
	// 	Default: $PKGR_HOME/build-record.yaml
	BuildRecordEnvVar = envVarPrefix + "BUILD_RECORD"

	// PkgCacheEnvVar
	// PKGR_PKG_CACHE overrides the pkg-cache directory declared by the project
	PkgCacheEnvVar = envVarPrefix + "PKG_CACHE"

	// OptimizeEnvVar
	// PKGR_OPTIMIZE selects optimized (.fpkg) artifacts
	OptimizeEnvVar = envVarPrefix + "OPTIMIZE"

	// DebugEnvVar
	// PKGR_DEBUG marks the build as a debug build for freshness checks
	DebugEnvVar = envVarPrefix + "DEBUG"

	// FlagsEnvVar
	// PKGR_FLAGS is a comma-separated list of active build flags
	FlagsEnvVar = envVarPrefix + "FLAGS"

	// PlatformEnvVar
	// PKGR_PLATFORM sets the target operating system, whose PLATFORM-<OS> flag every build carries
	// 	Default: the current OS
	//  Possible values: linux os-x windows
	PlatformEnvVar = envVarPrefix + "PLATFORM"

	// CompilerVersionEnvVar
	// PKGR_COMPILER_VERSION is the compiler version build records must be compatible with
	CompilerVersionEnvVar = envVarPrefix + "COMPILER_VERSION"

	// LogLevelEnvVar
	// PKGR_LOG_LEVEL sets the log level.
	// 	Default: info
	//  Possible values: debug info warn error
	LogLevelEnvVar = envVarPrefix + "LOG_LEVEL"
)
