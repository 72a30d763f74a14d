// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"lbstanza.org/x/pkgresolve/pkg/resolutionerrors"
	"lbstanza.org/x/pkgresolve/pkg/schema"
)

// Read loads a project file, expanding environment variables and making
// every declared path absolute relative to the file's directory
func Read(filePath string) (*Project, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	bytes, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, resolutionerrors.NewProjectNotFoundError(err)
		}
		return nil, err
	}

	p, err := ReadFromContents(bytes)
	if err != nil {
		return nil, resolutionerrors.NewMalformedProjectError(fmt.Errorf("%s: %w", abs, err))
	}
	p.AbsolutePath = abs
	p.ResolvePaths(filepath.Dir(abs))
	return p, nil
}

func ReadFromContents(contents []byte) (*Project, error) {
	expanded, err := expandEnv(contents)
	if err != nil {
		return nil, err
	}

	var p Project
	if err := yaml.UnmarshalWithOptions(expanded, &p, yaml.Strict()); err != nil {
		return nil, err
	}

	if err := schema.New(ProjectKind, ProjectVersion).ValidateSchema(p.ManifestMeta); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProject, err.Error())
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func expandEnv(contents []byte) ([]byte, error) {
	var undefinedVars []string

	out := os.Expand(string(contents), func(key string) string {
		val, ok := os.LookupEnv(key)
		if !ok {
			undefinedVars = append(undefinedVars, key)
			return ""
		}
		return val
	})

	if len(undefinedVars) > 0 {
		return []byte{}, fmt.Errorf("environment variables used in the project file are not set: %v", undefinedVars)
	}
	return []byte(out), nil
}
