// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolutionerrors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
)

func TestStandardize(t *testing.T) {
	assert.Nil(t, Standardize(nil))

	plain := errors.New("oops")
	assert.Equal(t, UnknownError, Standardize(plain).Code)
	assert.ErrorIs(t, Standardize(plain), plain)

	wrapped := fmt.Errorf("loading: %w", NewProjectNotFoundError(os.ErrNotExist))
	std := Standardize(wrapped)
	assert.Equal(t, ProjectNotFound, std.Code)
	assert.ErrorIs(t, std, os.ErrNotExist)
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("x: %w", NewMalformedProjectError(errors.New("bad")))
	assert.True(t, HasCode(err, MalformedProject))
	assert.False(t, HasCode(err, ProjectNotFound))
	assert.False(t, HasCode(errors.New("plain"), MalformedProject))
}

func TestMarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(NewPackageNotFoundError(errors.New("math/vector")))
	assert.NoError(t, err)
	assert.Contains(t, string(out), "code: PACKAGE_NOT_FOUND")
	assert.Contains(t, string(out), "cause: math/vector")
}
