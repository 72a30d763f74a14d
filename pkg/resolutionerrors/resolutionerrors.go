// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolutionerrors

import "errors"

const (
	ProjectNotFound      = "PROJECT_NOT_FOUND"
	MalformedProject     = "MALFORMED_PROJECT"
	MalformedBuildRecord = "MALFORMED_BUILD_RECORD"
	PackageNotFound      = "PACKAGE_NOT_FOUND"
	UnknownError         = "UNKNOWN_ERROR"
)

type ResolutionError struct {
	Code  string
	Cause error
}

func (r *ResolutionError) Error() string {
	if r.Cause != nil {
		return r.Code + ": " + r.Cause.Error()
	}
	return r.Code
}

func (r *ResolutionError) MarshalYAML() (interface{}, error) {
	var causeStr string
	if r.Cause != nil {
		causeStr = r.Cause.Error()
	}
	return map[string]interface{}{
		"code":  r.Code,
		"cause": causeStr,
	}, nil
}

func (r *ResolutionError) Unwrap() error {
	return r.Cause
}

var _ error = (*ResolutionError)(nil)

func NewProjectNotFoundError(cause error) *ResolutionError {
	return &ResolutionError{
		Code:  ProjectNotFound,
		Cause: cause,
	}
}

func NewMalformedProjectError(cause error) *ResolutionError {
	return &ResolutionError{
		Code:  MalformedProject,
		Cause: cause,
	}
}

func NewMalformedBuildRecordError(cause error) *ResolutionError {
	return &ResolutionError{
		Code:  MalformedBuildRecord,
		Cause: cause,
	}
}

func NewPackageNotFoundError(cause error) *ResolutionError {
	return &ResolutionError{
		Code:  PackageNotFound,
		Cause: cause,
	}
}

func NewUnknownError(cause error) *ResolutionError {
	return &ResolutionError{
		Code:  UnknownError,
		Cause: cause,
	}
}

// Standardize returns err as a ResolutionError, wrapping it as UNKNOWN_ERROR if it isn't one
func Standardize(err error) *ResolutionError {
	if err == nil {
		return nil
	}

	var resErr *ResolutionError
	if errors.As(err, &resErr) {
		return resErr
	}

	return NewUnknownError(err)
}

// HasCode reports whether err wraps a ResolutionError with the given code
func HasCode(err error, code string) bool {
	var resErr *ResolutionError
	return errors.As(err, &resErr) && resErr.Code == code
}
