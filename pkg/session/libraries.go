// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"github.com/samber/lo"
)

// RequiredLibraries are the native libraries needed to link a set of packages
type RequiredLibraries struct {
	// package -> library names
	Libraries map[string][]string
	// search folders, deduplicated, in first-seen order
	Folders []string
}

// DynamicLibraries collects the native libraries declared for names.
// Packages without declarations are left out.
func (s *Session) DynamicLibraries(names ...string) *RequiredLibraries {
	result := &RequiredLibraries{Libraries: make(map[string][]string)}

	var folders []string
	for _, name := range lo.Uniq(names) {
		decls, ok := s.dynamicLibs[name]
		if !ok {
			continue
		}
		for _, d := range decls {
			result.Libraries[name] = append(result.Libraries[name], d.Libraries...)
			folders = append(folders, d.Folders...)
		}
	}
	result.Folders = lo.Uniq(folders)
	return result
}
