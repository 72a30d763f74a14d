// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package builtincommand

import (
	"github.com/samber/lo"
)

type BuiltinCommand string

const (
	Find    BuiltinCommand = "find"
	Imports BuiltinCommand = "imports"
	Syntax  BuiltinCommand = "syntax"
	Libs    BuiltinCommand = "libs"
	Target  BuiltinCommand = "target"
	Deps    BuiltinCommand = "deps"
	Stamp   BuiltinCommand = "stamp"
	Version BuiltinCommand = "version"
)

var BuiltinCommands = []BuiltinCommand{Find, Imports, Syntax, Libs, Target, Deps, Stamp, Version}

// NeedsProject reports whether the command named by args[1] resolves
// packages, i.e. can only run inside a project
func NeedsProject(args []string) bool {
	if len(args) > 1 {
		return lo.Contains(lo.Without(BuiltinCommands, Version), BuiltinCommand(args[1]))
	}
	return false
}
