// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// BoolEnvVar parses an env var as bool. Defaults to false
func BoolEnvVar(key string) (val bool, ok bool, err error) {
	var valStr string
	valStr, ok = os.LookupEnv(key)
	if !ok {
		return false, ok, nil
	}
	b, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, ok, fmt.Errorf("invalid value for '%s' env var. Must be one of ('true', 'false')", key)
	}
	return b, ok, nil
}

// ListEnvVar parses a comma-separated env var, dropping blank entries
func ListEnvVar(key string) ([]string, bool) {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return nil, false
	}
	items := lo.Map(strings.Split(valStr, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(items), true
}
