// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package depgraph

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
)

// Table renders one row per component for terminals. Import cycles are
// highlighted.
func (a *Analysis) Table() string {
	cycle := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("ID", "PACKAGES", "IMPORTS").
		Rows(lo.Map(a.Components, func(c Component, _ int) []string {
			members := strings.Join(c.Members, ", ")
			if c.IsCycle() {
				members = cycle.Render(members)
			}
			return []string{
				strconv.Itoa(c.ID),
				members,
				strings.Join(lo.Map(a.ComponentGraph[c.ID], func(id int, _ int) string {
					return strconv.Itoa(id)
				}), " "),
			}
		})...).
		String()
}
