// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package pkgrconfig

const (
	ProjectFileName     = "stanza.proj.yaml"
	ConfigFileName      = "pkgr-config.yaml"
	BuildRecordFileName = "build-record.yaml"
)
