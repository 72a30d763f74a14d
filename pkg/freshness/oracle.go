// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package freshness

import (
	"log/slog"
)

// Oracle decides whether a cached artifact is still valid for its source
// under the active build configuration. It never writes to the store.
type Oracle struct {
	store         Store
	fingerprinter Fingerprinter
	config        BuildConfig
}

func NewOracle(store Store, fingerprinter Fingerprinter, config BuildConfig) *Oracle {
	return &Oracle{store: store, fingerprinter: fingerprinter, config: config}
}

func (o *Oracle) IsFresh(pkg, artifactPath, sourcePath string) bool {
	if o.store == nil {
		return false
	}

	r, err := Stamp(o.fingerprinter, pkg, artifactPath, sourcePath, o.config)
	if err != nil {
		slog.Debug("cannot fingerprint", "package", pkg, "err", err.Error())
		return false
	}

	fresh := o.store.Contains(r)
	slog.Debug("artifact freshness", "package", pkg, "artifact", artifactPath, "fresh", fresh)
	return fresh
}
