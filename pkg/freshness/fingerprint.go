// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package freshness

import (
	_ "crypto/sha256"
	"fmt"
	"os"

	"github.com/opencontainers/go-digest"
)

type Fingerprinter interface {
	Fingerprint(path string) (Fingerprint, error)
}

// ContentFingerprinter stamps files by the sha256 digest of their contents
type ContentFingerprinter struct{}

func (ContentFingerprinter) Fingerprint(path string) (Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	d, err := digest.Canonical.FromReader(f)
	if err != nil {
		return "", err
	}
	return Fingerprint(d.String()), nil
}

var _ Fingerprinter = ContentFingerprinter{}

// Stamp fingerprints an artifact and the source it was compiled from
func Stamp(fp Fingerprinter, pkg, artifactPath, sourcePath string, config BuildConfig) (Record, error) {
	artifactFp, err := fp.Fingerprint(artifactPath)
	if err != nil {
		return Record{}, fmt.Errorf("fingerprinting artifact of %s: %w", pkg, err)
	}
	sourceFp, err := fp.Fingerprint(sourcePath)
	if err != nil {
		return Record{}, fmt.Errorf("fingerprinting source of %s: %w", pkg, err)
	}
	return NewRecord(pkg, artifactFp, sourceFp, config), nil
}
