// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package provenance describes the version-control state of a project,
// for embedding into generated reports
package provenance

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const (
	CommitKey = "git.commit"
	TagKey    = "git.tag"
)

var ErrNotARepository = fmt.Errorf("not inside a git repository")

// Describe returns the HEAD commit of the repository containing dir, and the
// name of a tag pointing at it if there is one. When several tags match, the
// lexically smallest wins.
func Describe(dir string) (map[string]string, error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotARepository, dir)
		}
		return nil, err
	}
	head, err := r.Head()
	if err != nil {
		return nil, err
	}

	result := map[string]string{
		CommitKey: head.Hash().String(),
	}

	tags, err := tagsAt(r, head.Hash())
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		slices.Sort(tags)
		result[TagKey] = tags[0]
	}
	return result, nil
}

// tagsAt finds lightweight and annotated tags referencing commit
func tagsAt(r *git.Repository, commit plumbing.Hash) ([]string, error) {
	iter, err := r.Tags()
	if err != nil {
		return nil, err
	}

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Hash() == commit {
			names = append(names, ref.Name().Short())
			return nil
		}

		tag, err := r.TagObject(ref.Hash())
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		if tag.Target == commit {
			names = append(names, tag.Name)
		}
		return nil
	})
	return names, err
}
