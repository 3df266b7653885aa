// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avsc

import (
	"math/rand"

	"golang.org/x/exp/slices"
)

// branchInfo is a set of quick lookups holding the lookup info for a
// union's member types: its branch list, keyed by both index and
// discriminator name.
type branchInfo struct {
	allowedNames    []string // for error reporting when a write receives an unexpected datum
	branchFromIndex []TypeNode
	branchFromName  map[string]TypeNode
	indexFromName   map[string]int
}

// makeBranchInfo builds the lookup indices for a union's branch list,
// rejecting an empty union and any two branches that share a discriminator
// name (spec invariant 2).
func makeBranchInfo(branches []TypeNode) (branchInfo, error) {
	if len(branches) == 0 {
		return branchInfo{}, newSchemaError("union ought to have one or more members")
	}

	allowedNames := make([]string, len(branches))
	branchFromIndex := make([]TypeNode, len(branches))
	branchFromName := make(map[string]TypeNode, len(branches))
	indexFromName := make(map[string]int, len(branches))

	for i, branch := range branches {
		discr := branchDiscriminator(branch)
		if slices.Contains(allowedNames[:i], discr) {
			return branchInfo{}, newSchemaError("union item %d ought to be unique type: %s", i+1, discr)
		}
		allowedNames[i] = discr
		branchFromIndex[i] = branch
		branchFromName[discr] = branch
		indexFromName[discr] = i
	}

	return branchInfo{
		allowedNames:    allowedNames,
		branchFromIndex: branchFromIndex,
		branchFromName:  branchFromName,
		indexFromName:   indexFromName,
	}, nil
}

// UnionWrappedNode is the spec-conformant union representation: non-null
// values are a single-key map[string]Value keyed by the chosen branch's
// discriminator name.
type UnionWrappedNode struct {
	branches branchInfo
}

// NewUnionWrapped builds a wrapped union node from its branch list.
func NewUnionWrapped(branches []TypeNode) (*UnionWrappedNode, error) {
	info, err := makeBranchInfo(branches)
	if err != nil {
		return nil, err
	}
	return &UnionWrappedNode{branches: info}, nil
}

func (n *UnionWrappedNode) TypeName() string { return kindUnion }

func (n *UnionWrappedNode) firstBranch() TypeNode { return n.branches.branchFromIndex[0] }

func (n *UnionWrappedNode) Validate(v Value) bool {
	if v == nil {
		_, ok := n.branches.indexFromName[kindNull]
		return ok
	}
	m, ok := v.(map[string]Value)
	if !ok || len(m) != 1 {
		return false
	}
	for k, val := range m {
		branch, ok := n.branches.branchFromName[k]
		if !ok {
			return false
		}
		return branch.Validate(val)
	}
	return false
}

func (n *UnionWrappedNode) Read(t *Tap) (Value, error) {
	idx := t.ReadLong()
	if t.Truncated() {
		return nil, nil
	}
	if idx < 0 || int(idx) >= len(n.branches.branchFromIndex) {
		return nil, newDecodeError("cannot decode binary union: index ought to be between 0 and %d; read index: %d", len(n.branches.branchFromIndex)-1, idx)
	}
	branch := n.branches.branchFromIndex[idx]
	if branch.TypeName() == kindNull {
		return nil, nil
	}
	val, err := branch.Read(t)
	if err != nil {
		return nil, wrapDecodeError(err, "cannot decode binary union item %d", idx+1)
	}
	return map[string]Value{n.branches.allowedNames[idx]: val}, nil
}

func (n *UnionWrappedNode) Write(t *Tap, v Value) error {
	if v == nil {
		idx, ok := n.branches.indexFromName[kindNull]
		if !ok {
			return newEncodeError("cannot encode binary union: no member schema types support datum: allowed types: %v; received: nil", n.branches.allowedNames)
		}
		t.WriteLong(int64(idx))
		return nil
	}

	m, ok := v.(map[string]Value)
	if !ok || len(m) != 1 {
		return newEncodeError("cannot encode binary union: non-nil union values ought to be a single-key map[string]interface{} with key equal to the branch name; received: %T", v)
	}

	for k, val := range m {
		idx, ok := n.branches.indexFromName[k]
		if !ok {
			return newEncodeError("cannot encode binary union: no such branch: %q; allowed types: %v", k, n.branches.allowedNames)
		}
		t.WriteLong(int64(idx))
		branch := n.branches.branchFromIndex[idx]
		if err := branch.Write(t, val); err != nil {
			return wrapEncodeError(err, "cannot encode binary union branch %q", k)
		}
		return nil
	}
	return nil
}

func (n *UnionWrappedNode) Random(rnd *rand.Rand) Value { return n.randomAtDepth(rnd, 0) }

func (n *UnionWrappedNode) randomAtDepth(rnd *rand.Rand, depth int) Value {
	idx := rnd.Intn(len(n.branches.branchFromIndex))
	branch := n.branches.branchFromIndex[idx]
	if branch.TypeName() == kindNull {
		return nil
	}
	return map[string]Value{n.branches.allowedNames[idx]: randomChild(branch, rnd, depth)}
}

func (n *UnionWrappedNode) zeroValue() Value { return baseValue(n) }

// UnionUnwrappedNode is the performance-variant union representation: values
// are bare, not wrapped in a single-key map. Ambiguity between branches that
// could both accept a value is resolved by declaration order: the first
// matching branch wins, both for Write's branch selection and for Random's
// base-case fallback.
type UnionUnwrappedNode struct {
	branches branchInfo
}

// NewUnionUnwrapped builds an unwrapped union node from its branch list.
func NewUnionUnwrapped(branches []TypeNode) (*UnionUnwrappedNode, error) {
	info, err := makeBranchInfo(branches)
	if err != nil {
		return nil, err
	}
	return &UnionUnwrappedNode{branches: info}, nil
}

func (n *UnionUnwrappedNode) TypeName() string { return kindUnion }

func (n *UnionUnwrappedNode) firstBranch() TypeNode { return n.branches.branchFromIndex[0] }

func (n *UnionUnwrappedNode) Validate(v Value) bool {
	for _, b := range n.branches.branchFromIndex {
		if b.Validate(v) {
			return true
		}
	}
	return false
}

func (n *UnionUnwrappedNode) Read(t *Tap) (Value, error) {
	idx := t.ReadLong()
	if t.Truncated() {
		return nil, nil
	}
	if idx < 0 || int(idx) >= len(n.branches.branchFromIndex) {
		return nil, newDecodeError("cannot decode binary union: index ought to be between 0 and %d; read index: %d", len(n.branches.branchFromIndex)-1, idx)
	}
	branch := n.branches.branchFromIndex[idx]
	val, err := branch.Read(t)
	if err != nil {
		return nil, wrapDecodeError(err, "cannot decode binary union item %d", idx+1)
	}
	return val, nil
}

func (n *UnionUnwrappedNode) Write(t *Tap, v Value) error {
	for i, b := range n.branches.branchFromIndex {
		if b.Validate(v) {
			t.WriteLong(int64(i))
			return b.Write(t, v)
		}
	}
	return newEncodeError("cannot encode binary union: no member schema types support datum: allowed types: %v; received: %T", n.branches.allowedNames, v)
}

func (n *UnionUnwrappedNode) Random(rnd *rand.Rand) Value { return n.randomAtDepth(rnd, 0) }

func (n *UnionUnwrappedNode) randomAtDepth(rnd *rand.Rand, depth int) Value {
	idx := rnd.Intn(len(n.branches.branchFromIndex))
	return randomChild(n.branches.branchFromIndex[idx], rnd, depth)
}

func (n *UnionUnwrappedNode) zeroValue() Value { return baseValue(n) }
