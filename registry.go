// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

import (
	"cmp"
	"iter"
	"slices"
)

// customTexture is a texture the module created and owns. handle is released
// with Engine.DestroyTexture when the entry is removed.
type customTexture struct {
	hash      uint32
	width     uint32
	height    uint32
	updatable bool
	handle    uintptr
}

func (t *customTexture) desc() CustomTextureDesc {
	return CustomTextureDesc{
		Name:      t.hash,
		Width:     t.width,
		Height:    t.height,
		Updatable: t.updatable,
	}
}

// registry holds custom textures sorted by name hash, which gives O(log n)
// lookups and an iteration order that only changes on insert or remove.
type registry struct {
	entries []*customTexture
}

func (r *registry) search(hash uint32) (int, bool) {
	return slices.BinarySearchFunc(r.entries, hash, func(t *customTexture, h uint32) int {
		return cmp.Compare(t.hash, h)
	})
}

func (r *registry) get(hash uint32) (*customTexture, bool) {
	i, ok := r.search(hash)
	if !ok {
		return nil, false
	}
	return r.entries[i], true
}

// insert adds t unless its hash is taken.
func (r *registry) insert(t *customTexture) bool {
	i, ok := r.search(t.hash)
	if ok {
		return false
	}
	r.entries = slices.Insert(r.entries, i, t)
	return true
}

func (r *registry) remove(hash uint32) (*customTexture, bool) {
	i, ok := r.search(hash)
	if !ok {
		return nil, false
	}
	t := r.entries[i]
	r.entries = slices.Delete(r.entries, i, i+1)
	return t, true
}

func (r *registry) len() int { return len(r.entries) }

func (r *registry) all() iter.Seq[*customTexture] {
	return slices.Values(r.entries)
}

// drain removes every entry and returns them in iteration order.
func (r *registry) drain() []*customTexture {
	out := r.entries
	r.entries = nil
	return out
}
