// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

import (
	"slices"
	"testing"
)

func TestRegistryInsertGetRemove(t *testing.T) {
	var r registry
	for _, h := range []uint32{30, 10, 20} {
		if !r.insert(&customTexture{hash: h, handle: uintptr(h)}) {
			t.Fatalf("insert(%d) = false", h)
		}
	}
	if r.insert(&customTexture{hash: 20}) {
		t.Error("insert of duplicate hash succeeded")
	}
	if r.len() != 3 {
		t.Errorf("len() = %d, want 3", r.len())
	}
	if e, ok := r.get(20); !ok || e.handle != 20 {
		t.Errorf("get(20) = %+v, %v; want original entry", e, ok)
	}

	var order []uint32
	for e := range r.all() {
		order = append(order, e.hash)
	}
	if !slices.Equal(order, []uint32{10, 20, 30}) {
		t.Errorf("iteration order = %v, want [10 20 30]", order)
	}

	if _, ok := r.remove(10); !ok {
		t.Error("remove(10) = false")
	}
	if _, ok := r.remove(10); ok {
		t.Error("second remove(10) = true")
	}
	if _, ok := r.get(10); ok {
		t.Error("get(10) found removed entry")
	}
	if r.len() != 2 {
		t.Errorf("len() = %d, want 2", r.len())
	}
}

func TestRegistryDrain(t *testing.T) {
	var r registry
	r.insert(&customTexture{hash: 2})
	r.insert(&customTexture{hash: 1})
	got := r.drain()
	if len(got) != 2 || got[0].hash != 1 {
		t.Errorf("drain() = %v", got)
	}
	if r.len() != 0 {
		t.Errorf("len() after drain = %d", r.len())
	}
}
