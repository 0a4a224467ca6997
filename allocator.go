// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

// allocator forwards to the engine allocator. It adds the two guarantees
// the exports document: Free(0) is a no-op and a refused size yields 0.
type allocator struct {
	engine Allocator
}

func (a allocator) Allocate(size int64) uintptr {
	if size < 0 {
		return 0
	}
	return a.engine.Allocate(size)
}

func (a allocator) Free(ptr uintptr) {
	if ptr == 0 {
		return
	}
	a.engine.Free(ptr)
}
