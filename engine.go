// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

// Format is an engine pixel format identifier.
type Format uint32

// FormatB8G8R8A8 is 32 bits per pixel, BGRA byte order, top-down rows.
// Custom textures always use it.
const FormatB8G8R8A8 Format = 0x15

// bytesPerPixel of FormatB8G8R8A8.
const bytesPerPixel = 4

// Texture is a borrowed view of one engine texture. Handle and NamePtr point
// into engine memory and are only valid while the owning dictionary stays
// loaded; never retain them past the current call.
type Texture struct {
	Handle  uintptr
	NamePtr uintptr
	Name    string
	Width   uint32
	Height  uint32
}

// LockedRect is the CPU-visible pixel store of a locked texture. Pixels
// starts at the first row; rows are Pitch bytes apart.
type LockedRect struct {
	Pixels []byte
	Pitch  int
}

// Rect is the platform RECT: Right and Bottom are exclusive.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// Dx returns the width of r.
func (r Rect) Dx() int { return int(r.Right) - int(r.Left) }

// Dy returns the height of r.
func (r Rect) Dy() int { return int(r.Bottom) - int(r.Top) }

// Empty reports whether r contains no pixels.
func (r Rect) Empty() bool { return r.Dx() <= 0 || r.Dy() <= 0 }

// within reports whether r is non-empty and inside [0,w) x [0,h).
func (r Rect) within(w, h uint32) bool {
	return !r.Empty() && r.Left >= 0 && r.Top >= 0 &&
		int64(r.Right) <= int64(w) && int64(r.Bottom) <= int64(h)
}

// Allocator is the engine's general purpose allocator.
type Allocator interface {
	Allocate(size int64) uintptr
	Free(ptr uintptr)
}

// Engine is the resolved symbol table: everything the module needs from the
// host engine. Handles are opaque engine addresses; zero means absent.
type Engine interface {
	Allocator() Allocator

	// FindDictionary returns the loaded dictionary with the given name.
	FindDictionary(name string) uintptr
	// DictionaryTextures lists a dictionary in its own iteration order.
	DictionaryTextures(dict uintptr) []Texture
	FindTexture(dict uintptr, name string) (Texture, bool)

	CreateTexture(width, height uint32, format Format, pixels []byte, updatable bool) uintptr
	DestroyTexture(tex uintptr)
	LockTexture(tex uintptr) (LockedRect, bool)
	UnlockTexture(tex uintptr)
}
