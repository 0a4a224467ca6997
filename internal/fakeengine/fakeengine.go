// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Package fakeengine is an in-memory stand-in for the game's texture and
// allocator systems. It implements nativeui.Engine so the bridge can be
// exercised outside the game process.
package fakeengine

import (
	"unsafe"

	nativeui "github.com/YindSoft/rage-nativeui-helper"
)

// TextureSpec describes a texture preloaded into a dictionary.
type TextureSpec struct {
	Name   string
	Width  uint32
	Height uint32
}

type texture struct {
	name      []byte // NUL-terminated
	width     uint32
	height    uint32
	pixels    []byte
	updatable bool
	locked    bool
}

func (t *texture) handle() uintptr { return uintptr(unsafe.Pointer(t)) }

func (t *texture) view() nativeui.Texture {
	return nativeui.Texture{
		Handle:  t.handle(),
		NamePtr: uintptr(unsafe.Pointer(&t.name[0])),
		Name:    string(t.name[:len(t.name)-1]),
		Width:   t.width,
		Height:  t.height,
	}
}

type dictionary struct {
	name     string
	textures []*texture
}

// Engine is the fake. The zero value is not usable; call New.
type Engine struct {
	dicts    map[uint32]*dictionary
	textures map[uintptr]*texture
	allocs   map[uintptr][]byte

	// MaxAlloc is the largest size Allocate accepts. Zero means no limit.
	MaxAlloc int64
	// FailCreate makes CreateTexture refuse every request.
	FailCreate bool
	// FailLock makes LockTexture refuse every request.
	FailLock bool

	// Created lists every handle CreateTexture returned, in order.
	Created   []uintptr
	Destroyed int
	Freed     int
}

var _ nativeui.Engine = (*Engine)(nil)

// New returns an empty engine.
func New() *Engine {
	return &Engine{
		dicts:    make(map[uint32]*dictionary),
		textures: make(map[uintptr]*texture),
		allocs:   make(map[uintptr][]byte),
	}
}

// AddDictionary loads a dictionary, replacing one with the same name.
// Textures keep the given order.
func (e *Engine) AddDictionary(name string, specs ...TextureSpec) {
	d := &dictionary{name: name}
	for _, s := range specs {
		d.textures = append(d.textures, &texture{
			name:   append([]byte(s.Name), 0),
			width:  s.Width,
			height: s.Height,
			pixels: make([]byte, int(s.Width)*int(s.Height)*4),
		})
	}
	e.dicts[nativeui.Hash(name)] = d
}

// RemoveDictionary unloads a dictionary.
func (e *Engine) RemoveDictionary(name string) {
	delete(e.dicts, nativeui.Hash(name))
}

// Pixels returns the live pixel store of a texture created through
// CreateTexture, or nil.
func (e *Engine) Pixels(tex uintptr) []byte {
	t, ok := e.textures[tex]
	if !ok {
		return nil
	}
	return t.pixels
}

// Live returns the number of created textures not yet destroyed.
func (e *Engine) Live() int { return len(e.textures) }

// Allocations returns the number of outstanding allocations.
func (e *Engine) Allocations() int { return len(e.allocs) }

// Updatable reports whether a texture was created as updatable.
func (e *Engine) Updatable(tex uintptr) bool {
	t, ok := e.textures[tex]
	return ok && t.updatable
}

// Locked reports whether a texture is currently locked.
func (e *Engine) Locked(tex uintptr) bool {
	t, ok := e.textures[tex]
	return ok && t.locked
}

func (e *Engine) Allocator() nativeui.Allocator { return e }

func (e *Engine) Allocate(size int64) uintptr {
	if size <= 0 || (e.MaxAlloc > 0 && size > e.MaxAlloc) {
		return 0
	}
	buf := make([]byte, size)
	p := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	e.allocs[p] = buf
	return p
}

func (e *Engine) Free(ptr uintptr) {
	if _, ok := e.allocs[ptr]; ok {
		delete(e.allocs, ptr)
		e.Freed++
	}
}

func (e *Engine) FindDictionary(name string) uintptr {
	d, ok := e.dicts[nativeui.Hash(name)]
	if !ok {
		return 0
	}
	return uintptr(unsafe.Pointer(d))
}

func (e *Engine) dictionary(dict uintptr) *dictionary {
	for _, d := range e.dicts {
		if uintptr(unsafe.Pointer(d)) == dict {
			return d
		}
	}
	return nil
}

func (e *Engine) DictionaryTextures(dict uintptr) []nativeui.Texture {
	d := e.dictionary(dict)
	if d == nil {
		return nil
	}
	out := make([]nativeui.Texture, len(d.textures))
	for i, t := range d.textures {
		out[i] = t.view()
	}
	return out
}

func (e *Engine) FindTexture(dict uintptr, name string) (nativeui.Texture, bool) {
	d := e.dictionary(dict)
	if d == nil {
		return nativeui.Texture{}, false
	}
	h := nativeui.Hash(name)
	for _, t := range d.textures {
		if nativeui.Hash(string(t.name[:len(t.name)-1])) == h {
			return t.view(), true
		}
	}
	return nativeui.Texture{}, false
}

func (e *Engine) CreateTexture(width, height uint32, format nativeui.Format, pixels []byte, updatable bool) uintptr {
	if e.FailCreate || format != nativeui.FormatB8G8R8A8 {
		return 0
	}
	n := int(width) * int(height) * 4
	if n == 0 || len(pixels) < n {
		return 0
	}
	t := &texture{
		name:      []byte{0},
		width:     width,
		height:    height,
		pixels:    append([]byte(nil), pixels[:n]...),
		updatable: updatable,
	}
	e.textures[t.handle()] = t
	e.Created = append(e.Created, t.handle())
	return t.handle()
}

func (e *Engine) DestroyTexture(tex uintptr) {
	if _, ok := e.textures[tex]; ok {
		delete(e.textures, tex)
		e.Destroyed++
	}
}

func (e *Engine) LockTexture(tex uintptr) (nativeui.LockedRect, bool) {
	t, ok := e.textures[tex]
	if !ok || e.FailLock || t.locked {
		return nativeui.LockedRect{}, false
	}
	t.locked = true
	return nativeui.LockedRect{Pixels: t.pixels, Pitch: int(t.width) * 4}, true
}

func (e *Engine) UnlockTexture(tex uintptr) {
	if t, ok := e.textures[tex]; ok {
		t.locked = false
	}
}
