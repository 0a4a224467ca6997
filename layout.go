// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

import (
	"sort"
	"unsafe"
)

// Layout views of the engine structures we read directly. Only the fields
// we use are named; everything else is padding of known size. The sizes are
// checked at compile time below, so a host update that moves a field breaks
// the build instead of reading garbage.

// atArray is the engine's growable array header.
type atArray struct {
	items uintptr // T*
	count uint16
	size  uint16
	_     uint32
}

// pgDictionary<grcTexture>. Keys are name hashes sorted ascending; values
// are texture pointers in the same order.
type pgDictionary struct {
	vtable   uintptr
	pageMap  uintptr
	parent   uintptr
	refCount uint32
	_        uint32
	keys     atArray // uint32
	values   atArray // grcTexture*
}

// grcTexture (D3D11 variant).
type grcTexture struct {
	vtable uintptr
	_      [0x20]byte
	name   uintptr // const char*
	_      [0x20]byte
	width  uint16
	height uint16
	_      [0x3C]byte
}

// grcTextureLock is filled by grcTexture::LockRect.
type grcTextureLock struct {
	bitsPerPixel int32
	pitch        int32
	base         uintptr
	width        int32
	height       int32
	mipLevel     int32
	layer        int32
}

// txdStore is the prefix of fwTxdStore we read: the pool of dictionary defs.
type txdStore struct {
	vtable    uintptr
	_         [0x30]byte
	entries   uintptr // txdDef*
	flags     uintptr // uint8* per slot, high bit = free
	size      uint32
	entrySize uint32
}

// txdDef is one pool slot of the store.
type txdDef struct {
	dict     uintptr // pgDictionary*
	refCount int32
	_        uint32
}

const (
	sizeofAtArray        = 0x10
	sizeofPgDictionary   = 0x40
	sizeofGrcTexture     = 0x90
	sizeofGrcTextureLock = 0x20
	sizeofTxdStore       = 0x50
	sizeofTxdDef         = 0x10

	offsetTextureName   = 0x28
	offsetTextureWidth  = 0x50
	offsetTextureHeight = 0x52
	offsetDictKeys      = 0x20
	offsetDictValues    = 0x30
	offsetStoreEntries  = 0x38
)

// Each pair fails to compile unless the Go struct matches the engine size.
var (
	_ [unsafe.Sizeof(atArray{}) - sizeofAtArray]byte
	_ [sizeofAtArray - unsafe.Sizeof(atArray{})]byte
	_ [unsafe.Sizeof(pgDictionary{}) - sizeofPgDictionary]byte
	_ [sizeofPgDictionary - unsafe.Sizeof(pgDictionary{})]byte
	_ [unsafe.Sizeof(grcTexture{}) - sizeofGrcTexture]byte
	_ [sizeofGrcTexture - unsafe.Sizeof(grcTexture{})]byte
	_ [unsafe.Sizeof(grcTextureLock{}) - sizeofGrcTextureLock]byte
	_ [sizeofGrcTextureLock - unsafe.Sizeof(grcTextureLock{})]byte
	_ [unsafe.Sizeof(txdStore{}) - sizeofTxdStore]byte
	_ [sizeofTxdStore - unsafe.Sizeof(txdStore{})]byte
	_ [unsafe.Sizeof(txdDef{}) - sizeofTxdDef]byte
	_ [sizeofTxdDef - unsafe.Sizeof(txdDef{})]byte

	_ [unsafe.Offsetof(grcTexture{}.name) - offsetTextureName]byte
	_ [offsetTextureName - unsafe.Offsetof(grcTexture{}.name)]byte
	_ [unsafe.Offsetof(grcTexture{}.width) - offsetTextureWidth]byte
	_ [offsetTextureWidth - unsafe.Offsetof(grcTexture{}.width)]byte
	_ [unsafe.Offsetof(grcTexture{}.height) - offsetTextureHeight]byte
	_ [offsetTextureHeight - unsafe.Offsetof(grcTexture{}.height)]byte
	_ [unsafe.Offsetof(pgDictionary{}.keys) - offsetDictKeys]byte
	_ [offsetDictKeys - unsafe.Offsetof(pgDictionary{}.keys)]byte
	_ [unsafe.Offsetof(pgDictionary{}.values) - offsetDictValues]byte
	_ [offsetDictValues - unsafe.Offsetof(pgDictionary{}.values)]byte
	_ [unsafe.Offsetof(txdStore{}.entries) - offsetStoreEntries]byte
	_ [offsetStoreEntries - unsafe.Offsetof(txdStore{}.entries)]byte
)

const maxNameLen = 256

// cString copies a NUL-terminated engine string. Names longer than
// maxNameLen are truncated.
func cString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	n := 0
	for n < maxNameLen && *(*byte)(unsafe.Pointer(ptr + uintptr(n))) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n))
}

func textureView(tex uintptr) Texture {
	t := (*grcTexture)(unsafe.Pointer(tex))
	return Texture{
		Handle:  tex,
		NamePtr: t.name,
		Name:    cString(t.name),
		Width:   uint32(t.width),
		Height:  uint32(t.height),
	}
}

func dictionaryValues(dict uintptr) []uintptr {
	if dict == 0 {
		return nil
	}
	d := (*pgDictionary)(unsafe.Pointer(dict))
	if d.values.items == 0 || d.values.count == 0 {
		return nil
	}
	return unsafe.Slice((*uintptr)(unsafe.Pointer(d.values.items)), d.values.count)
}

func dictionaryKeys(dict uintptr) []uint32 {
	d := (*pgDictionary)(unsafe.Pointer(dict))
	if d.keys.items == 0 || d.keys.count == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(d.keys.items)), d.keys.count)
}

// dictionaryTextures walks the value array of a dictionary in order,
// skipping null slots.
func dictionaryTextures(dict uintptr) []Texture {
	values := dictionaryValues(dict)
	out := make([]Texture, 0, len(values))
	for _, tex := range values {
		if tex == 0 {
			continue
		}
		out = append(out, textureView(tex))
	}
	return out
}

// dictionaryFind looks a texture up by name hash. Keys are sorted, as the
// engine keeps them.
func dictionaryFind(dict uintptr, hash uint32) (Texture, bool) {
	if dict == 0 {
		return Texture{}, false
	}
	keys := dictionaryKeys(dict)
	values := dictionaryValues(dict)
	i := sort.Search(len(keys), func(i int) bool { return keys[i] >= hash })
	if i >= len(keys) || keys[i] != hash || i >= len(values) || values[i] == 0 {
		return Texture{}, false
	}
	return textureView(values[i]), true
}

// storeDictionary returns the dictionary held by a store slot, or 0 when the
// slot is free or has nothing loaded.
func storeDictionary(store uintptr, slot int32) uintptr {
	s := (*txdStore)(unsafe.Pointer(store))
	if slot < 0 || uint32(slot) >= s.size || s.entries == 0 {
		return 0
	}
	if s.flags != 0 && *(*uint8)(unsafe.Pointer(s.flags + uintptr(slot)))&0x80 != 0 {
		return 0
	}
	stride := uintptr(s.entrySize)
	if stride < sizeofTxdDef {
		stride = sizeofTxdDef
	}
	def := (*txdDef)(unsafe.Pointer(s.entries + uintptr(slot)*stride))
	return def.dict
}
