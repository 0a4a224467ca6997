// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

import (
	"runtime"
	"slices"
	"testing"
	"unsafe"
)

// fakeDict builds engine-shaped memory for a dictionary. The returned
// keepAlive slice must stay reachable while the addresses are used.
func fakeDict(names []string, sizes [][2]uint16) (dict uintptr, keepAlive []any) {
	type entry struct {
		hash uint32
		tex  *grcTexture
	}
	entries := make([]entry, len(names))
	for i, n := range names {
		cname := append([]byte(n), 0)
		keepAlive = append(keepAlive, cname)
		entries[i] = entry{
			hash: Hash(n),
			tex: &grcTexture{
				name:   uintptr(unsafe.Pointer(&cname[0])),
				width:  sizes[i][0],
				height: sizes[i][1],
			},
		}
	}
	slices.SortFunc(entries, func(a, b entry) int {
		switch {
		case a.hash < b.hash:
			return -1
		case a.hash > b.hash:
			return 1
		}
		return 0
	})

	keys := make([]uint32, len(entries))
	values := make([]uintptr, len(entries))
	for i, e := range entries {
		keys[i] = e.hash
		values[i] = uintptr(unsafe.Pointer(e.tex))
		keepAlive = append(keepAlive, e.tex)
	}
	d := &pgDictionary{}
	if len(entries) > 0 {
		d.keys = atArray{items: uintptr(unsafe.Pointer(&keys[0])), count: uint16(len(keys)), size: uint16(len(keys))}
		d.values = atArray{items: uintptr(unsafe.Pointer(&values[0])), count: uint16(len(values)), size: uint16(len(values))}
	}
	keepAlive = append(keepAlive, keys, values, d)
	return uintptr(unsafe.Pointer(d)), keepAlive
}

func TestLayoutOffsets(t *testing.T) {
	var tex grcTexture
	if got := unsafe.Offsetof(tex.name); got != offsetTextureName {
		t.Errorf("grcTexture.name at %#x, want %#x", got, offsetTextureName)
	}
	if got := unsafe.Sizeof(tex); got != sizeofGrcTexture {
		t.Errorf("sizeof(grcTexture) = %#x, want %#x", got, sizeofGrcTexture)
	}
	var d pgDictionary
	if got := unsafe.Offsetof(d.values); got != offsetDictValues {
		t.Errorf("pgDictionary.values at %#x, want %#x", got, offsetDictValues)
	}
}

func TestDictionaryTextures(t *testing.T) {
	dict, keep := fakeDict(
		[]string{"background", "arrow", "gradient_nav"},
		[][2]uint16{{512, 128}, {32, 32}, {400, 40}},
	)
	defer runtime.KeepAlive(keep)

	got := dictionaryTextures(dict)
	if len(got) != 3 {
		t.Fatalf("dictionaryTextures() returned %d textures, want 3", len(got))
	}
	keys := dictionaryKeys(dict)
	for i, tex := range got {
		if Hash(tex.Name) != keys[i] {
			t.Errorf("texture %d = %q, not in dictionary order", i, tex.Name)
		}
		if tex.NamePtr == 0 || cString(tex.NamePtr) != tex.Name {
			t.Errorf("texture %d NamePtr does not point at %q", i, tex.Name)
		}
	}
}

func TestDictionaryFind(t *testing.T) {
	dict, keep := fakeDict(
		[]string{"background", "arrow"},
		[][2]uint16{{512, 128}, {32, 16}},
	)
	defer runtime.KeepAlive(keep)

	tex, ok := dictionaryFind(dict, Hash("arrow"))
	if !ok {
		t.Fatal("dictionaryFind(arrow) not found")
	}
	if tex.Name != "arrow" || tex.Width != 32 || tex.Height != 16 {
		t.Errorf("dictionaryFind(arrow) = %+v", tex)
	}
	if _, ok := dictionaryFind(dict, Hash("missing")); ok {
		t.Error("dictionaryFind(missing) found a texture")
	}
	if _, ok := dictionaryFind(0, Hash("arrow")); ok {
		t.Error("dictionaryFind on null dictionary found a texture")
	}
}

func TestDictionaryTexturesEmpty(t *testing.T) {
	dict, keep := fakeDict(nil, nil)
	defer runtime.KeepAlive(keep)
	if got := dictionaryTextures(dict); len(got) != 0 {
		t.Errorf("dictionaryTextures(empty) = %v, want none", got)
	}
	if got := dictionaryTextures(0); len(got) != 0 {
		t.Errorf("dictionaryTextures(0) = %v, want none", got)
	}
}

func TestStoreDictionary(t *testing.T) {
	defs := []txdDef{{dict: 0x1000}, {dict: 0x2000}, {dict: 0x3000}}
	flags := []uint8{0, 0x80, 0}
	store := &txdStore{
		entries:   uintptr(unsafe.Pointer(&defs[0])),
		flags:     uintptr(unsafe.Pointer(&flags[0])),
		size:      uint32(len(defs)),
		entrySize: sizeofTxdDef,
	}
	addr := uintptr(unsafe.Pointer(store))
	defer runtime.KeepAlive(defs)
	defer runtime.KeepAlive(flags)
	defer runtime.KeepAlive(store)

	tests := []struct {
		slot int32
		want uintptr
	}{
		{0, 0x1000},
		{1, 0}, // free slot
		{2, 0x3000},
		{3, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := storeDictionary(addr, tt.slot); got != tt.want {
			t.Errorf("storeDictionary(slot %d) = %#x, want %#x", tt.slot, got, tt.want)
		}
	}
}

func TestCStringTruncates(t *testing.T) {
	long := make([]byte, maxNameLen+10)
	for i := range long {
		long[i] = 'a'
	}
	long[len(long)-1] = 0
	got := cString(uintptr(unsafe.Pointer(&long[0])))
	runtime.KeepAlive(long)
	if len(got) != maxNameLen {
		t.Errorf("len(cString) = %d, want %d", len(got), maxNameLen)
	}
	if cString(0) != "" {
		t.Error("cString(0) != \"\"")
	}
}
