// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

//go:build windows && amd64

package nativeui

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// Virtual slots used on engine objects.
const (
	slotAllocatorAllocate = 2 // void* Allocate(size_t size, size_t align, int subAllocator)
	slotAllocatorFree     = 4 // void Free(void* ptr)
	slotTextureLockRect   = 32
	slotTextureUnlockRect = 33

	allocAlignment = 16
	lockWrite      = 2
)

// Engine functions bound at init.
var (
	txdFindSlot    func(store uintptr, slot *int32, name string) uintptr
	createTexture  func(factory uintptr, width, height, format uint32, pixels uintptr, updatable bool) uintptr
	destroyTexture func(tex uintptr)
)

type symbolID int

const (
	symTxdStore symbolID = iota
	symFindSlot
	symAllocator
	symTextureFactory
	symCreateTexture
	symDestroyTexture
	symCount
)

// signature locates one engine symbol. When insnLen is zero the match itself
// is the symbol; otherwise the symbol is the RIP-relative operand of the
// instruction found at match+at.
type signature struct {
	name    string
	pattern string
	at      int
	dispOff int
	insnLen int
}

// Signatures for the supported host build. Check them again whenever the
// host executable changes.
var signatures = [symCount]signature{
	symTxdStore:       {"fwTxdStore", "48 8D 0D ? ? ? ? E8 ? ? ? ? 8B 45 EC 4C 8D 45 F0 48 8D 55 EC 48 8D 0D ? ? ? ? 89 45 F0", 0, 3, 7},
	symFindSlot:       {"fwAssetStore::FindSlot", "48 8D 0D ? ? ? ? E8 ? ? ? ? 8B 45 EC 4C 8D 45 F0 48 8D 55 EC 48 8D 0D ? ? ? ? 89 45 F0", 7, 1, 5},
	symAllocator:      {"sysMemAllocator::sm_Current", "48 8B 0D ? ? ? ? 45 33 C0 48 8B 01 41 8D 50 10 FF 50 10", 0, 3, 7},
	symTextureFactory: {"grcTextureFactory::sm_Instance", "48 8B 0D ? ? ? ? 45 33 C9 48 89 5C 24 ? 48 8B 01 FF 90 ? ? ? ? 48 8B D8", 0, 3, 7},
	symCreateTexture:  {"grcTextureFactory::CreateFromData", "48 89 5C 24 ? 48 89 6C 24 ? 48 89 74 24 ? 57 48 83 EC 40 41 8B F9 41 8B E8", 0, 0, 0},
	symDestroyTexture: {"grcTexture::Release", "40 53 48 83 EC 20 48 8B D9 48 8B 49 ? 48 85 C9 74 ? E8 ? ? ? ? 48 8B 03", 0, 0, 0},
}

func (s signature) resolve(img *Image) (int, error) {
	p, err := ParsePattern(s.pattern)
	if err != nil {
		return -1, err
	}
	off, err := img.Scan(p)
	if err != nil {
		return -1, err
	}
	if s.insnLen == 0 {
		return off, nil
	}
	return img.ripTarget(off+s.at, s.dispOff, s.insnLen)
}

// symbolTable holds the resolved addresses. After a successful resolve every
// entry is non-zero.
type symbolTable struct {
	txdStore  uintptr // fwTxdStore
	allocator uintptr // sysMemAllocator*
	factory   uintptr // grcTextureFactory*
}

type hostEngine struct {
	syms  symbolTable
	locks map[uintptr]*grcTextureLock
}

func resolveHostEngine(o Options) (Engine, error) {
	base, size, err := moduleImage(o.ModuleName)
	if err != nil {
		return nil, err
	}
	img, err := NewImage(unsafe.Slice((*byte)(unsafe.Pointer(base)), size))
	if err != nil {
		return nil, err
	}

	var addrs [symCount]uintptr
	for id, sig := range signatures {
		rva, err := sig.resolve(img)
		if err != nil {
			se := &ScanError{Symbol: sig.name, Pattern: sig.pattern}
			if !errors.Is(err, ErrPatternNotFound) {
				se.Err = err
			}
			return nil, se
		}
		addrs[id] = base + uintptr(rva)
		Logger().Debug("resolved engine symbol",
			zap.String("symbol", sig.name), zap.Uintptr("address", addrs[id]))
	}

	syms := symbolTable{
		txdStore:  addrs[symTxdStore],
		allocator: *(*uintptr)(unsafe.Pointer(addrs[symAllocator])),
		factory:   *(*uintptr)(unsafe.Pointer(addrs[symTextureFactory])),
	}
	if syms.allocator == 0 {
		return nil, fmt.Errorf("%s is not set yet: %w", signatures[symAllocator].name, ErrNotInitialized)
	}
	if syms.factory == 0 {
		return nil, fmt.Errorf("%s is not set yet: %w", signatures[symTextureFactory].name, ErrNotInitialized)
	}

	for _, reg := range []struct {
		fptr any
		id   symbolID
	}{
		{&txdFindSlot, symFindSlot},
		{&createTexture, symCreateTexture},
		{&destroyTexture, symDestroyTexture},
	} {
		if err := bindFunc(reg.fptr, addrs[reg.id], signatures[reg.id].name); err != nil {
			return nil, err
		}
	}
	return &hostEngine{syms: syms, locks: make(map[uintptr]*grcTextureLock)}, nil
}

func bindFunc(fptr any, addr uintptr, name string) error {
	if addr == 0 {
		return fmt.Errorf("%s: null address: %w", name, ErrPatternNotFound)
	}
	purego.RegisterFunc(fptr, addr)
	return nil
}

// moduleImage returns the mapped image of a loaded module; "" is the main
// executable.
func moduleImage(name string) (uintptr, uint32, error) {
	var namePtr *uint16
	if name != "" {
		p, err := windows.UTF16PtrFromString(name)
		if err != nil {
			return 0, 0, fmt.Errorf("module name %q: %w", name, err)
		}
		namePtr = p
	}
	var h windows.Handle
	if err := windows.GetModuleHandleEx(windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT, namePtr, &h); err != nil {
		return 0, 0, fmt.Errorf("module %q not loaded: %w", name, err)
	}
	var mi windows.ModuleInfo
	if err := windows.GetModuleInformation(windows.CurrentProcess(), h, &mi, uint32(unsafe.Sizeof(mi))); err != nil {
		return 0, 0, fmt.Errorf("module %q info: %w", name, err)
	}
	return mi.BaseOfDll, mi.SizeOfImage, nil
}

func vtableSlot(obj uintptr, slot int) uintptr {
	vt := *(*uintptr)(unsafe.Pointer(obj))
	return *(*uintptr)(unsafe.Pointer(vt + uintptr(slot)*unsafe.Sizeof(uintptr(0))))
}

type engineAllocator uintptr

func (a engineAllocator) Allocate(size int64) uintptr {
	r1, _, _ := purego.SyscallN(vtableSlot(uintptr(a), slotAllocatorAllocate),
		uintptr(a), uintptr(size), allocAlignment, 0)
	return r1
}

func (a engineAllocator) Free(ptr uintptr) {
	purego.SyscallN(vtableSlot(uintptr(a), slotAllocatorFree), uintptr(a), ptr)
}

func (e *hostEngine) Allocator() Allocator {
	return engineAllocator(e.syms.allocator)
}

func (e *hostEngine) FindDictionary(name string) uintptr {
	slot := int32(-1)
	txdFindSlot(e.syms.txdStore, &slot, name)
	return storeDictionary(e.syms.txdStore, slot)
}

func (e *hostEngine) DictionaryTextures(dict uintptr) []Texture {
	return dictionaryTextures(dict)
}

func (e *hostEngine) FindTexture(dict uintptr, name string) (Texture, bool) {
	return dictionaryFind(dict, Hash(name))
}

func (e *hostEngine) CreateTexture(width, height uint32, format Format, pixels []byte, updatable bool) uintptr {
	if len(pixels) == 0 {
		return 0
	}
	tex := createTexture(e.syms.factory, width, height, uint32(format),
		uintptr(unsafe.Pointer(&pixels[0])), updatable)
	runtime.KeepAlive(pixels)
	return tex
}

func (e *hostEngine) DestroyTexture(tex uintptr) {
	if tex != 0 {
		destroyTexture(tex)
	}
}

func (e *hostEngine) LockTexture(tex uintptr) (LockedRect, bool) {
	lk := &grcTextureLock{}
	r1, _, _ := purego.SyscallN(vtableSlot(tex, slotTextureLockRect),
		tex, 0, 0, uintptr(unsafe.Pointer(lk)), lockWrite)
	runtime.KeepAlive(lk)
	if r1&0xFF == 0 || lk.base == 0 || lk.pitch <= 0 || lk.height <= 0 {
		return LockedRect{}, false
	}
	e.locks[tex] = lk
	return LockedRect{
		Pixels: unsafe.Slice((*byte)(unsafe.Pointer(lk.base)), int(lk.pitch)*int(lk.height)),
		Pitch:  int(lk.pitch),
	}, true
}

func (e *hostEngine) UnlockTexture(tex uintptr) {
	lk, ok := e.locks[tex]
	if !ok {
		return
	}
	delete(e.locks, tex)
	purego.SyscallN(vtableSlot(tex, slotTextureUnlockRect), tex, uintptr(unsafe.Pointer(lk)))
	runtime.KeepAlive(lk)
}
