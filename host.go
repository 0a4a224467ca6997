// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Process-wide state behind the flat exports. The C surface has no instance
// handle, so one Bridge lives here from Init until Shutdown.
var (
	hostMu   sync.Mutex
	hostDone bool
	hostErr  error
	active   atomic.Pointer[Bridge]

	// resolveEngine locates the engine in the current process.
	resolveEngine = resolveHostEngine
)

// Init resolves the host engine once. Later calls return the first result
// without retrying. Every other operation behaves as a failed precondition
// (null, false, zero, no-op) until Init has succeeded.
func Init() error {
	return InitWithOptions(nil)
}

// InitWithOptions is Init with explicit options. Only the first call's
// options are used.
func InitWithOptions(opts *Options) error {
	hostMu.Lock()
	defer hostMu.Unlock()
	if hostDone {
		return hostErr
	}
	hostDone = true
	hostErr = doInit(resolveOpts(opts))
	return hostErr
}

func doInit(o Options) error {
	eng, err := resolveEngine(o)
	if err != nil {
		var se *ScanError
		if errors.As(err, &se) {
			Logger().Error("engine signature not found",
				zap.String("symbol", se.Symbol), zap.String("pattern", se.Pattern))
		} else {
			Logger().Error("engine resolution failed", zap.Error(err))
		}
		return fmt.Errorf("init: %w", err)
	}
	b, err := NewBridge(eng)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	active.Store(b)
	Logger().Info("nativeui initialized", zap.String("module", o.ModuleName))
	return nil
}

// Shutdown destroys every custom texture and returns the package to the
// uninitialized state, so Init may run again.
func Shutdown() {
	hostMu.Lock()
	defer hostMu.Unlock()
	if b := active.Swap(nil); b != nil {
		b.Close()
	}
	hostDone = false
	hostErr = nil
}

// Initialized reports whether Init succeeded.
func Initialized() bool {
	return active.Load() != nil
}

// Current returns the initialized Bridge, or nil.
func Current() *Bridge {
	return active.Load()
}

// Allocate allocates size bytes from the engine allocator. Returns 0 on
// failure or before Init.
func Allocate(size int64) uintptr {
	b := active.Load()
	if b == nil {
		return 0
	}
	return b.Allocate(size)
}

// Free releases memory from Allocate.
func Free(ptr uintptr) {
	if b := active.Load(); b != nil {
		b.Free(ptr)
	}
}

func DoesTextureDictionaryExist(name string) bool {
	b := active.Load()
	return b != nil && b.DictionaryExists(name)
}

func GetNumberOfTexturesFromDictionary(name string) uint32 {
	b := active.Load()
	if b == nil {
		return 0
	}
	return b.DictionaryTextureCount(name)
}

func GetTexturesFromDictionary(name string) []TextureDesc {
	b := active.Load()
	if b == nil {
		return nil
	}
	return b.DictionaryTextures(name)
}

func DoesCustomTextureExist(hash uint32) bool {
	b := active.Load()
	return b != nil && b.CustomTextureExists(hash)
}

// CreateCustomTexture reports false when the name is taken, the pixels do
// not match the size or the engine refuses.
func CreateCustomTexture(name string, width, height uint32, pixels []byte, updatable bool) bool {
	b := active.Load()
	if b == nil {
		return false
	}
	return b.CreateCustomTexture(name, width, height, pixels, updatable) == nil
}

func DeleteCustomTexture(hash uint32) {
	if b := active.Load(); b != nil {
		_ = b.DeleteCustomTexture(hash)
	}
}

func UpdateCustomTexture(hash uint32, src []byte, dst Rect) {
	if b := active.Load(); b != nil {
		_ = b.UpdateCustomTexture(hash, src, dst)
	}
}

func GetNumberOfCustomTextures() uint32 {
	b := active.Load()
	if b == nil {
		return 0
	}
	return b.CustomTextureCount()
}

func GetCustomTextures() []CustomTextureDesc {
	b := active.Load()
	if b == nil {
		return nil
	}
	return b.CustomTextures()
}
