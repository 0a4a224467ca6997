// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"
)

// TextureDesc is the ABI record emitted for an engine texture. Name points at
// the engine-owned string.
type TextureDesc struct {
	Texture uintptr
	Name    uintptr
	Width   uint32
	Height  uint32
}

// CustomTextureDesc is the ABI record emitted for a custom texture.
type CustomTextureDesc struct {
	Name      uint32 // name hash
	Width     uint32
	Height    uint32
	Updatable bool
	_         [3]byte
}

// The host reads these records byte for byte.
var (
	_ [unsafe.Sizeof(TextureDesc{}) - 24]byte
	_ [24 - unsafe.Sizeof(TextureDesc{})]byte
	_ [unsafe.Sizeof(CustomTextureDesc{}) - 16]byte
	_ [16 - unsafe.Sizeof(CustomTextureDesc{})]byte
)

func textureDesc(t Texture) TextureDesc {
	return TextureDesc{Texture: t.Handle, Name: t.NamePtr, Width: t.Width, Height: t.Height}
}

// Bridge is one initialized module instance: the resolved engine, its
// allocator and the custom textures created through it. A Bridge does no
// locking; callers serialize mutations, as the host does.
type Bridge struct {
	engine   Engine
	alloc    allocator
	textures registry
	closed   bool
}

// NewBridge wraps a resolved engine.
func NewBridge(e Engine) (*Bridge, error) {
	if e == nil {
		return nil, fmt.Errorf("nil engine: %w", ErrNotInitialized)
	}
	a := e.Allocator()
	if a == nil {
		return nil, fmt.Errorf("engine has no allocator: %w", ErrNotInitialized)
	}
	return &Bridge{engine: e, alloc: allocator{engine: a}}, nil
}

// Allocate forwards to the engine allocator. It returns 0 when the engine
// refuses the size.
func (b *Bridge) Allocate(size int64) uintptr {
	return b.alloc.Allocate(size)
}

// Free releases memory from Allocate. Free(0) does nothing.
func (b *Bridge) Free(ptr uintptr) {
	b.alloc.Free(ptr)
}

// DictionaryExists reports whether a dictionary with this name is loaded.
func (b *Bridge) DictionaryExists(name string) bool {
	return b.engine.FindDictionary(name) != 0
}

// DictionaryTextureCount returns the number of textures in a dictionary, or
// 0 if it is not loaded.
func (b *Bridge) DictionaryTextureCount(name string) uint32 {
	dict := b.engine.FindDictionary(name)
	if dict == 0 {
		return 0
	}
	return uint32(len(b.engine.DictionaryTextures(dict)))
}

// DictionaryTextures describes every texture of a dictionary in the
// dictionary's own order.
func (b *Bridge) DictionaryTextures(name string) []TextureDesc {
	dict := b.engine.FindDictionary(name)
	if dict == 0 {
		return nil
	}
	textures := b.engine.DictionaryTextures(dict)
	out := make([]TextureDesc, len(textures))
	for i, t := range textures {
		out[i] = textureDesc(t)
	}
	return out
}

// FindTexture looks up one texture inside a loaded dictionary.
func (b *Bridge) FindTexture(dict, name string) (TextureDesc, bool) {
	d := b.engine.FindDictionary(dict)
	if d == 0 {
		return TextureDesc{}, false
	}
	t, ok := b.engine.FindTexture(d, name)
	if !ok {
		return TextureDesc{}, false
	}
	return textureDesc(t), true
}

// CustomTextureExists reports whether a custom texture with this name hash
// exists.
func (b *Bridge) CustomTextureExists(hash uint32) bool {
	_, ok := b.textures.get(hash)
	return ok
}

// CustomTexture returns the descriptor of one custom texture.
func (b *Bridge) CustomTexture(hash uint32) (CustomTextureDesc, bool) {
	t, ok := b.textures.get(hash)
	if !ok {
		return CustomTextureDesc{}, false
	}
	return t.desc(), true
}

// CreateCustomTexture creates an engine texture from width*height BGRA
// pixels and registers it under Hash(name). The registry is left untouched
// when the name is taken or the engine refuses.
func (b *Bridge) CreateCustomTexture(name string, width, height uint32, pixels []byte, updatable bool) error {
	hash := Hash(name)
	if _, ok := b.textures.get(hash); ok {
		return fmt.Errorf("%q (%#08x): %w", name, hash, ErrTextureExists)
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("%q: %dx%d: %w", name, width, height, ErrPixelData)
	}
	want := uint64(width) * uint64(height) * bytesPerPixel
	if uint64(len(pixels)) < want {
		return fmt.Errorf("%q: got %d bytes, want %d: %w", name, len(pixels), want, ErrPixelData)
	}

	handle := b.engine.CreateTexture(width, height, FormatB8G8R8A8, pixels[:want], updatable)
	if handle == 0 {
		Logger().Debug("engine refused texture",
			zap.String("name", name), zap.Uint32("width", width), zap.Uint32("height", height))
		return fmt.Errorf("creating %q: %w", name, ErrEngineRefused)
	}
	b.textures.insert(&customTexture{
		hash:      hash,
		width:     width,
		height:    height,
		updatable: updatable,
		handle:    handle,
	})
	return nil
}

// UpdateCustomTexture copies src, a tightly packed BGRA block of
// dst.Dx()*dst.Dy() pixels, into the texture at dst. Pixels outside dst are
// not touched. Whether updating a texture created without updatable is
// allowed is up to the engine.
func (b *Bridge) UpdateCustomTexture(hash uint32, src []byte, dst Rect) error {
	t, ok := b.textures.get(hash)
	if !ok {
		return fmt.Errorf("%#08x: %w", hash, ErrTextureNotFound)
	}
	if !dst.within(t.width, t.height) {
		return fmt.Errorf("%+v in %dx%d: %w", dst, t.width, t.height, ErrInvalidRect)
	}
	rowBytes := dst.Dx() * bytesPerPixel
	if len(src) < rowBytes*dst.Dy() {
		return fmt.Errorf("got %d bytes, want %d: %w", len(src), rowBytes*dst.Dy(), ErrPixelData)
	}

	lock, ok := b.engine.LockTexture(t.handle)
	if !ok {
		return fmt.Errorf("locking %#08x: %w", hash, ErrEngineRefused)
	}
	defer b.engine.UnlockTexture(t.handle)

	left := int(dst.Left) * bytesPerPixel
	last := (int(dst.Bottom)-1)*lock.Pitch + left + rowBytes
	if lock.Pitch < int(t.width)*bytesPerPixel || len(lock.Pixels) < last {
		return fmt.Errorf("locked store too small for %dx%d: %w", t.width, t.height, ErrEngineRefused)
	}
	for y := 0; y < dst.Dy(); y++ {
		off := (int(dst.Top)+y)*lock.Pitch + left
		copy(lock.Pixels[off:off+rowBytes], src[y*rowBytes:])
	}
	return nil
}

// DeleteCustomTexture destroys the engine texture and frees the hash.
func (b *Bridge) DeleteCustomTexture(hash uint32) error {
	t, ok := b.textures.remove(hash)
	if !ok {
		return fmt.Errorf("%#08x: %w", hash, ErrTextureNotFound)
	}
	b.engine.DestroyTexture(t.handle)
	return nil
}

// CustomTextureCount returns the number of custom textures.
func (b *Bridge) CustomTextureCount() uint32 {
	return uint32(b.textures.len())
}

// CustomTextures describes every custom texture, ordered by name hash.
func (b *Bridge) CustomTextures() []CustomTextureDesc {
	return b.AppendCustomTextures(make([]CustomTextureDesc, 0, b.textures.len()))
}

// AppendCustomTextures appends the descriptors of every custom texture to dst.
func (b *Bridge) AppendCustomTextures(dst []CustomTextureDesc) []CustomTextureDesc {
	for t := range b.textures.all() {
		dst = append(dst, t.desc())
	}
	return dst
}

// Close destroys every custom texture. The Bridge must not be used after.
func (b *Bridge) Close() {
	if b.closed {
		return
	}
	b.closed = true
	released := b.textures.drain()
	for _, t := range released {
		b.engine.DestroyTexture(t.handle)
	}
	Logger().Debug("bridge closed", zap.Int("released", len(released)))
}
