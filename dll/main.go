// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

//go:build windows && amd64

// Command dll builds the helper DLL loaded by the managed UI library:
//
//	go build -buildmode=c-shared -o RAGENativeUI.Helper.dll ./dll
//
// Every export forwards to package nativeui. Init must be called first;
// until it succeeds the other exports return null, false or zero.
package main

/*
#include <stdint.h>
#include <stdbool.h>

typedef struct {
	int32_t left;
	int32_t top;
	int32_t right;
	int32_t bottom;
} rect_t;
*/
import "C"

import (
	"unsafe"

	nativeui "github.com/YindSoft/rage-nativeui-helper"
)

func main() {}

//export Init
func Init() {
	_ = nativeui.Init()
}

//export Allocate
func Allocate(size C.int64_t) unsafe.Pointer {
	return unsafe.Pointer(nativeui.Allocate(int64(size)))
}

//export Free
func Free(ptr unsafe.Pointer) {
	nativeui.Free(uintptr(ptr))
}

//export DoesTextureDictionaryExist
func DoesTextureDictionaryExist(name *C.char) C.bool {
	return C.bool(nativeui.DoesTextureDictionaryExist(C.GoString(name)))
}

//export GetNumberOfTexturesFromDictionary
func GetNumberOfTexturesFromDictionary(name *C.char) C.uint32_t {
	return C.uint32_t(nativeui.GetNumberOfTexturesFromDictionary(C.GoString(name)))
}

//export GetTexturesFromDictionary
func GetTexturesFromDictionary(name *C.char, out unsafe.Pointer) {
	descs := nativeui.GetTexturesFromDictionary(C.GoString(name))
	if len(descs) == 0 || out == nil {
		return
	}
	copy(unsafe.Slice((*nativeui.TextureDesc)(out), len(descs)), descs)
}

//export DoesCustomTextureExist
func DoesCustomTextureExist(nameHash C.uint32_t) C.bool {
	return C.bool(nativeui.DoesCustomTextureExist(uint32(nameHash)))
}

//export CreateCustomTexture
func CreateCustomTexture(name *C.char, width, height C.uint32_t, pixelData *C.uint8_t, updatable C.bool) C.bool {
	if pixelData == nil {
		return false
	}
	n := int(width) * int(height) * 4
	pixels := unsafe.Slice((*byte)(unsafe.Pointer(pixelData)), n)
	return C.bool(nativeui.CreateCustomTexture(C.GoString(name), uint32(width), uint32(height), pixels, bool(updatable)))
}

//export DeleteCustomTexture
func DeleteCustomTexture(nameHash C.uint32_t) {
	nativeui.DeleteCustomTexture(uint32(nameHash))
}

//export UpdateCustomTexture
func UpdateCustomTexture(nameHash C.uint32_t, srcData *C.uint8_t, dstRect *C.rect_t) {
	if srcData == nil || dstRect == nil {
		return
	}
	dst := nativeui.Rect{
		Left:   int32(dstRect.left),
		Top:    int32(dstRect.top),
		Right:  int32(dstRect.right),
		Bottom: int32(dstRect.bottom),
	}
	if dst.Empty() {
		return
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(srcData)), dst.Dx()*dst.Dy()*4)
	nativeui.UpdateCustomTexture(uint32(nameHash), src, dst)
}

//export GetNumberOfCustomTextures
func GetNumberOfCustomTextures() C.uint32_t {
	return C.uint32_t(nativeui.GetNumberOfCustomTextures())
}

//export GetCustomTextures
func GetCustomTextures(out unsafe.Pointer) {
	descs := nativeui.GetCustomTextures()
	if len(descs) == 0 || out == nil {
		return
	}
	copy(unsafe.Slice((*nativeui.CustomTextureDesc)(out), len(descs)), descs)
}

//export Globals_GetMenusOpened
func Globals_GetMenusOpened() C.int32_t {
	return C.int32_t(nativeui.MenusOpened())
}

//export Globals_SetMenusOpened
func Globals_SetMenusOpened(value C.int32_t) {
	nativeui.SetMenusOpened(int32(value))
}
