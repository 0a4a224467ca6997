// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui_test

import (
	"bytes"
	"errors"
	"testing"

	nativeui "github.com/YindSoft/rage-nativeui-helper"
	"github.com/YindSoft/rage-nativeui-helper/internal/fakeengine"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestOperationsBeforeInit(t *testing.T) {
	eng := fakeengine.New()
	eng.AddDictionary("commonmenu", fakeengine.TextureSpec{Name: "a", Width: 1, Height: 1})
	restore := nativeui.UseEngineForTest(eng, nil)
	defer restore()

	if nativeui.Initialized() {
		t.Fatal("Initialized() = true before Init")
	}
	if p := nativeui.Allocate(16); p != 0 {
		t.Errorf("Allocate before Init = %#x, want 0", p)
	}
	nativeui.Free(0x1234)
	if nativeui.DoesTextureDictionaryExist("commonmenu") {
		t.Error("DoesTextureDictionaryExist before Init = true")
	}
	if n := nativeui.GetNumberOfTexturesFromDictionary("commonmenu"); n != 0 {
		t.Errorf("GetNumberOfTexturesFromDictionary before Init = %d", n)
	}
	if d := nativeui.GetTexturesFromDictionary("commonmenu"); len(d) != 0 {
		t.Errorf("GetTexturesFromDictionary before Init = %v", d)
	}
	if nativeui.CreateCustomTexture("foo", 2, 2, fooPixels, true) {
		t.Error("CreateCustomTexture before Init = true")
	}
	if nativeui.DoesCustomTextureExist(nativeui.Hash("foo")) {
		t.Error("DoesCustomTextureExist before Init = true")
	}
	nativeui.UpdateCustomTexture(nativeui.Hash("foo"), fooPixels[:4], nativeui.Rect{Right: 1, Bottom: 1})
	nativeui.DeleteCustomTexture(nativeui.Hash("foo"))
	if n := nativeui.GetNumberOfCustomTextures(); n != 0 {
		t.Errorf("GetNumberOfCustomTextures before Init = %d", n)
	}
	if d := nativeui.GetCustomTextures(); len(d) != 0 {
		t.Errorf("GetCustomTextures before Init = %v", d)
	}
	if eng.Live() != 0 || eng.Allocations() != 0 || eng.Freed != 0 {
		t.Error("engine was reached before Init")
	}
}

func TestInitFailureShortCircuits(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	nativeui.SetLogger(zap.New(core))
	defer nativeui.SetLogger(nil)

	scanErr := &nativeui.ScanError{Symbol: "fwTxdStore", Pattern: "48 8D 0D"}
	restore := nativeui.UseEngineForTest(nil, scanErr)
	defer restore()

	err := nativeui.Init()
	if !errors.Is(err, nativeui.ErrPatternNotFound) {
		t.Fatalf("Init() error = %v, want ErrPatternNotFound", err)
	}
	if again := nativeui.Init(); again != err {
		t.Errorf("second Init() = %v, want the first result %v", again, err)
	}
	if nativeui.Initialized() {
		t.Error("Initialized() = true after failed Init")
	}
	if nativeui.CreateCustomTexture("foo", 2, 2, fooPixels, true) {
		t.Error("CreateCustomTexture after failed Init = true")
	}
	if nativeui.Allocate(8) != 0 {
		t.Error("Allocate after failed Init returned memory")
	}
	if logs.FilterField(zap.String("symbol", "fwTxdStore")).Len() != 1 {
		t.Errorf("missing signature was not logged: %v", logs.All())
	}
}

func TestInitIsIdempotent(t *testing.T) {
	first := fakeengine.New()
	restore := nativeui.UseEngineForTest(first, nil)
	defer restore()

	if err := nativeui.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	b := nativeui.Current()
	if err := nativeui.Init(); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if nativeui.Current() != b {
		t.Error("second Init replaced the bridge")
	}
}

func TestEndToEnd(t *testing.T) {
	eng := fakeengine.New()
	restore := nativeui.UseEngineForTest(eng, nil)
	defer restore()
	if err := nativeui.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	foo := nativeui.Hash("foo")

	// E1
	if !nativeui.CreateCustomTexture("foo", 2, 2, fooPixels, true) {
		t.Fatal("CreateCustomTexture(foo) = false")
	}
	if !nativeui.DoesCustomTextureExist(foo) {
		t.Error("DoesCustomTextureExist(foo) = false")
	}
	if n := nativeui.GetNumberOfCustomTextures(); n != 1 {
		t.Errorf("GetNumberOfCustomTextures() = %d, want 1", n)
	}

	// E2
	if nativeui.CreateCustomTexture("foo", 4, 4, make([]byte, 64), false) {
		t.Error("second CreateCustomTexture(foo) = true")
	}
	descs := nativeui.GetCustomTextures()
	want := nativeui.CustomTextureDesc{Name: foo, Width: 2, Height: 2, Updatable: true}
	if len(descs) != 1 || descs[0] != want {
		t.Errorf("GetCustomTextures() = %+v, want [%+v]", descs, want)
	}

	// E3
	nativeui.UpdateCustomTexture(foo, []byte{0, 0, 0, 0xFF}, nativeui.Rect{Right: 1, Bottom: 1})
	px := eng.Pixels(lastCreated(t, eng))
	if !bytes.Equal(px[0:4], []byte{0, 0, 0, 0xFF}) || !bytes.Equal(px[4:8], []byte{0, 0xFF, 0, 0xFF}) {
		t.Errorf("pixels after update = % X", px[:8])
	}

	// E4
	nativeui.DeleteCustomTexture(foo)
	if n := nativeui.GetNumberOfCustomTextures(); n != 0 {
		t.Errorf("GetNumberOfCustomTextures() after delete = %d, want 0", n)
	}
	nativeui.DeleteCustomTexture(foo)
	if eng.Destroyed != 1 {
		t.Errorf("engine destroyed %d textures, want 1", eng.Destroyed)
	}

	// E6
	if nativeui.DoesTextureDictionaryExist("nonexistent") {
		t.Error("DoesTextureDictionaryExist(nonexistent) = true")
	}
	if n := nativeui.GetNumberOfTexturesFromDictionary("nonexistent"); n != 0 {
		t.Errorf("GetNumberOfTexturesFromDictionary(nonexistent) = %d", n)
	}
}

func TestShutdownReleasesTextures(t *testing.T) {
	eng := fakeengine.New()
	restore := nativeui.UseEngineForTest(eng, nil)
	defer restore()
	if err := nativeui.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	nativeui.CreateCustomTexture("a", 1, 1, fooPixels[:4], false)
	nativeui.CreateCustomTexture("b", 1, 1, fooPixels[:4], false)

	nativeui.Shutdown()
	if eng.Live() != 0 {
		t.Errorf("engine has %d live textures after Shutdown", eng.Live())
	}
	if nativeui.Initialized() {
		t.Error("Initialized() = true after Shutdown")
	}
	if err := nativeui.Init(); err != nil {
		t.Errorf("Init after Shutdown: %v", err)
	}
}

func TestMenusOpened(t *testing.T) {
	defer nativeui.SetMenusOpened(nativeui.MenusOpened())

	nativeui.SetMenusOpened(3)
	if got := nativeui.MenusOpened(); got != 3 {
		t.Errorf("MenusOpened() = %d, want 3", got)
	}
	nativeui.SetMenusOpened(-1)
	if got := nativeui.MenusOpened(); got != -1 {
		t.Errorf("MenusOpened() = %d, want -1", got)
	}
}
