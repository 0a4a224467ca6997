// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Package nativeui is the native side of the managed UI library that runs
// inside the game. It gives the managed host three things it cannot reach on
// its own: the engine allocator, the engine's texture dictionaries, and
// custom textures whose engine resources this package creates and owns.
//
// Basic usage from Go (the ./dll command wraps the same calls as C exports):
//
//	if err := nativeui.Init(); err != nil { ... } // once, before anything else
//
//	ok := nativeui.CreateCustomTexture("my_logo", 64, 64, bgraPixels, true)
//	nativeui.UpdateCustomTexture(nativeui.Hash("my_logo"), patch,
//	    nativeui.Rect{Left: 0, Top: 0, Right: 8, Bottom: 8})
//	nativeui.DeleteCustomTexture(nativeui.Hash("my_logo"))
//
//	if nativeui.DoesTextureDictionaryExist("commonmenu") {
//	    for _, t := range nativeui.GetTexturesFromDictionary("commonmenu") { ... }
//	}
//
// Init locates the engine by scanning the game executable for byte
// signatures (see [ParsePattern] and [Image.Scan]); engine structures are
// read through fixed layout views whose sizes are checked at compile time.
// If any signature is missing Init fails and every other call behaves as a
// failed precondition: null, false, zero or no-op.
//
// Custom texture pixels are 32-bit BGRA, top-down, without row padding.
// Names are keyed by [Hash], the same one-at-a-time hash the game uses.
//
// Nothing here starts goroutines or locks: every call runs on the caller's
// thread and the host serializes mutations. Logging is off unless
// [SetLogger] or [Options.Logger] provides a logger.
//
// For tests and tools, [NewBridge] accepts any [Engine] implementation.
package nativeui
