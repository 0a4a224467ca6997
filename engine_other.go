// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

//go:build !(windows && amd64)

package nativeui

func resolveHostEngine(Options) (Engine, error) {
	return nil, ErrUnsupportedPlatform
}
