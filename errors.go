// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

import (
	"errors"
	"fmt"
)

var (
	ErrNotInitialized      = errors.New("nativeui: not initialized")
	ErrUnsupportedPlatform = errors.New("nativeui: host engine is only available on windows/amd64")
	ErrEmptyPattern        = errors.New("empty pattern")
	ErrInvalidPattern      = errors.New("invalid pattern")
	ErrPatternNotFound     = errors.New("pattern not found")
	ErrInvalidImage        = errors.New("invalid module image")
	ErrTextureExists       = errors.New("custom texture already exists")
	ErrTextureNotFound     = errors.New("custom texture not found")
	ErrEngineRefused       = errors.New("engine refused the request")
	ErrInvalidRect         = errors.New("rectangle outside texture bounds")
	ErrPixelData           = errors.New("pixel data does not match dimensions")
)

// ScanError reports an engine symbol whose signature could not be found in
// the target module. It unwraps to ErrPatternNotFound unless a more specific
// cause is set.
type ScanError struct {
	Symbol  string
	Pattern string
	Err     error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("resolving %s (%s): %v", e.Symbol, e.Pattern, e.Unwrap())
}

func (e *ScanError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrPatternNotFound
}
