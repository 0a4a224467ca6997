// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

import "go.uber.org/zap"

// Options for initializing the module. All fields are optional.
type Options struct {
	ModuleName string      // Loaded module to scan for engine signatures. Defaults to the main executable.
	Logger     *zap.Logger // Replaces the package logger when set. Default is silent.
}

func resolveOpts(opts *Options) Options {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.Logger != nil {
		SetLogger(o.Logger)
	}
	return o
}
