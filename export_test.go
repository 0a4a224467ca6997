// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

// UseEngineForTest makes Init resolve to e (or fail with err) and resets the
// package to the uninitialized state. The returned func restores the
// platform resolver.
func UseEngineForTest(e Engine, err error) (restore func()) {
	Shutdown()
	prev := resolveEngine
	resolveEngine = func(Options) (Engine, error) {
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return func() {
		Shutdown()
		resolveEngine = prev
	}
}
