// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

import "sync/atomic"

// menusOpened is shared with other plugins through the exports. It does not
// depend on Init.
var menusOpened atomic.Int32

// MenusOpened returns how many menus the host reports as open.
func MenusOpened() int32 {
	return menusOpened.Load()
}

// SetMenusOpened stores the open menu count.
func SetMenusOpened(v int32) {
	menusOpened.Store(v)
}
