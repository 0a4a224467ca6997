// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

// Hash returns the one-at-a-time hash the game uses for asset names.
// ASCII letters are folded to lower case before hashing, so "Foo" and "foo"
// collide, exactly as they do inside the engine.
func Hash(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h += uint32(toLower(name[i]))
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
