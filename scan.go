// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package nativeui

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Pattern is a byte signature where some positions match any byte.
type Pattern struct {
	text  string
	bytes []byte
	mask  []bool // true = byte must match
}

// ParsePattern parses an IDA-style signature such as "48 8B 0D ? ? ? ? E8".
// Both "?" and "??" are wildcards.
func ParsePattern(s string) (Pattern, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Pattern{}, ErrEmptyPattern
	}
	p := Pattern{
		text:  s,
		bytes: make([]byte, len(fields)),
		mask:  make([]bool, len(fields)),
	}
	fixed := 0
	for i, f := range fields {
		if f == "?" || f == "??" {
			continue
		}
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return Pattern{}, fmt.Errorf("%w: token %d %q", ErrInvalidPattern, i, f)
		}
		p.bytes[i] = byte(v)
		p.mask[i] = true
		fixed++
	}
	if fixed == 0 {
		return Pattern{}, fmt.Errorf("%w: %q has no fixed bytes", ErrInvalidPattern, s)
	}
	return p, nil
}

// MustParsePattern is like ParsePattern but panics on error. Used for the
// static signature tables.
func MustParsePattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of bytes the pattern covers.
func (p Pattern) Len() int { return len(p.bytes) }

func (p Pattern) String() string { return p.text }

// Find returns the offset of the first match in data, or -1.
func (p Pattern) Find(data []byte) int {
	n := len(p.bytes)
	if n == 0 || n > len(data) {
		return -1
	}
	for i := 0; i <= len(data)-n; i++ {
		if p.matchAt(data, i) {
			return i
		}
	}
	return -1
}

func (p Pattern) matchAt(data []byte, off int) bool {
	for j := 0; j < len(p.bytes); j++ {
		if p.mask[j] && data[off+j] != p.bytes[j] {
			return false
		}
	}
	return true
}

// sectionRange is a section of a mapped image, as offsets from the image base.
type sectionRange struct {
	name  string
	start uint32
	size  uint32
}

// executableSections returns the sections that are both executable and
// readable, in header order.
func executableSections(f *pe.File) []sectionRange {
	const want = pe.IMAGE_SCN_MEM_EXECUTE | pe.IMAGE_SCN_MEM_READ
	var out []sectionRange
	for _, s := range f.Sections {
		if s.Characteristics&want != want {
			continue
		}
		size := s.VirtualSize
		if size == 0 {
			size = s.Size
		}
		out = append(out, sectionRange{name: s.Name, start: s.VirtualAddress, size: size})
	}
	return out
}

// Image is a PE image laid out as the loader maps it: sections sit at their
// virtual addresses, so offsets into the slice are RVAs.
type Image struct {
	data     []byte
	sections []sectionRange
}

// NewImage parses the headers of a mapped image.
func NewImage(data []byte) (*Image, error) {
	f, err := pe.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	defer f.Close()
	return &Image{data: data, sections: executableSections(f)}, nil
}

// Scan returns the RVA of the lowest match of p across the executable
// sections.
func (img *Image) Scan(p Pattern) (int, error) {
	if p.Len() == 0 {
		return -1, ErrEmptyPattern
	}
	best := -1
	for _, s := range img.sections {
		start := int(s.start)
		end := start + int(s.size)
		if start >= len(img.data) {
			continue
		}
		if end > len(img.data) {
			end = len(img.data)
		}
		if off := p.Find(img.data[start:end]); off >= 0 {
			if best < 0 || start+off < best {
				best = start + off
			}
		}
	}
	if best < 0 {
		return -1, ErrPatternNotFound
	}
	return best, nil
}

// ScanImage parses data and scans it once. See Image.Scan.
func ScanImage(data []byte, p Pattern) (int, error) {
	if p.Len() == 0 {
		return -1, ErrEmptyPattern
	}
	img, err := NewImage(data)
	if err != nil {
		return -1, err
	}
	return img.Scan(p)
}

// ripTarget resolves a RIP-relative operand of the instruction at offset at.
// dispOff is where the signed 32-bit displacement sits inside the
// instruction and insnLen is the full instruction length. The result is an
// offset from the image base.
func (img *Image) ripTarget(at, dispOff, insnLen int) (int, error) {
	image := img.data
	d := at + dispOff
	if at < 0 || d+4 > len(image) {
		return -1, fmt.Errorf("%w: displacement at %#x out of range", ErrInvalidImage, d)
	}
	rel := int32(binary.LittleEndian.Uint32(image[d:]))
	target := at + insnLen + int(rel)
	if target < 0 || target >= len(image) {
		return -1, fmt.Errorf("%w: rip target %#x out of range", ErrInvalidImage, target)
	}
	return target, nil
}
