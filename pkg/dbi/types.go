// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dbi

import "fmt"

// FieldType is the canonical column type shared by all drivers.
type FieldType uint8

const (
	TypeUnknown FieldType = iota
	TypeInteger
	TypeDecimal
	TypeString
	TypeBinary
	TypeEnum
	TypeSet
	TypeDatetime
)

func (t FieldType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeDecimal:
		return "decimal"
	case TypeString:
		return "string"
	case TypeBinary:
		return "binary"
	case TypeEnum:
		return "enum"
	case TypeSet:
		return "set"
	case TypeDatetime:
		return "datetime"
	default:
		return "unknown"
	}
}

// textual reports whether values of this type are stored as text.
func (t FieldType) textual() bool {
	return t == TypeString || t == TypeEnum || t == TypeSet
}

// Attribute carries sub-variant facts layered onto a FieldType.
//
// Bits are partitioned into disjoint ranges so that Isolate extracts exactly
// one facet: integer size bits never overlap decimal size bits, and neither
// overlaps the datetime presence bits.
type Attribute uint32

const (
	AttrUnsigned Attribute = 1 << iota

	AttrIntSize1
	AttrIntSize2
	AttrIntSize3
	AttrIntSize4
	AttrIntSize8

	AttrDecSize4
	AttrDecSize8

	AttrFixedSize

	AttrDate
	AttrTime
)

// Range masks for Isolate.
const (
	AttrIntSizeMask  = AttrIntSize1 | AttrIntSize2 | AttrIntSize3 | AttrIntSize4 | AttrIntSize8
	AttrDecSizeMask  = AttrDecSize4 | AttrDecSize8
	AttrDatetimeMask = AttrDate | AttrTime
)

// Isolate returns the bits of attrs that fall in [min, max]. min and max are
// single-bit attributes; every bit between them is included.
func Isolate(attrs, min, max Attribute) Attribute {
	if min == 0 || max < min {
		return 0
	}
	mask := (max << 1) - min
	return attrs & mask
}

// Has reports whether every bit of a is set.
func (a Attribute) Has(bits Attribute) bool {
	return a&bits == bits
}

// IntSize returns the byte width encoded in an integer attribute set, or 0.
func (a Attribute) IntSize() int {
	switch Isolate(a, AttrIntSize1, AttrIntSize8) {
	case AttrIntSize1:
		return 1
	case AttrIntSize2:
		return 2
	case AttrIntSize3:
		return 3
	case AttrIntSize4:
		return 4
	case AttrIntSize8:
		return 8
	default:
		return 0
	}
}

// DecSize returns the byte width encoded in a decimal attribute set, or 0.
func (a Attribute) DecSize() int {
	switch Isolate(a, AttrDecSize4, AttrDecSize8) {
	case AttrDecSize4:
		return 4
	case AttrDecSize8:
		return 8
	default:
		return 0
	}
}

func (a Attribute) String() string {
	return fmt.Sprintf("0x%04x", uint32(a))
}

// Field describes one column of a Result.
type Field struct {
	Name  string
	Type  FieldType
	Attrs Attribute
}

