// Package reedsolomon implements Reed-Solomon error correction over GF(256).
package reedsolomon

import "fmt"

// GenericGF represents the Galois Field GF(2^8) used for QR Reed-Solomon
// coding. The field is defined by a primitive reducing polynomial and the
// generator element 2.
type GenericGF struct {
	expTable  []int
	logTable  []int
	zero      *GenericGFPoly
	one       *GenericGFPoly
	size      int
	primitive int
}

// QRCodeField256 is GF(256) with reducing polynomial x^8 + x^4 + x^3 + x^2 + 1,
// as mandated for QR symbols.
var QRCodeField256 = NewGenericGF(0x011D, 256)

// NewGenericGF creates a GF(size) using the given primitive polynomial and
// precomputes its antilog and log tables.
func NewGenericGF(primitive, size int) *GenericGF {
	gf := &GenericGF{
		primitive: primitive,
		size:      size,
		expTable:  make([]int, size),
		logTable:  make([]int, size),
	}

	x := 1
	for i := 0; i < size; i++ {
		gf.expTable[i] = x
		x *= 2
		if x >= size {
			x ^= primitive
			x &= size - 1
		}
	}
	for i := 0; i < size-1; i++ {
		gf.logTable[gf.expTable[i]] = i
	}
	// logTable[0] stays 0 and must never be consulted

	gf.zero = newGenericGFPoly(gf, []int{0})
	gf.one = newGenericGFPoly(gf, []int{1})

	return gf
}

// Zero returns the zero polynomial.
func (gf *GenericGF) Zero() *GenericGFPoly { return gf.zero }

// One returns the one polynomial.
func (gf *GenericGF) One() *GenericGFPoly { return gf.one }

// BuildMonomial returns coefficient * x^degree.
func (gf *GenericGF) BuildMonomial(degree, coefficient int) *GenericGFPoly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return gf.zero
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return newGenericGFPoly(gf, coefficients)
}

// AddOrSubtract computes a XOR b. Addition and subtraction coincide in a
// field of characteristic 2.
func AddOrSubtract(a, b int) int {
	return a ^ b
}

// Exp returns 2^a in this field.
func (gf *GenericGF) Exp(a int) int {
	return gf.expTable[a%(gf.size-1)]
}

// Log returns the discrete logarithm of a. Log of zero is undefined.
func (gf *GenericGF) Log(a int) int {
	if a == 0 {
		panic("reedsolomon: log(0)")
	}
	return gf.logTable[a]
}

// Inverse returns the multiplicative inverse of a.
func (gf *GenericGF) Inverse(a int) int {
	if a == 0 {
		panic("reedsolomon: inverse(0)")
	}
	return gf.expTable[gf.size-gf.logTable[a]-1]
}

// Multiply returns a * b in this field.
func (gf *GenericGF) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return gf.expTable[(gf.logTable[a]+gf.logTable[b])%(gf.size-1)]
}

// Size returns the number of elements in the field.
func (gf *GenericGF) Size() int { return gf.size }

// String returns a string representation.
func (gf *GenericGF) String() string {
	return fmt.Sprintf("GF(0x%x,%d)", gf.primitive, gf.size)
}
