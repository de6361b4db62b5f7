package reedsolomon

// GenericGFPoly represents a polynomial whose coefficients are elements of a
// GF. Coefficients are stored from highest-degree to lowest-degree term.
// Instances are immutable; no operation modifies its receiver or operands.
// When the result equals an existing polynomial (multiplying by 1, adding
// zero), that instance itself may be returned.
type GenericGFPoly struct {
	field        *GenericGF
	coefficients []int
}

// newGenericGFPoly creates a new polynomial, stripping leading zero
// coefficients. The zero polynomial is canonically the single element [0].
func newGenericGFPoly(field *GenericGF, coefficients []int) *GenericGFPoly {
	if len(coefficients) == 0 {
		panic("reedsolomon: empty coefficients")
	}
	if len(coefficients) > 1 && coefficients[0] == 0 {
		firstNonZero := 1
		for firstNonZero < len(coefficients) && coefficients[firstNonZero] == 0 {
			firstNonZero++
		}
		if firstNonZero == len(coefficients) {
			coefficients = []int{0}
		} else {
			trimmed := make([]int, len(coefficients)-firstNonZero)
			copy(trimmed, coefficients[firstNonZero:])
			coefficients = trimmed
		}
	}
	return &GenericGFPoly{field: field, coefficients: coefficients}
}

// Coefficients returns the polynomial coefficients, highest degree first.
func (p *GenericGFPoly) Coefficients() []int {
	return p.coefficients
}

// Degree returns the degree of this polynomial.
func (p *GenericGFPoly) Degree() int {
	return len(p.coefficients) - 1
}

// IsZero returns true if this is the zero polynomial.
func (p *GenericGFPoly) IsZero() bool {
	return p.coefficients[0] == 0
}

// GetCoefficient returns the coefficient of x^degree, or 0 when the degree is
// beyond the polynomial.
func (p *GenericGFPoly) GetCoefficient(degree int) int {
	if degree < 0 || degree > p.Degree() {
		return 0
	}
	return p.coefficients[len(p.coefficients)-1-degree]
}

// EvaluateAt evaluates this polynomial at a using Horner's rule.
func (p *GenericGFPoly) EvaluateAt(a int) int {
	if a == 0 {
		return p.GetCoefficient(0)
	}
	if a == 1 {
		result := 0
		for _, c := range p.coefficients {
			result = AddOrSubtract(result, c)
		}
		return result
	}
	result := p.coefficients[0]
	for i := 1; i < len(p.coefficients); i++ {
		result = AddOrSubtract(p.field.Multiply(a, result), p.coefficients[i])
	}
	return result
}

// AddOrSubtractPoly adds (or subtracts) another polynomial.
func (p *GenericGFPoly) AddOrSubtractPoly(other *GenericGFPoly) *GenericGFPoly {
	if p.IsZero() {
		return other
	}
	if other.IsZero() {
		return p
	}

	smaller := p.coefficients
	larger := other.coefficients
	if len(smaller) > len(larger) {
		smaller, larger = larger, smaller
	}

	sum := make([]int, len(larger))
	lengthDiff := len(larger) - len(smaller)
	// high-order terms of the longer polynomial carry over unchanged
	copy(sum, larger[:lengthDiff])
	for i := lengthDiff; i < len(larger); i++ {
		sum[i] = AddOrSubtract(smaller[i-lengthDiff], larger[i])
	}

	return newGenericGFPoly(p.field, sum)
}

// MultiplyPoly multiplies by another polynomial.
func (p *GenericGFPoly) MultiplyPoly(other *GenericGFPoly) *GenericGFPoly {
	if p.IsZero() || other.IsZero() {
		return p.field.Zero()
	}
	a := p.coefficients
	b := other.coefficients
	product := make([]int, len(a)+len(b)-1)
	for i, ac := range a {
		for j, bc := range b {
			product[i+j] = AddOrSubtract(product[i+j], p.field.Multiply(ac, bc))
		}
	}
	return newGenericGFPoly(p.field, product)
}

// MultiplyScalar multiplies every coefficient by a scalar.
func (p *GenericGFPoly) MultiplyScalar(scalar int) *GenericGFPoly {
	if scalar == 0 {
		return p.field.Zero()
	}
	if scalar == 1 {
		return p
	}
	product := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, scalar)
	}
	return newGenericGFPoly(p.field, product)
}

// MultiplyByMonomial multiplies by coefficient * x^degree.
func (p *GenericGFPoly) MultiplyByMonomial(degree, coefficient int) *GenericGFPoly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return p.field.Zero()
	}
	product := make([]int, len(p.coefficients)+degree)
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, coefficient)
	}
	return newGenericGFPoly(p.field, product)
}

// Divide performs long division by another polynomial, returning the quotient
// and remainder.
func (p *GenericGFPoly) Divide(other *GenericGFPoly) (*GenericGFPoly, *GenericGFPoly) {
	if other.IsZero() {
		panic("reedsolomon: divide by zero")
	}

	quotient := p.field.Zero()
	remainder := p

	denominatorLeadingTerm := other.GetCoefficient(other.Degree())
	inverseDLT := p.field.Inverse(denominatorLeadingTerm)

	for remainder.Degree() >= other.Degree() && !remainder.IsZero() {
		degreeDiff := remainder.Degree() - other.Degree()
		scale := p.field.Multiply(remainder.GetCoefficient(remainder.Degree()), inverseDLT)
		quotient = quotient.AddOrSubtractPoly(p.field.BuildMonomial(degreeDiff, scale))
		remainder = remainder.AddOrSubtractPoly(other.MultiplyByMonomial(degreeDiff, scale))
	}

	return quotient, remainder
}

// Mod returns the remainder of dividing by another polynomial.
func (p *GenericGFPoly) Mod(other *GenericGFPoly) *GenericGFPoly {
	_, remainder := p.Divide(other)
	return remainder
}
