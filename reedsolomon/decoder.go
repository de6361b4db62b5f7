package reedsolomon

import "errors"

// ErrReedSolomon indicates an uncorrectable codeword block.
var ErrReedSolomon = errors.New("reedsolomon: decoding error")

// Decoder performs syndrome-based Reed-Solomon error correction.
type Decoder struct {
	field *GenericGF
}

// NewDecoder creates a new Decoder for the given field.
func NewDecoder(field *GenericGF) *Decoder {
	return &Decoder{field: field}
}

// Decode corrects errors in received in-place and returns the number of
// errors corrected. twoS is the number of error-correction codewords carried
// by the block; up to twoS/2 codeword errors can be repaired.
func (d *Decoder) Decode(received []int, twoS int) (int, error) {
	poly := newGenericGFPoly(d.field, received)
	syndromeCoefficients := make([]int, twoS)
	noError := true
	for i := 0; i < twoS; i++ {
		eval := poly.EvaluateAt(d.field.Exp(i))
		syndromeCoefficients[twoS-1-i] = eval
		if eval != 0 {
			noError = false
		}
	}
	if noError {
		return 0, nil
	}

	syndrome := newGenericGFPoly(d.field, syndromeCoefficients)
	sigma, omega, err := d.runEuclideanAlgorithm(d.field.BuildMonomial(twoS, 1), syndrome, twoS)
	if err != nil {
		return 0, err
	}
	errorLocations, err := d.findErrorLocations(sigma)
	if err != nil {
		return 0, err
	}
	errorMagnitudes, err := d.findErrorMagnitudes(omega, sigma, errorLocations)
	if err != nil {
		return 0, err
	}
	for i := 0; i < len(errorLocations); i++ {
		position := len(received) - 1 - d.field.Log(errorLocations[i])
		if position < 0 {
			return 0, ErrReedSolomon
		}
		received[position] = AddOrSubtract(received[position], errorMagnitudes[i])
	}
	return len(errorLocations), nil
}

// runEuclideanAlgorithm runs the extended Euclidean algorithm on a and b
// until the remainder degree drops below R/2, yielding the error locator
// sigma and error evaluator omega, both normalized so that sigma(0) = 1.
func (d *Decoder) runEuclideanAlgorithm(a, b *GenericGFPoly, R int) (sigma, omega *GenericGFPoly, err error) {
	if a.Degree() < b.Degree() {
		a, b = b, a
	}

	rLast := a
	r := b
	tLast := d.field.Zero()
	t := d.field.One()

	for 2*r.Degree() >= R {
		rLastLast := rLast
		tLastLast := tLast
		rLast = r
		tLast = t

		if rLast.IsZero() {
			// syndrome was zero in every term; nothing left to divide
			return nil, nil, ErrReedSolomon
		}
		r = rLastLast
		q := d.field.Zero()
		denominatorLeadingTerm := rLast.GetCoefficient(rLast.Degree())
		dltInverse := d.field.Inverse(denominatorLeadingTerm)
		for r.Degree() >= rLast.Degree() && !r.IsZero() {
			degreeDiff := r.Degree() - rLast.Degree()
			scale := d.field.Multiply(r.GetCoefficient(r.Degree()), dltInverse)
			q = q.AddOrSubtractPoly(d.field.BuildMonomial(degreeDiff, scale))
			r = r.AddOrSubtractPoly(rLast.MultiplyByMonomial(degreeDiff, scale))
		}

		t = q.MultiplyPoly(tLast).AddOrSubtractPoly(tLastLast)

		if r.Degree() >= rLast.Degree() {
			return nil, nil, ErrReedSolomon
		}
	}

	sigmaTildeAtZero := t.GetCoefficient(0)
	if sigmaTildeAtZero == 0 {
		return nil, nil, ErrReedSolomon
	}

	inverse := d.field.Inverse(sigmaTildeAtZero)
	return t.MultiplyScalar(inverse), r.MultiplyScalar(inverse), nil
}

// findErrorLocations performs a Chien search for the roots of the error
// locator polynomial. The returned values are the inverses of the roots.
func (d *Decoder) findErrorLocations(errorLocator *GenericGFPoly) ([]int, error) {
	numErrors := errorLocator.Degree()
	if numErrors == 1 {
		return []int{errorLocator.GetCoefficient(1)}, nil
	}
	result := make([]int, 0, numErrors)
	for i := 1; i < d.field.Size() && len(result) < numErrors; i++ {
		if errorLocator.EvaluateAt(i) == 0 {
			result = append(result, d.field.Inverse(i))
		}
	}
	if len(result) != numErrors {
		return nil, ErrReedSolomon
	}
	return result, nil
}

// findErrorMagnitudes applies Forney's formula: the magnitude at each error
// location is Xi * omega(Xi^-1) / sigma'(Xi^-1), where sigma' is the formal
// derivative of the error locator. The Xi factor accounts for syndromes
// starting at alpha^0.
func (d *Decoder) findErrorMagnitudes(errorEvaluator, errorLocator *GenericGFPoly, errorLocations []int) ([]int, error) {
	s := len(errorLocations)
	result := make([]int, s)
	for i := 0; i < s; i++ {
		xiInverse := d.field.Inverse(errorLocations[i])
		denominator := d.evaluateFormalDerivative(errorLocator, xiInverse)
		if denominator == 0 {
			return nil, ErrReedSolomon
		}
		numerator := d.field.Multiply(errorEvaluator.EvaluateAt(xiInverse), errorLocations[i])
		result[i] = d.field.Multiply(numerator, d.field.Inverse(denominator))
	}
	return result, nil
}

// evaluateFormalDerivative evaluates sigma'(x). In characteristic 2 the even
// terms vanish, leaving sigma'(x) = sum of sigma_(2i+1) * x^2i.
func (d *Decoder) evaluateFormalDerivative(p *GenericGFPoly, x int) int {
	result := 0
	xSquared := d.field.Multiply(x, x)
	power := 1
	for degree := 1; degree <= p.Degree(); degree += 2 {
		result = AddOrSubtract(result, d.field.Multiply(p.GetCoefficient(degree), power))
		power = d.field.Multiply(power, xSquared)
	}
	return result
}
