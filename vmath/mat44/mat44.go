package mat44

// T is a row-major 4x4 matrix.
type T [16]float64

func Identity() T {
	return T{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func MulMM(a, b T) T {
	result := T{}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i*4+j] += a[i*4+k] * b[k*4+j]
			}
		}
	}
	return result
}

func MulMV(a T, b [4]float64) [4]float64 {
	return [4]float64{
		a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3],
		a[4]*b[0] + a[5]*b[1] + a[6]*b[2] + a[7]*b[3],
		a[8]*b[0] + a[9]*b[1] + a[10]*b[2] + a[11]*b[3],
		a[12]*b[0] + a[13]*b[1] + a[14]*b[2] + a[15]*b[3],
	}
}

// At returns the element at row r, column c.
func (m T) At(r, c int) float64 {
	return m[r*4+c]
}
