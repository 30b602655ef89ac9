package spline

// Basis computes the order non-vanishing basis functions on the given knot span.
// (algorithm 2.2 from The NURBS book, Piegl & Tiller)
func (t Knots) Basis(order, span int, u float64) []float64 {
	p := order - 1
	n := make([]float64, order)
	left := make([]float64, order)
	right := make([]float64, order)

	n[0] = 1
	for j := 1; j <= p; j++ {
		left[j] = u - t[span+1-j]
		right[j] = t[span+j] - u
		var saved float64
		for r := 0; r < j; r++ {
			tmp := n[r] / (right[r+1] + left[j-r])
			n[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		n[j] = saved
	}
	return n
}

// Derivatives computes the non-vanishing basis functions and their derivatives up to nd.
// Row k holds the k-th derivative. Derivatives above the degree vanish.
// (algorithm 2.3 from The NURBS book, Piegl & Tiller)
func (t Knots) Derivatives(order, span int, u float64, nd int) [][]float64 {
	p := order - 1
	ders := zeros(nd+1, order)

	ndu := zeros(order, order)
	left := make([]float64, order)
	right := make([]float64, order)

	ndu[0][0] = 1
	for j := 1; j <= p; j++ {
		left[j] = u - t[span+1-j]
		right[j] = t[span+j] - u
		var saved float64
		for r := 0; r < j; r++ {
			// lower triangle holds the knot differences
			ndu[j][r] = right[r+1] + left[j-r]
			tmp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		ndu[j][j] = saved
	}

	for j := 0; j <= p; j++ {
		ders[0][j] = ndu[j][p]
	}

	top := nd
	if top > p {
		top = p
	}

	a := zeros(2, order)
	for r := 0; r <= p; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1
		for k := 1; k <= top; k++ {
			var d float64
			rk := r - k
			pk := p - k
			if r >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}
			j1, j2 := 1, k-1
			if rk < -1 {
				j1 = -rk
			}
			if r-1 > pk {
				j2 = p - r
			}
			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}
			if r <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
				d += a[s2][k] * ndu[r][pk]
			}
			ders[k][r] = d
			s1, s2 = s2, s1
		}
	}

	f := float64(p)
	for k := 1; k <= top; k++ {
		for j := 0; j <= p; j++ {
			ders[k][j] *= f
		}
		f *= float64(p - k)
	}

	return ders
}

func zeros(n, m int) [][]float64 {
	z := make([][]float64, n)
	for i := range z {
		z[i] = make([]float64, m)
	}
	return z
}
