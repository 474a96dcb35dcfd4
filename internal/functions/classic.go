package functions

import (
	"math"
)

// Sphere returns f(x) = |x|^2.
func Sphere(n int) Function {
	fval := func(x []float64) float64 {
		var f float64
		for _, xi := range x {
			f += xi * xi
		}
		return f
	}
	grad := func(x, g []float64) float64 {
		for i, xi := range x {
			g[i] = 2 * xi
		}
		return fval(x)
	}
	return newFunction(scalable("Sphere", n), n, fval, grad, make([]float64, n))
}

// Rosenbrock returns the n-dimensional Rosenbrock valley
//
//	f(x) = sum_i 100*(x_{i+1} - x_i^2)^2 + (1 - x_i)^2
//
// with its global minimum at (1, ..., 1).
func Rosenbrock(n int) Function {
	fval := func(x []float64) float64 {
		var f float64
		for i := 0; i+1 < n; i++ {
			a, b := 1-x[i], x[i+1]-x[i]*x[i]
			f += a*a + 100*b*b
		}
		return f
	}
	grad := func(x, g []float64) float64 {
		for i := range g {
			g[i] = 0
		}
		for i := 0; i+1 < n; i++ {
			b := x[i+1] - x[i]*x[i]
			g[i] += -2*(1-x[i]) - 400*x[i]*b
			g[i+1] += 200 * b
		}
		return fval(x)
	}
	return newFunction(scalable("Rosenbrock", n), n, fval, grad, ones(n))
}

// bohachevsky evaluates the three Bohachevsky variants, all of them with
// the global minimum f(0, 0) = 0.
func bohachevsky(variant int) Function {
	terms := func(x []float64) (u, p1, p2 float64) {
		return x[0]*x[0] + 2*x[1]*x[1], 3 * math.Pi * x[0], 4 * math.Pi * x[1]
	}

	fval := func(x []float64) float64 {
		u, p1, p2 := terms(x)
		switch variant {
		case 1:
			return u - 0.3*math.Cos(p1) - 0.4*math.Cos(p2) + 0.7
		case 2:
			return u - 0.3*math.Cos(p1)*math.Cos(p2) + 0.3
		default:
			return u - 0.3*math.Cos(p1+p2) + 0.3
		}
	}
	grad := func(x, g []float64) float64 {
		_, p1, p2 := terms(x)
		switch variant {
		case 1:
			g[0] = 2*x[0] + 0.3*3*math.Pi*math.Sin(p1)
			g[1] = 4*x[1] + 0.4*4*math.Pi*math.Sin(p2)
		case 2:
			g[0] = 2*x[0] + 0.3*3*math.Pi*math.Sin(p1)*math.Cos(p2)
			g[1] = 4*x[1] + 0.3*4*math.Pi*math.Cos(p1)*math.Sin(p2)
		default:
			g[0] = 2*x[0] + 0.3*3*math.Pi*math.Sin(p1+p2)
			g[1] = 4*x[1] + 0.3*4*math.Pi*math.Sin(p1+p2)
		}
		return fval(x)
	}

	names := map[int]string{1: "Bohachevsky1", 2: "Bohachevsky2", 3: "Bohachevsky3"}
	return newFunction(names[variant], 2, fval, grad, []float64{0, 0})
}

// Bohachevsky1 returns x^2 + 2y^2 - 0.3cos(3 pi x) - 0.4cos(4 pi y) + 0.7.
func Bohachevsky1() Function { return bohachevsky(1) }

// Bohachevsky2 returns x^2 + 2y^2 - 0.3cos(3 pi x)cos(4 pi y) + 0.3.
func Bohachevsky2() Function { return bohachevsky(2) }

// Bohachevsky3 returns x^2 + 2y^2 - 0.3cos(3 pi x + 4 pi y) + 0.3.
func Bohachevsky3() Function { return bohachevsky(3) }

// Booth returns (x + 2y - 7)^2 + (2x + y - 5)^2, minimized at (1, 3).
func Booth() Function {
	fval := func(x []float64) float64 {
		a, b := x[0]+2*x[1]-7, 2*x[0]+x[1]-5
		return a*a + b*b
	}
	grad := func(x, g []float64) float64 {
		a, b := x[0]+2*x[1]-7, 2*x[0]+x[1]-5
		g[0] = 2*a + 4*b
		g[1] = 4*a + 2*b
		return a*a + b*b
	}
	return newFunction("Booth", 2, fval, grad, []float64{1, 3})
}

// Beale returns the Beale function, minimized at (3, 0.5).
func Beale() Function {
	terms := func(x []float64) (t1, t2, t3 float64) {
		a, b := x[0], x[1]
		return 1.5 - a + a*b, 2.25 - a + a*b*b, 2.625 - a + a*b*b*b
	}
	fval := func(x []float64) float64 {
		t1, t2, t3 := terms(x)
		return t1*t1 + t2*t2 + t3*t3
	}
	grad := func(x, g []float64) float64 {
		a, b := x[0], x[1]
		t1, t2, t3 := terms(x)
		g[0] = 2*t1*(b-1) + 2*t2*(b*b-1) + 2*t3*(b*b*b-1)
		g[1] = 2*t1*a + 4*t2*a*b + 6*t3*a*b*b
		return t1*t1 + t2*t2 + t3*t3
	}
	return newFunction("Beale", 2, fval, grad, []float64{3, 0.5})
}

// Matyas returns 0.26(x^2 + y^2) - 0.48xy, minimized at the origin.
func Matyas() Function {
	fval := func(x []float64) float64 {
		return 0.26*(x[0]*x[0]+x[1]*x[1]) - 0.48*x[0]*x[1]
	}
	grad := func(x, g []float64) float64 {
		g[0] = 0.52*x[0] - 0.48*x[1]
		g[1] = 0.52*x[1] - 0.48*x[0]
		return fval(x)
	}
	return newFunction("Matyas", 2, fval, grad, []float64{0, 0})
}

// Zakharov returns sum x_i^2 + s^2 + s^4 with s = sum 0.5*i*x_i (i from 1),
// minimized at the origin.
func Zakharov(n int) Function {
	weighted := func(x []float64) float64 {
		var s float64
		for i, xi := range x {
			s += 0.5 * float64(i+1) * xi
		}
		return s
	}
	fval := func(x []float64) float64 {
		s := weighted(x)
		var f float64
		for _, xi := range x {
			f += xi * xi
		}
		return f + s*s + s*s*s*s
	}
	grad := func(x, g []float64) float64 {
		s := weighted(x)
		ds := 2*s + 4*s*s*s
		for i, xi := range x {
			g[i] = 2*xi + ds*0.5*float64(i+1)
		}
		return fval(x)
	}
	return newFunction(scalable("Zakharov", n), n, fval, grad, make([]float64, n))
}

// Trid returns sum (x_i - 1)^2 - sum x_i*x_{i-1}, minimized at
// x_i = i*(n + 1 - i) (i from 1).
func Trid(n int) Function {
	fval := func(x []float64) float64 {
		var f float64
		for i, xi := range x {
			f += (xi - 1) * (xi - 1)
			if i > 0 {
				f -= xi * x[i-1]
			}
		}
		return f
	}
	grad := func(x, g []float64) float64 {
		for i, xi := range x {
			g[i] = 2 * (xi - 1)
			if i > 0 {
				g[i] -= x[i-1]
			}
			if i+1 < n {
				g[i] -= x[i+1]
			}
		}
		return fval(x)
	}

	xmin := make([]float64, n)
	for i := range xmin {
		xmin[i] = float64((i + 1) * (n - i))
	}
	return newFunction(scalable("Trid", n), n, fval, grad, xmin)
}

// DixonPrice returns (x_1 - 1)^2 + sum_{i>=2} i*(2x_i^2 - x_{i-1})^2.
// Its global minima are x_i = 2^-((2^i - 2)/2^i), with a free sign on x_n.
func DixonPrice(n int) Function {
	fval := func(x []float64) float64 {
		f := (x[0] - 1) * (x[0] - 1)
		for i := 1; i < n; i++ {
			r := 2*x[i]*x[i] - x[i-1]
			f += float64(i+1) * r * r
		}
		return f
	}
	grad := func(x, g []float64) float64 {
		g[0] = 2 * (x[0] - 1)
		for i := 1; i < n; i++ {
			g[i] = 0
		}
		for i := 1; i < n; i++ {
			r := 2*x[i]*x[i] - x[i-1]
			w := 2 * float64(i+1) * r
			g[i] += w * 4 * x[i]
			g[i-1] -= w
		}
		return fval(x)
	}

	magnitude := make([]float64, n)
	for i := range magnitude {
		p := math.Pow(2, float64(i+1))
		magnitude[i] = math.Pow(2, -(p-2)/p)
	}
	// 2*x_{i+1}^2 = x_i keeps x_1..x_{n-1} positive, only the last sign is free.
	minima := [][]float64{magnitude}
	if n > 1 {
		mirrored := append([]float64(nil), magnitude...)
		mirrored[n-1] = -mirrored[n-1]
		minima = append(minima, mirrored)
	}
	return newFunction(scalable("DixonPrice", n), n, fval, grad, minima...)
}
