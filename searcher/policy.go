package searcher

import "math"

// Exploration constant under the square root of UCB1
const CSquared = 2.0

type uct struct {
	numerator float64
	bias      float64
}

// newUCT prepares the UCB1 score of the children of a node visited N times.
func newUCT(bias float64, N int) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: CSquared * math.Log(float64(N)), bias: bias}
}

func (u uct) evaluate(score float64, n int) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCB1 = score/n + bias*sqrt(2*ln(N)/n)
	return score/float64(n) + u.bias*math.Sqrt(u.numerator/float64(n))
}
