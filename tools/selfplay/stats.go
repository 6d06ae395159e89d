package main

import "math"

// EloDiff estimates the Elo rating difference implied by a win/draw/loss
// record and its 95% confidence interval, kept verbatim from
// blunext-chess/tools/tournament/stats.go: the formula is about a
// two-player match score, not about chess specifically.
func EloDiff(wins, draws, losses int) (eloDiff, eloError float64) {
	total := float64(wins + draws + losses)
	if total == 0 {
		return 0, 0
	}

	score := (float64(wins) + 0.5*float64(draws)) / total

	if score <= 0 || score >= 1 {
		if score >= 1 {
			return 800, 0
		}
		return -800, 0
	}
	eloDiff = -400 * math.Log10(1/score-1)

	variance := score * (1 - score) / total
	stdErr := math.Sqrt(variance)

	if score > 0.01 && score < 0.99 {
		dElo := 400 / (math.Ln10 * score * (1 - score))
		eloError = 1.96 * stdErr * dElo
	} else {
		eloError = 200
	}

	return eloDiff, eloError
}

// LOS is the likelihood of superiority: the probability that engine1 is
// actually stronger, given the observed wins/losses.
func LOS(wins, draws, losses int) float64 {
	if wins+losses == 0 {
		return 0.5
	}

	n := float64(wins + losses)
	p := float64(wins) / n

	z := (p - 0.5) * math.Sqrt(n) / 0.5
	return 0.5 * (1 + erf(z/math.Sqrt2))
}

// SPRT runs a sequential probability ratio test against the elo0/elo1
// hypothesis bounds (e.g. -5, 0 for a "not weaker" test) and reports the
// log-likelihood ratio plus a conclusion once a bound is crossed.
func SPRT(wins, draws, losses int, elo0, elo1 float64) (llr float64, conclusion string) {
	total := float64(wins + draws + losses)
	if total < 10 {
		return 0, ""
	}

	w := float64(wins) / total
	d := float64(draws) / total
	l := float64(losses) / total

	p0 := 1 / (1 + math.Pow(10, -elo0/400))
	p1 := 1 / (1 + math.Pow(10, -elo1/400))

	w0 := p0 - d/2
	l0 := 1 - p0 - d/2
	w1 := p1 - d/2
	l1 := 1 - p1 - d/2

	if w0 <= 0 || w1 <= 0 || l0 <= 0 || l1 <= 0 {
		return 0, ""
	}

	llr = total * (w*math.Log(w1/w0) + l*math.Log(l1/l0))

	alpha, beta := 0.05, 0.05
	lowerBound := math.Log(beta / (1 - alpha))
	upperBound := math.Log((1 - beta) / alpha)

	if llr >= upperBound {
		return llr, "H0 rejected - engine1 is not weaker"
	}
	if llr <= lowerBound {
		return llr, "H1 rejected - engine1 may be weaker"
	}
	return llr, ""
}

// erf is the Gauss error function (Abramowitz & Stegun approximation).
func erf(x float64) float64 {
	a1, a2, a3 := 0.254829592, -0.284496736, 1.421413741
	a4, a5 := -1.453152027, 1.061405429
	p := 0.3275911

	sign := 1.0
	if x < 0 {
		sign = -1
		x = -x
	}

	t := 1.0 / (1.0 + p*x)
	y := 1.0 - (((((a5*t+a4)*t)+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)

	return sign * y
}
