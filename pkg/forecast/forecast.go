// Package forecast - краткосрочный прогноз цены по временному ряду.
//
// Уровень считается через EWMA (alpha = 0.3), наклон через МНК по индексу 1..n.
// Прогноз на 7 шагов ограничивается последней фактической ценой в сторону тренда,
// поэтому при падении цены прогноз никогда не выше текущей, а при росте не ниже.
package forecast

import (
	"math"
)

const (
	DefaultAlpha = 0.3
	Horizon      = 7

	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// EWMA - экспоненциальное сглаживание, начальное значение равно первой точке
func EWMA(values []float64, alpha float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := values[0]
	for _, v := range values[1:] {
		s = alpha*v + (1-alpha)*s
	}
	return s
}

// LinearTrend - наклон прямой МНК для точек (i+1, values[i])
func LinearTrend(values []float64) float64 {
	n := float64(len(values))
	if len(values) < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range values {
		x := float64(i + 1)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denominator
}

// Next7 возвращает 7 прогнозных точек. Для пустого ряда - семь нулей.
func Next7(values []float64) []float64 {
	out := make([]float64, Horizon)
	if len(values) == 0 {
		return out
	}

	level := EWMA(values, DefaultAlpha)
	slope := LinearTrend(values)
	last := values[len(values)-1]

	for k := 1; k <= Horizon; k++ {
		raw := level + float64(k)*slope
		switch {
		case slope < 0:
			out[k-1] = math.Min(last, math.Max(0, raw))
		case slope > 0:
			out[k-1] = math.Max(last, raw)
		default:
			out[k-1] = math.Max(0, raw)
		}
	}
	return out
}

// TrendLabel: "up" - цена растёт, "down" - падает.
// Порог относительный: 0.5% от среднего, но не меньше min(500, 5% от среднего).
func TrendLabel(values []float64) string {
	if len(values) < 2 {
		return TrendFlat
	}

	slope := LinearTrend(values)
	mean := Mean(values)

	if math.IsNaN(mean) || math.IsInf(mean, 0) || mean <= 0 {
		return sign(slope)
	}

	abs := math.Abs(mean)
	threshold := math.Max(abs*0.005, math.Min(500, abs*0.05))

	switch {
	case slope > threshold:
		return TrendUp
	case slope < -threshold:
		return TrendDown
	default:
		return TrendFlat
	}
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sign(v float64) string {
	switch {
	case v > 0:
		return TrendUp
	case v < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}
