package forecast

import "math"

const backtestWindow = 7

// Accuracy - ретроспективная точность прогноза (100 - MAPE) в процентах.
// Для каждого индекса из последних 7 строится прогноз по предшествующей истории
// и сравнивается первый шаг с фактом. Возвращает nil, если сравнивать не с чем.
func Accuracy(values []float64) *float64 {
	n := len(values)
	if n < 3 {
		return nil
	}

	start := n - backtestWindow
	if start < 1 {
		start = 1
	}

	var sum float64
	var count int
	for i := start; i < n; i++ {
		actual := values[i]
		if actual <= 0 {
			continue
		}
		predicted := Next7(values[:i])[0]
		sum += math.Abs(actual-predicted) / actual
		count++
	}

	if count == 0 {
		return nil
	}

	mape := sum / float64(count) * 100
	accuracy := round1(clamp(100-mape, 0, 100))
	return &accuracy
}

// ChangePercent - изменение последней цены относительно предыдущей, в процентах
func ChangePercent(values []float64) *float64 {
	n := len(values)
	if n < 2 {
		return nil
	}
	previous := values[n-2]
	if previous <= 0 {
		return nil
	}
	change := round1((values[n-1] - previous) / previous * 100)
	return &change
}

// Direction - знак последнего изменения цены
func Direction(values []float64) string {
	n := len(values)
	if n < 2 {
		return TrendFlat
	}
	return sign(values[n-1] - values[n-2])
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
