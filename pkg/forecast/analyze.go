package forecast

// Result - все производные показатели ряда, которые попадают в запись каталога
type Result struct {
	Trend         string
	Forecast7     []float64
	Accuracy      *float64
	ChangePercent *float64
	Direction     string
	IsOnSale      bool
}

func Analyze(values []float64) Result {
	direction := Direction(values)
	return Result{
		Trend:         TrendLabel(values),
		Forecast7:     Next7(values),
		Accuracy:      Accuracy(values),
		ChangePercent: ChangePercent(values),
		Direction:     direction,
		IsOnSale:      direction == TrendDown,
	}
}
