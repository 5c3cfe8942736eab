package etl

import (
	"regexp"
	"strings"
	"time"
)

// Hint - данные, которые подсказывает путь к файлу:
// raw/laptop/<Month Year>/<marketplace>/<brand>/<file>.csv
type Hint struct {
	Brand       string
	Marketplace string
	Date        string // yyyymmdd
}

var monthNumbers = map[string]string{
	"january":   "01",
	"february":  "02",
	"march":     "03",
	"april":     "04",
	"may":       "05",
	"june":      "06",
	"july":      "07",
	"august":    "08",
	"september": "09",
	"october":   "10",
	"november":  "11",
	"december":  "12",
}

var (
	monthYearRe  = regexp.MustCompile(`([A-Za-z]+)\s+(\d{4})`)
	fileDMYRe    = regexp.MustCompile(`(\d{1,2})_(\d{1,2})_(\d{4})`)
	fileISORe    = regexp.MustCompile(`(\d{4})[-_](\d{1,2})[-_](\d{1,2})`)
	isoDateRe    = regexp.MustCompile(`^(\d{4})[-/](\d{2})[-/](\d{2})$`)
	dmyDateRe    = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	monthDayRe   = regexp.MustCompile(`^([A-Za-z]+)\s+(\d{1,2}),\s*(\d{4})$`)
	pathSplitter = regexp.MustCompile(`[\\/]+`)
)

const laptopSegment = "laptop"

// InferHint разбирает путь в файловой системе
func InferHint(path string) Hint {
	segments := splitPath(path)
	idx := laptopIndex(segments)
	if idx < 0 {
		return Hint{}
	}
	return buildHint(segmentAt(segments, idx+1), segmentAt(segments, idx+2), segmentAt(segments, idx+3), segments[len(segments)-1])
}

// InferHintFromKey разбирает ключ объектного хранилища вида <prefix>/raw/laptop/...
func InferHintFromKey(key, prefix string) Hint {
	raw := key
	head := strings.ToLower(prefix + "/raw/")
	if strings.HasPrefix(strings.ToLower(raw), head) {
		raw = raw[len(head):]
	}

	segments := splitPath(raw)
	idx := laptopIndex(segments)
	if idx < 0 {
		return Hint{}
	}

	fileName := segmentAt(segments, idx+4)
	if fileName == "" {
		fileName = segments[len(segments)-1]
	}
	return buildHint(segmentAt(segments, idx+1), segmentAt(segments, idx+2), segmentAt(segments, idx+3), fileName)
}

// IsSourceKey - только *.csv внутри сегмента laptop
func IsSourceKey(key string) bool {
	if !strings.HasSuffix(strings.ToLower(key), ".csv") {
		return false
	}
	return laptopIndex(splitPath(key)) >= 0
}

func splitPath(path string) []string {
	parts := pathSplitter.Split(path, -1)
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

func laptopIndex(segments []string) int {
	for i, s := range segments {
		if strings.EqualFold(s, laptopSegment) {
			return i
		}
	}
	return -1
}

func segmentAt(segments []string, i int) string {
	if i < len(segments) {
		return segments[i]
	}
	return ""
}

func buildHint(monthYear, marketplace, brand, fileName string) Hint {
	hint := Hint{
		Brand:       strings.TrimSpace(brand),
		Marketplace: strings.TrimSpace(marketplace),
	}

	year, month := parseMonthYear(monthYear)

	if fy, fm, fd, ok := parseFileDate(fileName); ok {
		if fm == "" {
			fm = month
		}
		hint.Date = joinDate(fy, fm, fd)
		return hint
	}

	if year != "" && month != "" {
		hint.Date = joinDate(year, month, "01")
	}
	return hint
}

func parseMonthYear(value string) (year, month string) {
	m := monthYearRe.FindStringSubmatch(value)
	if m == nil {
		return "", ""
	}
	return m[2], monthNumbers[strings.ToLower(m[1])]
}

func parseFileDate(fileName string) (year, month, day string, ok bool) {
	name := strings.ToLower(fileName)
	if m := fileDMYRe.FindStringSubmatch(name); m != nil {
		return m[3], m[2], m[1], true
	}
	if m := fileISORe.FindStringSubmatch(name); m != nil {
		return m[1], m[2], m[3], true
	}
	return "", "", "", false
}

// ParseDate понимает YYYY-MM-DD, YYYY/MM/DD, DD-MM-YYYY, DD/MM/YYYY и "January 2, 2024".
// Несуществующие календарные даты отбрасываются.
func ParseDate(value string) (string, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return "", false
	}

	var year, month, day string
	switch {
	case isoDateRe.MatchString(s):
		m := isoDateRe.FindStringSubmatch(s)
		year, month, day = m[1], m[2], m[3]
	case dmyDateRe.MatchString(s):
		m := dmyDateRe.FindStringSubmatch(s)
		year, month, day = m[3], m[2], m[1]
	case monthDayRe.MatchString(s):
		m := monthDayRe.FindStringSubmatch(s)
		month = monthNumbers[strings.ToLower(m[1])]
		if month == "" {
			return "", false
		}
		year, day = m[3], m[2]
	default:
		return "", false
	}

	date := joinDate(year, month, day)
	if _, err := time.Parse("20060102", date); err != nil {
		return "", false
	}
	return date, true
}

func joinDate(year, month, day string) string {
	if month == "" {
		month = "01"
	}
	if day == "" {
		day = "01"
	}
	return year + pad2(month) + pad2(day)
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
