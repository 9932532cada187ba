package textutil

import "strings"

// SplitLines разбивает текст по строкам, убирая пробелы и пустые строки.
// Используется для features услуг и инструментов.
func SplitLines(raw string) []string {
	return splitAndFilter(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
}

// SplitComma разбивает текст по запятым. Используется для технологий и тегов.
func SplitComma(raw string) []string {
	return splitAndFilter(raw, ",")
}

func splitAndFilter(raw, sep string) []string {
	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EstimateReadingTime оценивает время чтения в минутах при 200 словах в минуту.
func EstimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		return 1
	}
	return minutes
}
