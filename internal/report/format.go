package report

import (
	"fmt"
	"math"
	"strconv"
)

var byteUnits = []string{"Bytes", "KB", "MB"}

// FormatBytes renders a byte count with the largest unit whose scaled
// magnitude is at least 1, rounded to two decimals with redundant zeros
// stripped ("1 KB", "1.5 KB", "1.52 KB").
func FormatBytes(n int) string {
	if n == 0 {
		return "0 Bytes"
	}

	unit := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if unit >= len(byteUnits) {
		unit = len(byteUnits) - 1
	}
	if unit < 1 {
		return fmt.Sprintf("%d Bytes", n)
	}

	scaled := float64(n) / math.Pow(1024, float64(unit))
	rounded := math.Round(scaled*100) / 100

	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[unit]
}

func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	result := ""

	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(char)
	}

	return result
}
