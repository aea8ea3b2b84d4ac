package subtitles

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatTimestamp converts a non-negative offset in seconds to the SRT
// timestamp form HH:MM:SS,mmm. Hours grow beyond two digits when needed.
// Milliseconds that round up to 1000 carry into the seconds field, so every
// emitted field stays in range.
func FormatTimestamp(seconds float64) (string, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "", fmt.Errorf("timestamp: non-finite value %v", seconds)
	}
	if seconds < 0 {
		return "", fmt.Errorf("timestamp: negative value %v", seconds)
	}

	hours := int(math.Floor(seconds / 3600))
	remainder := seconds - float64(hours)*3600
	minutes := int(math.Floor(remainder / 60))
	remainder -= float64(minutes) * 60
	whole := int(math.Floor(remainder))
	millis := int(math.Round((remainder - float64(whole)) * 1000))

	if millis == 1000 {
		millis = 0
		whole++
		if whole == 60 {
			whole = 0
			minutes++
		}
		if minutes == 60 {
			minutes = 0
			hours++
		}
	}

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, whole, millis), nil
}

// ParseTimestamp converts an SRT timestamp back to seconds. A period is
// accepted in place of the standard comma.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
