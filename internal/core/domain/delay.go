package domain

import (
	"strconv"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// ParseDeployDelay parses a DEPLOY_DELAY value of the form <int><h|m>.
// "2h" is 120 minutes and "45m" is 45 minutes. An empty value means no delay.
func ParseDeployDelay(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	amount, unit := value[:len(value)-1], value[len(value)-1]

	var scale time.Duration
	switch unit {
	case 'h':
		scale = time.Hour
	case 'm':
		scale = time.Minute
	default:
		return 0, zerr.With(ErrInvalidDeployDelay, "value", value)
	}

	n, err := strconv.Atoi(amount)
	if err != nil || n < 0 {
		return 0, zerr.With(ErrInvalidDeployDelay, "value", value)
	}

	return time.Duration(n) * scale, nil
}
