package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bankport/internal/common"
)

// ParseAmount converts raw user input into a positive amount. Anything that
// does not parse as a finite number strictly greater than zero fails with
// common.ErrInvalidAmount before any network call is made.
func ParseAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, common.ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, common.ErrInvalidAmount
	}
	return v, nil
}
