package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"volei-app/internal/model"
)

const maxSets = 5

var errInvalidSetCount = errors.New("placar de sets inválido")

// parseSets reads the set_N_a / set_N_b form pairs. Pairs with a blank or
// non-numeric side are skipped. It returns nil when no pair was submitted.
func parseSets(r *http.Request, limit int) []model.SetScore {
	var sets []model.SetScore
	if limit < 1 {
		limit = maxSets
	}
	for i := 1; i <= limit; i++ {
		aStr := strings.TrimSpace(r.FormValue(fmt.Sprintf("set_%d_a", i)))
		bStr := strings.TrimSpace(r.FormValue(fmt.Sprintf("set_%d_b", i)))
		if aStr == "" || bStr == "" {
			continue
		}
		a, errA := strconv.Atoi(aStr)
		b, errB := strconv.Atoi(bStr)
		if errA != nil || errB != nil {
			continue
		}
		sets = append(sets, model.SetScore{A: a, B: b})
	}
	return sets
}

func parseSetCount(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 || parsed > maxSets {
		return 0, errInvalidSetCount
	}
	return parsed, nil
}
