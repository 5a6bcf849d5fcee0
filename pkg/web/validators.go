package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ParamValidator reports whether a parsed query parameter value is acceptable.
type ParamValidator func(value int64) bool

// ParseValidateGte parses the query parameter and requires it to be >= bound.
func ParseValidateGte(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, bound int64) (int32, bool) {
	return parseValidate(r, w, logger, key, func(v int64) bool { return v >= bound })
}

// ParseValidateGt parses the query parameter and requires it to be > bound.
func ParseValidateGt(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, bound int64) (int32, bool) {
	return parseValidate(r, w, logger, key, func(v int64) bool { return v > bound })
}

func parseValidate(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, pValidator ParamValidator) (int32, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s url parameter is required", key))
		return 0, false
	}
	intValue, err := strconv.ParseInt(value, 10, 32)
	if err != nil || !pValidator(intValue) {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return 0, false
	}
	return int32(intValue), true
}
