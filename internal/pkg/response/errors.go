package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cabinrental/internal/pkg/daterange"
)

// InvalidDateRange writes a 400 when err came from daterange validation and
// reports whether it did.
func InvalidDateRange(c *gin.Context, err error) bool {
	var rangeErr *daterange.Error
	if !errors.As(err, &rangeErr) {
		return false
	}

	code, message := "INVALID_FORMAT", "Dates must use the YYYY-MM-DD format"
	if errors.Is(err, daterange.ErrInvalidRange) {
		code, message = "INVALID_RANGE", "The end date must be after the start date (minimum one night)"
	}
	ErrorWithDetails(c, http.StatusBadRequest, code, message, gin.H{
		"field": rangeErr.Field,
		"value": rangeErr.Value,
	})
	return true
}

// ParamID parses a positive integer path parameter, writing a 400 otherwise.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

func Internal(c *gin.Context, err error) {
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
