package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/phrazzld/bpcalc/internal/domain"
)

// parseFormInt reads a whole-number form field.
//
// Returns:
//   - (value, raw, nil) when the field holds a base-10 integer
//   - (0, raw, *domain.ValidationError) wrapping domain.ErrInvalidFormat otherwise
//
// raw is the trimmed submitted text so the form can echo it back.
func parseFormInt(r *http.Request, field string) (int, string, error) {
	raw := strings.TrimSpace(r.PostFormValue(field))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, raw, domain.NewValidationError(field, "must be a whole number", domain.ErrInvalidFormat)
	}
	return value, raw, nil
}
