package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/registrar-service/internal/api/dto"
	"github.com/campus-kit/registrar-service/internal/domain"
	util "github.com/campus-kit/registrar-service/pkg/util"
)

// fieldPair pairs a wire field name with its submitted value for
// required-field checks.
type fieldPair struct {
	name  string
	value string
}

// requireFields returns a validation error naming every missing field, in
// submission order, or nil when all are present.
func requireFields(pairs ...fieldPair) error {
	missing := make([]string, 0)
	for _, pair := range pairs {
		if strings.TrimSpace(pair.value) == "" {
			missing = append(missing, pair.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return util.NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
}

// requireID rejects identifiers that do not have the 24-hex shape before
// any store access.
func requireID(c *fiber.Ctx) (string, error) {
	id := strings.ToLower(strings.TrimSpace(c.Params("id")))
	if !domain.ValidID(id) {
		return "", util.NewValidationError("Invalid or missing id")
	}
	return id, nil
}

// parseDateRange reads optional from/to query values; to is extended to the
// end of its day so the range is inclusive.
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	from, err := dto.ParseDate("from", c.Query("from"))
	if err != nil {
		return nil, nil, util.NewValidationError(err.Error())
	}
	to, err := dto.ParseDate("to", c.Query("to"))
	if err != nil {
		return nil, nil, util.NewValidationError(err.Error())
	}
	if to != nil {
		end := dto.EndOfDay(*to)
		to = &end
	}
	return from, to, nil
}

// parseLimit reads an optional positive limit, applying a default and cap.
func parseLimit(val string, def, max int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	if max > 0 && parsed > max {
		return max
	}
	return parsed
}

// optionalQuery returns a pointer to the trimmed query value, nil when empty.
func optionalQuery(c *fiber.Ctx, key string) *string {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return nil
	}
	return &val
}
