package helpers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParseUintList parses a comma-separated list of numeric identifiers, e.g.
// "1,2,3". Any non-numeric element fails the whole list.
func ParseUintList(s string) ([]uint, error) {
	parts := strings.Split(s, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// GetPagination reads page/limit query parameters, clamping limit to maxLimit.
func GetPagination(c *gin.Context, defaultLimit, maxLimit int) Pagination {
	page, err := StringToInt(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := StringToInt(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
