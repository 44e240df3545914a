package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/presentation/http/dto/response"
	"github.com/sangkips/shopbill-api/pkg/apperror"
	"github.com/sangkips/shopbill-api/pkg/pagination"
	"github.com/sangkips/shopbill-api/pkg/utils"
)

const dateOnly = "2006-01-02"

// pathID parses a uuid path parameter. It answers the request with a bad
// request and returns false when the value is not a uuid.
func pathID(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param(name))
	if err != nil {
		response.Error(c, apperror.NewBadRequestError("Invalid "+resource+" ID"))
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads page and per_page from the query string
func pageParams(c *gin.Context) *pagination.PaginationParams {
	return pagination.FromQuery(c.Query("page"), c.Query("per_page"))
}

// dayRange turns optional YYYY-MM-DD bounds into [from, to) where to is the
// midnight after the end day
func dayRange(start, end string) (*time.Time, *time.Time) {
	var from, to *time.Time
	if t, err := time.Parse(dateOnly, start); err == nil {
		from = &t
	}
	if t, err := time.Parse(dateOnly, end); err == nil {
		t = t.AddDate(0, 0, 1)
		to = &t
	}
	return from, to
}
