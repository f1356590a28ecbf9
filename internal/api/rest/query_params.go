package rest

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// ListHistogramsQuery holds the parsed query parameters of the list
// endpoint. Nil pointer filters were not supplied.
type ListHistogramsQuery struct {
	ItemID  *string
	FileID  *string
	JobID   *string
	Bins    *int
	Label   *bool
	Bitmask *bool
	Sort    string
	Limit   int
	Offset  uint64
}

// ParseListHistogramsQuery parses and validates the list query string.
func ParseListHistogramsQuery(c *gin.Context) (*ListHistogramsQuery, error) {
	q := &ListHistogramsQuery{
		Sort:  "created",
		Limit: defaultListLimit,
	}

	if v := c.Query("itemId"); v != "" {
		q.ItemID = &v
	}
	if v := c.Query("fileId"); v != "" {
		q.FileID = &v
	}
	if v := c.Query("jobId"); v != "" {
		q.JobID = &v
	}
	if v := c.Query("bins"); v != "" {
		bins, err := strconv.Atoi(v)
		if err != nil || bins <= 0 {
			return nil, fmt.Errorf("invalid bins parameter: %q", v)
		}
		q.Bins = &bins
	}
	if v := c.Query("label"); v != "" {
		label, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid label parameter: %q", v)
		}
		q.Label = &label
	}
	if v := c.Query("bitmask"); v != "" {
		bitmask, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid bitmask parameter: %q", v)
		}
		q.Bitmask = &bitmask
	}
	if v := c.Query("sort"); v != "" {
		if v != "created" && v != "updated" {
			return nil, fmt.Errorf("invalid sort parameter: %q", v)
		}
		q.Sort = v
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 || limit > maxListLimit {
			return nil, fmt.Errorf("invalid limit parameter: %q", v)
		}
		q.Limit = limit
	}
	if v := c.Query("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid offset parameter: %q", v)
		}
		q.Offset = offset
	}

	return q, nil
}
