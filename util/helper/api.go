package helper_util

import (
	"strconv"

	"github.com/gin-gonic/gin"

	bo_errors "github.com/buildledger/backoffice/errors"
)

const maxPageSize = 100

func GetPaginationParams(c *gin.Context) (limit int, offset int, err error) {
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > maxPageSize {
		return 0, 0, bo_errors.ErrInvalidPagination
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, bo_errors.ErrInvalidPagination
	}
	return limit, offset, nil
}
