package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/flights?"+rawQuery, nil)
	return c
}

func TestParseUintList(t *testing.T) {
	ids, err := ParseUintList("1,2,3")
	assert.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, ids)

	ids, err = ParseUintList("7")
	assert.NoError(t, err)
	assert.Equal(t, []uint{7}, ids)

	_, err = ParseUintList("1,x")
	assert.Error(t, err)

	_, err = ParseUintList("-1")
	assert.Error(t, err)

	_, err = ParseUintList("")
	assert.Error(t, err)
}

func TestGetPaginationDefaults(t *testing.T) {
	p := GetPagination(paginationContext(""), 10, 50)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestGetPaginationClampsToMax(t *testing.T) {
	p := GetPagination(paginationContext("page=3&limit=500"), 10, 50)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, 100, p.Offset)
}

func TestGetPaginationRejectsGarbage(t *testing.T) {
	p := GetPagination(paginationContext("page=abc&limit=-5"), 7, 20)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 7, p.Limit)
}
