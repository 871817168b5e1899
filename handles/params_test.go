package handles

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestParseTagIDs(t *testing.T) {
	// 非法片段静默跳过，不报错
	c := testContext(t, "/api/videos?tag_ids=1,2,abc,,0,3")
	assert.Equal(t, []uint{1, 2, 3}, parseTagIDs(c))

	c = testContext(t, "/api/videos")
	assert.Nil(t, parseTagIDs(c))

	c = testContext(t, "/api/videos?tag_ids=,,")
	assert.Nil(t, parseTagIDs(c))
}

func TestParsePositiveInt(t *testing.T) {
	c := testContext(t, "/api/videos?page=3")
	assert.Equal(t, 3, parsePositiveInt(c, "page", 1))

	// 非法值和越界值都回退到默认值
	c = testContext(t, "/api/videos?page=abc")
	assert.Equal(t, 1, parsePositiveInt(c, "page", 1))

	c = testContext(t, "/api/videos?page=-2")
	assert.Equal(t, 1, parsePositiveInt(c, "page", 1))

	c = testContext(t, "/api/videos")
	assert.Equal(t, 20, parsePositiveInt(c, "limit", 20))
}
