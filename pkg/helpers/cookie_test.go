package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieManager(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewCookie("", "", false)
	assert.Equal(t, DefaultAuthCookie, m.Name)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	m.SetToken(c, "tkn", time.Now().Add(time.Hour))

	res := w.Result()
	require.Len(t, res.Cookies(), 1)
	ck := res.Cookies()[0]
	assert.Equal(t, "token", ck.Name)
	assert.Equal(t, "tkn", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.InDelta(t, 3600, ck.MaxAge, 5)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	m.Clear(c)
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)
}

func TestCookieManager_Token(t *testing.T) {
	m := NewCookie("sid", "", false)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, m.Token(c))

	c.Request.AddCookie(&http.Cookie{Name: "sid", Value: "v"})
	assert.Equal(t, "v", m.Token(c))
}
