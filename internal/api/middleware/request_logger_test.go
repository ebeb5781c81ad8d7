package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/stockroomhq/stockroom/backend/internal/api/middleware"
	"github.com/stockroomhq/stockroom/backend/internal/logger"
)

func TestRequestLogger_IncludesResolvedEmployee(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(false, &buf)
	defer logger.Init(false, os.Stdout)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.EmployeeAuth(""))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set(middleware.EmployeeIDHeader, "emp-7")
	router.ServeHTTP(w, req)

	out := buf.String()
	assert.Contains(t, out, `"employee":"emp-7"`)
	assert.Contains(t, out, `"status":200`)
}

func TestRequestLogger_OmitsEmployeeWhenAnonymous(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(false, &buf)
	defer logger.Init(false, os.Stdout)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.EmployeeAuth(""))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.NotContains(t, buf.String(), `"employee"`)
}
