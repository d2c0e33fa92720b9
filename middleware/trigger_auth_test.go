package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"main/utils"

	"github.com/gin-gonic/gin"
)

func triggerTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(TriggerAuthMiddleware(secret))
	router.POST("/trigger", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func doTrigger(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/trigger", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTriggerAuthMiddleware(t *testing.T) {
	router := triggerTestRouter("s3cret")

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"NoHeader", "", http.StatusUnauthorized},
		{"NotBearer", "Basic s3cret", http.StatusUnauthorized},
		{"WrongSecret", "Bearer nope", http.StatusUnauthorized},
		{"CorrectSecret", "Bearer s3cret", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := doTrigger(router, tc.header); w.Code != tc.want {
				t.Fatalf("got %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestTriggerAuthMiddlewareUnconfigured(t *testing.T) {
	router := triggerTestRouter("")
	w := doTrigger(router, "Bearer anything")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("an unconfigured secret must reject all callers, got %d", w.Code)
	}

	var resp utils.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error == "" {
		t.Fatalf("rejection must use the error envelope, got %+v", resp)
	}
}
