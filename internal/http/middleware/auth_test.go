package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

func authRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", JWT(), func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func TestJWTMiddleware(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()

	token, err := service.GenerateJWT("64f1c000000000000000abcd")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	r := authRouter()

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, 200},
		{"missing header", "", 401},
		{"no bearer prefix", token, 401},
		{"empty bearer", "Bearer ", 401},
		{"bad token", "Bearer nope", 401},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d; want %d", rec.Code, tc.want)
			}
		})
	}
}
