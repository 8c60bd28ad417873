package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salonpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLoggerMiddlewareLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		handle gin.HandlerFunc
		level  logrus.Level
		status int
		reason string
	}{
		{
			name:   "success",
			handle: func(c *gin.Context) { response.OK(c, "ok", nil) },
			level:  logrus.InfoLevel,
			status: http.StatusOK,
		},
		{
			name: "business rule",
			handle: func(c *gin.Context) {
				response.Error(c, apperror.NewBusinessRuleError(apperror.ReasonRegisterNotOpen, "No register is open for this outlet"))
			},
			level:  logrus.WarnLevel,
			status: http.StatusUnprocessableEntity,
			reason: string(apperror.ReasonRegisterNotOpen),
		},
		{
			name:   "storage failure",
			handle: func(c *gin.Context) { response.Error(c, apperror.Storage(http.ErrHandlerTimeout)) },
			level:  logrus.ErrorLevel,
			status: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			router := gin.New()
			router.Use(LoggerMiddleware(log))
			router.GET("/", tt.handle)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Request-ID", "req-1")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			entry := hook.LastEntry()
			if entry == nil {
				t.Fatal("no log entry")
			}
			if entry.Level != tt.level {
				t.Errorf("level = %v, want %v", entry.Level, tt.level)
			}
			if entry.Data["status"] != tt.status || entry.Data["request_id"] != "req-1" {
				t.Errorf("fields = %+v", entry.Data)
			}
			reason, _ := entry.Data["reason"].(string)
			if reason != tt.reason {
				t.Errorf("reason = %q, want %q", reason, tt.reason)
			}
		})
	}
}
