package handler

import (
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"aura/backend/internal/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var bindingOnce sync.Once

// setupBinding teaches gin's validator the custom tags and makes it report
// JSON field names.
func setupBinding() {
	bindingOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = auth.RegisterValidations(v)
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// NewRouter builds the gin engine with middleware and every API route.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	setupBinding()
	h.upgrader = newUpgrader(allowedOrigins)

	origins := allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(h.Log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public
	public := r.Group("/api")
	{
		public.POST("/register", h.Register)
		public.POST("/login", h.Login)
		public.GET("/properties", h.ListProperties)
		public.GET("/properties/:id", h.GetProperty)
	}

	// Any logged-in user
	private := r.Group("/api")
	private.Use(h.RequireSession())
	{
		private.POST("/logout", h.Logout)
		private.GET("/me", h.Me)
		private.POST("/complaints", h.SubmitComplaint)
		private.GET("/complaints/mine", h.MyComplaints)
		private.POST("/reservations", h.Reserve)
		private.GET("/reservations/mine", h.MyReservations)
		private.POST("/analyze", h.Analyze)
	}

	admin := r.Group("/api/admin")
	admin.Use(h.RequireSession(), h.RequireAdmin())
	{
		admin.GET("/complaints", h.ListComplaints)
		admin.GET("/complaints/stats", h.ComplaintStats)
		admin.GET("/complaints/:id", h.GetComplaint)
		admin.PATCH("/complaints/:id", h.UpdateComplaint)
		admin.DELETE("/complaints/:id", h.DeleteComplaint)
		admin.PUT("/complaints/:id/status", h.SetComplaintStatus)

		admin.GET("/reservations", h.ListReservations)
		admin.GET("/reservations/stats", h.ReservationStats)
		admin.PUT("/reservations/:id/status", h.SetReservationStatus)
		admin.POST("/reservations/:id/reset", h.ResetReservation)

		admin.GET("/feed", h.ServeFeed)
	}

	return r
}
