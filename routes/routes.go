package routes

import (
	"github.com/Emicy963/ecommerce-backend/events"
	"github.com/Emicy963/ecommerce-backend/payments"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up every route group
// under /api/v1.
func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, sim *payments.Simulator, pub events.Publisher) {
	api := r.Group("/api/v1")

	SetupAuthRoutes(api, db)
	SetupProductRoutes(api, db, rdb)
	SetupCartRoutes(api, db)
	SetupOrderRoutes(api, db, sim, pub)
	SetupReviewRoutes(api, db)
	SetupWishlistRoutes(api, db)
	SetupAdminRoutes(api, db)
}
