package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/stall-pos/controllers"
	"github.com/yeremiapane/stall-pos/middlewares"
	"github.com/yeremiapane/stall-pos/services"
)

func SetupRouter(db *gorm.DB, board *services.BoardService) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limit per client IP (50 req/s, burst 10).
	rateLimiter := middlewares.NewRateLimiter(50, 10)
	r.Use(rateLimiter.RateLimit())

	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db, board)
	boardCtrl := controllers.NewBoardController(board)

	// ----------------------------------------------------------------
	//                      HEALTH
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      MENU (read only, fixed two items)
	// ----------------------------------------------------------------
	r.GET("/menu", menuCtrl.GetAllMenuItems)

	// ----------------------------------------------------------------
	//                      ORDERS
	// ----------------------------------------------------------------
	r.GET("/orders", orderCtrl.GetAllOrders)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.DELETE("/orders/:order_id", orderCtrl.ServeOrder) // serve = remove

	// ----------------------------------------------------------------
	//                      BOARD (staging + confirmation)
	// ----------------------------------------------------------------
	r.GET("/board", boardCtrl.GetBoard)
	r.POST("/board/stage", boardCtrl.StageOrder)
	r.POST("/board/clear", boardCtrl.ClearStaged)
	r.POST("/board/confirm", boardCtrl.ConfirmOrders)

	// ----------------------------------------------------------------
	//                      LIVE BOARD CHANNEL
	// ----------------------------------------------------------------
	wsGroup := r.Group("/live")
	wsGroup.Use(middlewares.ViewerRoleMiddleware())
	{
		wsGroup.GET("/ws", controllers.LiveHandler)
	}

	return r
}
