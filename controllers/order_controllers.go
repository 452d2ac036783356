package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/stall-pos/models"
	"github.com/yeremiapane/stall-pos/services"
	"github.com/yeremiapane/stall-pos/utils"
)

type OrderController struct {
	DB    *gorm.DB
	Board *services.BoardService
}

func NewOrderController(db *gorm.DB, board *services.BoardService) *OrderController {
	return &OrderController{DB: db, Board: board}
}

// GetAllOrders -> open orders in creation order
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Order("created_at asc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// ServeOrder -> the order was handed over: delete its row, refetch,
// recompute. The refetch is what puts the ticket number back into the
// pool. Delete failures are logged by the service, not surfaced; the
// snapshot answers with the store's actual state either way.
func (oc *OrderController) ServeOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	_ = oc.Board.Remove(uint(id))
	utils.RespondJSON(c, http.StatusOK, "Order served", oc.Board.Snapshot())
}
