package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/stall-pos/services"
	"github.com/yeremiapane/stall-pos/tickets"
	"github.com/yeremiapane/stall-pos/utils"
)

type BoardController struct {
	Board *services.BoardService
}

func NewBoardController(board *services.BoardService) *BoardController {
	return &BoardController{Board: board}
}

// GetBoard -> current snapshot: open orders, staged orders, free tickets
func (bc *BoardController) GetBoard(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Board snapshot", bc.Board.Snapshot())
}

// StageOrder -> add a pending order for one item kind (not yet durable).
// Sold-out kinds answer 409; that is the one store-side condition the
// user sees directly.
func (bc *BoardController) StageOrder(c *gin.Context) {
	type ReqBody struct {
		ItemKind string `json:"item_kind" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	staged, err := bc.Board.Stage(body.ItemKind)
	if err != nil {
		if errors.Is(err, tickets.ErrExhausted) {
			utils.RespondError(c, http.StatusConflict,
				fmt.Errorf("%s is sold out: all %d tickets are on open orders", body.ItemKind, tickets.MaxTickets))
			return
		}
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order staged", gin.H{
		"staged": staged,
		"board":  bc.Board.Snapshot(),
	})
}

// ClearStaged -> drop all staged orders, tickets go back to the pool
func (bc *BoardController) ClearStaged(c *gin.Context) {
	dropped := bc.Board.ClearStaged()
	utils.RespondJSON(c, http.StatusOK,
		fmt.Sprintf("Cleared %d staged orders", dropped), bc.Board.Snapshot())
}

// ConfirmOrders -> write staged orders to the store, then refetch.
// Store failures are logged by the service and never surfaced here;
// the refetched snapshot shows whatever the store really holds.
func (bc *BoardController) ConfirmOrders(c *gin.Context) {
	sent, _ := bc.Board.Confirm()

	message := "Orders confirmed"
	if sent == 0 {
		message = "No staged orders to confirm"
	}
	utils.RespondJSON(c, http.StatusOK, message, bc.Board.Snapshot())
}
