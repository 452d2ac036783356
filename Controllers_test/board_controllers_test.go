package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/stall-pos/controllers"
	"github.com/yeremiapane/stall-pos/models"
	"github.com/yeremiapane/stall-pos/services"
	"github.com/yeremiapane/stall-pos/utils"
)

func setupTestDBForBoard() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.MenuItem{}, &models.Order{}, &models.DBChange{})
	if err != nil {
		panic(err)
	}
	// The shared cache keeps rows across tests in this package, so
	// start each test from a clean slate.
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM menu_items")
	db.Create(&models.MenuItem{Kind: models.KindApple, Name: "Candy Apple", Price: 300})
	db.Create(&models.MenuItem{Kind: models.KindBanana, Name: "Chocolate Banana", Price: 200})
	return db
}

func setupBoardRouter(board *services.BoardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	boardCtrl := controllers.NewBoardController(board)
	router.GET("/board", boardCtrl.GetBoard)
	router.POST("/board/stage", boardCtrl.StageOrder)
	router.POST("/board/clear", boardCtrl.ClearStaged)
	router.POST("/board/confirm", boardCtrl.ConfirmOrders)
	return router
}

func stageRequest(t *testing.T, router *gin.Engine, kind string) *httptest.ResponseRecorder {
	payload := map[string]string{"item_kind": kind}
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/board/stage", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBoardStageConfirmFlow(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBoard()
	board := services.NewBoardService(db)
	assert.NoError(t, board.Refresh())
	router := setupBoardRouter(board)

	// Stage one apple
	w := stageRequest(t, router, "apple")
	assert.Equal(t, http.StatusCreated, w.Code)

	var stageResp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &stageResp)
	assert.NoError(t, err)

	data, ok := stageResp["data"].(map[string]interface{})
	assert.True(t, ok, "data response harus berupa map")
	staged, ok := data["staged"].(map[string]interface{})
	assert.True(t, ok, "data.staged harus berupa map")
	assert.Equal(t, "apple", staged["item_kind"])
	assert.Equal(t, float64(1), staged["ticket_number"])
	assert.Equal(t, float64(300), staged["price"])
	assert.NotEmpty(t, staged["ref"])

	boardData, ok := data["board"].(map[string]interface{})
	assert.True(t, ok, "data.board harus berupa map")
	freeTickets := boardData["free_tickets"].(map[string]interface{})
	appleFree := freeTickets["apple"].([]interface{})
	assert.Len(t, appleFree, 9)
	assert.Equal(t, float64(2), appleFree[0])

	// Confirm the staged batch
	req, err := http.NewRequest("POST", "/board/confirm", nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var confirmResp map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &confirmResp)
	assert.NoError(t, err)
	assert.Equal(t, "Orders confirmed", confirmResp["message"])

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// The refetched board holds the durable order, nothing staged
	req, err = http.NewRequest("GET", "/board", nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var boardResp map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &boardResp)
	assert.NoError(t, err)
	snap, ok := boardResp["data"].(map[string]interface{})
	assert.True(t, ok)
	assert.Len(t, snap["orders"], 1)
	assert.Len(t, snap["staged"], 0)
}

func TestBoardConfirmEmpty(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBoard()
	board := services.NewBoardService(db)
	assert.NoError(t, board.Refresh())
	router := setupBoardRouter(board)

	req, err := http.NewRequest("POST", "/board/confirm", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "No staged orders to confirm", resp["message"])

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestBoardSoldOutConflict(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBoard()
	board := services.NewBoardService(db)
	assert.NoError(t, board.Refresh())
	router := setupBoardRouter(board)

	// Take every banana ticket
	for i := 0; i < 10; i++ {
		w := stageRequest(t, router, "banana")
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	// The eleventh attempt is the one error a user must see
	w := stageRequest(t, router, "banana")
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Contains(t, resp["message"], "sold out")

	// Nothing was staged by the failed attempt
	req, err := http.NewRequest("GET", "/board", nil)
	assert.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var boardResp map[string]interface{}
	err = json.Unmarshal(rec.Body.Bytes(), &boardResp)
	assert.NoError(t, err)
	snap := boardResp["data"].(map[string]interface{})
	assert.Len(t, snap["staged"], 10)
	freeTickets := snap["free_tickets"].(map[string]interface{})
	assert.Len(t, freeTickets["banana"], 0)
}

func TestBoardStageValidation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBoard()
	board := services.NewBoardService(db)
	assert.NoError(t, board.Refresh())
	router := setupBoardRouter(board)

	// Missing item_kind
	req, err := http.NewRequest("POST", "/board/stage", bytes.NewBufferString(`{}`))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown item kind
	w = stageRequest(t, router, "cherry")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoardClearStaged(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBoard()
	board := services.NewBoardService(db)
	assert.NoError(t, board.Refresh())
	router := setupBoardRouter(board)

	w := stageRequest(t, router, "apple")
	assert.Equal(t, http.StatusCreated, w.Code)
	w = stageRequest(t, router, "apple")
	assert.Equal(t, http.StatusCreated, w.Code)

	req, err := http.NewRequest("POST", "/board/clear", nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "Cleared 2 staged orders", resp["message"])

	snap := resp["data"].(map[string]interface{})
	assert.Len(t, snap["staged"], 0)
	freeTickets := snap["free_tickets"].(map[string]interface{})
	assert.Len(t, freeTickets["apple"], 10)

	// Clearing never writes to the store
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
