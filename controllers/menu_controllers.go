package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/stall-pos/models"
	"github.com/yeremiapane/stall-pos/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenuItems -> the fixed two-item menu with display prices.
// The menu has no write endpoints; rows are seeded at migration.
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Order("id asc").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type menuItemView struct {
		Kind         string  `json:"kind"`
		Name         string  `json:"name"`
		Price        float64 `json:"price"`
		DisplayPrice string  `json:"display_price"`
	}

	views := make([]menuItemView, 0, len(items))
	for _, item := range items {
		views = append(views, menuItemView{
			Kind:         item.Kind,
			Name:         item.Name,
			Price:        item.Price,
			DisplayPrice: utils.FormatPriceJPY(item.Price),
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Stall menu", views)
}
