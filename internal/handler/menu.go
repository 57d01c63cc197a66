package handler

import (
	"net/http"

	"kitchen-ledger/internal/inventory"
	"kitchen-ledger/internal/models"
	"kitchen-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createMenuItemReq struct {
	Name  string          `json:"name" binding:"required,max=100"`
	Price decimal.Decimal `json:"price"`
}

type updateMenuItemReq struct {
	Name  *string          `json:"name" binding:"omitempty,max=100"`
	Price *decimal.Decimal `json:"price"`
}

type addRequirementReq struct {
	IngredientID uint            `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ListMenu 菜单列表，每一项带上当前是否可售
func (h *InventoryHandler) ListMenu(c *gin.Context) {
	list, err := h.Ledger.ListMenuItems(c.Request.Context())
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{
		"items": list,
		"total": len(list),
	})
}

func (h *InventoryHandler) CreateMenuItem(c *gin.Context) {
	var req createMenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	item, err := h.Ledger.CreateMenuItem(c.Request.Context(), models.MenuItem{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{"menu_item": item})
}

// GetMenuItem 菜品详情：包括配方和可售状态
func (h *InventoryHandler) GetMenuItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	item, err := h.Ledger.GetMenuItem(ctx, id)
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	lines, err := h.Ledger.Shortages(ctx, id)
	if err != nil {
		respondLedgerErr(c, err)
		return
	}

	util.Success(c, util.Response{
		"menu_item":    item,
		"available":    inventory.Covered(lines),
		"requirements": lines,
	})
}

func (h *InventoryHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateMenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	item, err := h.Ledger.UpdateMenuItem(c.Request.Context(), id, inventory.MenuItemPatch{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{"menu_item": item})
}

// DeleteMenuItem 删除菜品，同时删除其配方和销售记录
func (h *InventoryHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Ledger.DeleteMenuItem(c.Request.Context(), id); err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "删除成功"})
}

// Availability 查询菜品是否可售，并列出每种原料是否充足
func (h *InventoryHandler) Availability(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	// 布尔值和明细来自同一次读取
	lines, err := h.Ledger.Shortages(c.Request.Context(), id)
	if err != nil {
		respondLedgerErr(c, err)
		return
	}

	util.Success(c, util.Response{
		"menu_item_id": id,
		"available":    inventory.Covered(lines),
		"requirements": lines,
	})
}

// ---------- 配方 ----------

func (h *InventoryHandler) ListRequirements(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	reqs, err := h.Ledger.RequirementsFor(c.Request.Context(), id)
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{
		"items": reqs,
		"total": len(reqs),
	})
}

func (h *InventoryHandler) AddRequirement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req addRequirementReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	r, err := h.Ledger.AddRequirement(c.Request.Context(), id, req.IngredientID, req.Quantity)
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{
		"requirement": r,
		"description": r.String(),
	})
}

// Sell 售出一份：扣减原料并记录销售
func (h *InventoryHandler) Sell(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	sale, err := h.Ledger.Sell(c.Request.Context(), id)
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{
		"purchase": sale.Purchase,
		"consumed": sale.Consumed,
	})
}
