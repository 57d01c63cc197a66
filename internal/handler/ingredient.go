package handler

import (
	"net/http"

	"kitchen-ledger/internal/inventory"
	"kitchen-ledger/internal/models"
	"kitchen-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InventoryHandler 负责原料、菜单、配方、销售相关接口
type InventoryHandler struct {
	Ledger   *inventory.Ledger
	PageSize int
}

func NewInventoryHandler(ledger *inventory.Ledger, pageSize int) *InventoryHandler {
	return &InventoryHandler{
		Ledger:   ledger,
		PageSize: pageSize,
	}
}

// ---------- 请求结构 ----------

type createIngredientReq struct {
	Name         string          `json:"name" binding:"required,max=100"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" binding:"required,max=20"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

type updateIngredientReq struct {
	Name         *string          `json:"name" binding:"omitempty,max=100"`
	Quantity     *decimal.Decimal `json:"quantity"`
	Unit         *string          `json:"unit" binding:"omitempty,max=20"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
}

type adjustStockReq struct {
	Delta decimal.Decimal `json:"delta"`
}

// ---------- 原料 ----------

func (h *InventoryHandler) ListIngredients(c *gin.Context) {
	list, err := h.Ledger.ListIngredients(c.Request.Context())
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{
		"items": list,
		"total": len(list),
	})
}

func (h *InventoryHandler) CreateIngredient(c *gin.Context) {
	var req createIngredientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	ing, err := h.Ledger.CreateIngredient(c.Request.Context(), models.Ingredient{
		Name:         req.Name,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		PricePerUnit: req.PricePerUnit,
	})
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{"ingredient": ing})
}

func (h *InventoryHandler) GetIngredient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ing, err := h.Ledger.GetIngredient(c.Request.Context(), id)
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{"ingredient": ing})
}

func (h *InventoryHandler) UpdateIngredient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateIngredientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	ing, err := h.Ledger.UpdateIngredient(c.Request.Context(), id, inventory.IngredientPatch{
		Name:         req.Name,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		PricePerUnit: req.PricePerUnit,
	})
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{"ingredient": ing})
}

// AdjustStock 进货/损耗：delta 为正表示入库，为负表示出库
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req adjustStockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	ing, err := h.Ledger.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{"ingredient": ing})
}

func (h *InventoryHandler) DeleteIngredient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Ledger.DeleteIngredient(c.Request.Context(), id); err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "删除成功"})
}
