package handler

import (
	"net/http"
	"strconv"

	"kitchen-ledger/internal/inventory"
	"kitchen-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

// 时间由数据库写入时生成，请求里不接受 created_at
type createPurchaseReq struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
}

// CreatePurchase 只记录销售，不扣减库存（扣库存请用 /menu/:id/sell）
func (h *InventoryHandler) CreatePurchase(c *gin.Context) {
	var req createPurchaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	p, err := h.Ledger.RecordPurchase(c.Request.Context(), req.MenuItemID)
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{"purchase": p})
}

func (h *InventoryHandler) GetPurchase(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.Ledger.GetPurchase(c.Request.Context(), id)
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{"purchase": p})
}

// ListPurchases 销售记录列表，支持按菜品、时间范围筛选和分页
func (h *InventoryHandler) ListPurchases(c *gin.Context) {
	page, size, offset := pagination(c, h.PageSize)
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	var menuItemID uint
	if s := c.Query("menu_item_id"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "menu_item_id 不合法")
			return
		}
		menuItemID = uint(v)
	}

	list, total, err := h.Ledger.ListPurchases(c.Request.Context(), inventory.PurchaseFilter{
		MenuItemID: menuItemID,
		Start:      start,
		End:        end,
		Limit:      size,
		Offset:     offset,
	})
	if err != nil {
		respondLedgerErr(c, err)
		return
	}

	util.Success(c, util.Response{
		"items": list,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

// SalesReport 销售统计：营业额、原料成本、毛利
func (h *InventoryHandler) SalesReport(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	report, err := h.Ledger.SalesReport(c.Request.Context(), start, end)
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{"report": report})
}
