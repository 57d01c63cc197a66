package handler

import (
	"net/http"

	"kitchen-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type updateRequirementReq struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// UpdateRequirement 修改配方中某原料的用量
func (h *InventoryHandler) UpdateRequirement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateRequirementReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	r, err := h.Ledger.UpdateRequirement(c.Request.Context(), id, req.Quantity)
	if err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{
		"requirement": r,
		"description": r.String(),
	})
}

func (h *InventoryHandler) DeleteRequirement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Ledger.DeleteRequirement(c.Request.Context(), id); err != nil {
		respondLedgerErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "删除成功"})
}
