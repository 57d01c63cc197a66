package handler

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"kitchen-ledger/internal/inventory"
	"kitchen-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// exportKinds 导出的表及其在 XLSX 中的顺序
var exportKinds = []string{"ingredients", "menu", "purchases"}

type ExportHandler struct {
	Ledger   *inventory.Ledger
	Currency string
}

func NewExportHandler(ledger *inventory.Ledger, currency string) *ExportHandler {
	return &ExportHandler{Ledger: ledger, Currency: currency}
}

// money 价格列的表头带上货币符号，例如 “单价($)”
func (h *ExportHandler) money(title string) string {
	if h.Currency == "" {
		return title
	}
	return title + "(" + h.Currency + ")"
}

// table 生成某一类数据的表头 + 数据行
func (h *ExportHandler) table(ctx context.Context, kind string) ([][]string, error) {
	switch kind {
	case "ingredients":
		list, err := h.Ledger.ListIngredients(ctx)
		if err != nil {
			return nil, err
		}
		rows := [][]string{{"ID", "名称", "库存", "单位", h.money("单价")}}
		for _, ing := range list {
			rows = append(rows, []string{
				strconv.FormatUint(uint64(ing.ID), 10),
				ing.Name,
				ing.Quantity.String(),
				ing.Unit,
				ing.PricePerUnit.StringFixed(2),
			})
		}
		return rows, nil
	case "menu":
		list, err := h.Ledger.ListMenuItems(ctx)
		if err != nil {
			return nil, err
		}
		rows := [][]string{{"ID", "名称", h.money("价格"), "可售"}}
		for _, m := range list {
			available := "否"
			if m.Available {
				available = "是"
			}
			rows = append(rows, []string{
				strconv.FormatUint(uint64(m.ID), 10),
				m.Name,
				m.Price.StringFixed(2),
				available,
			})
		}
		return rows, nil
	case "purchases":
		list, _, err := h.Ledger.ListPurchases(ctx, inventory.PurchaseFilter{})
		if err != nil {
			return nil, err
		}
		rows := [][]string{{"ID", "菜品", h.money("价格"), "时间"}}
		for _, p := range list {
			rows = append(rows, []string{
				strconv.FormatUint(uint64(p.ID), 10),
				p.MenuItem.Name,
				p.MenuItem.Price.StringFixed(2),
				p.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unknown export kind %q", kind)
	}
}

// ExportCSV 导出某一类数据为 CSV（?kind=ingredients|menu|purchases）
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	kind := c.DefaultQuery("kind", "ingredients")
	if !validKind(kind) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "kind 只能是 ingredients、menu 或 purchases")
		return
	}

	rows, err := h.table(c.Request.Context(), kind)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询失败")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.csv\"",
		kind, time.Now().Format("20060102")))

	// UTF-8 BOM（让 Excel 正确识别中文）
	_, _ = c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	_ = writer.WriteAll(rows)
}

// ExportXLSX 导出所有数据为一个工作簿，每类数据一个 sheet
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	f := excelize.NewFile()
	defer f.Close()

	for i, kind := range exportKinds {
		rows, err := h.table(c.Request.Context(), kind)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询失败")
			return
		}

		if i == 0 {
			if err := f.SetSheetName("Sheet1", kind); err != nil {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "生成表格失败")
				return
			}
		} else if _, err := f.NewSheet(kind); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "生成表格失败")
			return
		}

		for r, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			values := make([]interface{}, len(row))
			for j := range row {
				values[j] = row[j]
			}
			if err := f.SetSheetRow(kind, cell, &values); err != nil {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "生成表格失败")
				return
			}
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"inventory_%s.xlsx\"",
		time.Now().Format("20060102")))
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func validKind(kind string) bool {
	for _, k := range exportKinds {
		if k == kind {
			return true
		}
	}
	return false
}
