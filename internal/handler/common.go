package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"kitchen-ledger/internal/inventory"
	"kitchen-ledger/internal/models"
	"kitchen-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser 取出 AuthMiddleware 放入的用户，未登录时直接返回 401
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return nil, false
	}
	return user, true
}

// parseID 解析路径参数里的正整数 ID
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID 不合法")
		return 0, false
	}
	return uint(id), true
}

// pagination 分页参数：page 从 1 开始，page_size 限制在 1-100
func pagination(c *gin.Context, defaultSize int) (page, size, offset int) {
	if defaultSize <= 0 {
		defaultSize = 20
	}
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if size <= 0 || size > 100 {
		size = defaultSize
	}
	return page, size, (page - 1) * size
}

// dateRange 解析 start / end（YYYY-MM-DD），end 按“当天结束”处理：< end+1 天
func dateRange(c *gin.Context) (start, end time.Time, ok bool) {
	if s := c.Query("start"); s != "" {
		if err := util.ValidateDate(s); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "开始日期格式错误，应为 YYYY-MM-DD")
			return start, end, false
		}
		start, _ = time.ParseInLocation("2006-01-02", s, time.Local)
	}
	if s := c.Query("end"); s != "" {
		if err := util.ValidateDate(s); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "结束日期格式错误，应为 YYYY-MM-DD")
			return start, end, false
		}
		end, _ = time.ParseInLocation("2006-01-02", s, time.Local)
		end = end.Add(24 * time.Hour)
	}
	return start, end, true
}

// respondLedgerErr 把库存账本的错误映射成统一的返回码
func respondLedgerErr(c *gin.Context, err error) {
	var stockErr *inventory.StockError
	switch {
	case errors.As(err, &stockErr):
		util.Fail(c, http.StatusConflict, util.CodeOutOfStock, "库存不足", util.Response{
			"short": stockErr.Short,
		})
	case errors.Is(err, inventory.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "记录不存在")
	case errors.Is(err, inventory.ErrDuplicate):
		util.Error(c, http.StatusConflict, util.CodeConflict, "记录已存在")
	case inventory.IsValidation(err):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "操作失败，请重试")
	}
}
