package router

import (
	"net/http"

	"kitchen-ledger/internal/config"
	"kitchen-ledger/internal/handler"
	"kitchen-ledger/internal/inventory"
	"kitchen-ledger/internal/logger"
	"kitchen-ledger/internal/middleware"
	"kitchen-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the JSON API.
func SetupRouter(cfg *config.Config, db *gorm.DB, ledger *inventory.Ledger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(logger.Middleware(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		util.Success(c, util.Response{"status": "ok"})
	})
	r.NoRoute(func(c *gin.Context) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "接口不存在")
	})

	// ====== API ======
	api := r.Group("/api")

	// 登录/注册接口（不需要鉴权）
	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// 需要登录才能访问的接口
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer, db),
		middleware.AuditMiddleware(db, cfg.Security.EncryptionKey),
	)

	protected.GET("/me", handler.GetMe)
	protected.POST("/auth/logout", authHandler.Logout)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db, cfg.Security.BcryptCost))

	inv := handler.NewInventoryHandler(ledger, cfg.App.PageSize)
	protected.GET("/ingredients", inv.ListIngredients)
	protected.POST("/ingredients", inv.CreateIngredient)
	protected.GET("/ingredients/:id", inv.GetIngredient)
	protected.PUT("/ingredients/:id", inv.UpdateIngredient)
	protected.DELETE("/ingredients/:id", inv.DeleteIngredient)
	protected.POST("/ingredients/:id/stock", inv.AdjustStock)

	protected.GET("/menu", inv.ListMenu)
	protected.POST("/menu", inv.CreateMenuItem)
	protected.GET("/menu/:id", inv.GetMenuItem)
	protected.PUT("/menu/:id", inv.UpdateMenuItem)
	protected.DELETE("/menu/:id", inv.DeleteMenuItem)
	protected.GET("/menu/:id/availability", inv.Availability)
	protected.GET("/menu/:id/requirements", inv.ListRequirements)
	protected.POST("/menu/:id/requirements", inv.AddRequirement)
	protected.POST("/menu/:id/sell", inv.Sell)

	protected.PUT("/requirements/:id", inv.UpdateRequirement)
	protected.DELETE("/requirements/:id", inv.DeleteRequirement)

	protected.GET("/purchases", inv.ListPurchases)
	protected.POST("/purchases", inv.CreatePurchase)
	protected.GET("/purchases/:id", inv.GetPurchase)
	protected.GET("/reports/sales", inv.SalesReport)

	exportHandler := handler.NewExportHandler(ledger, cfg.App.Currency)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	backupHandler := handler.NewBackupHandler(db, ledger, cfg.Security.EncryptionKey, cfg.Backup.Dir)
	protected.POST("/backups", backupHandler.CreateBackup)
	protected.GET("/backups", backupHandler.ListBackups)
	protected.GET("/backups/:id/download", backupHandler.DownloadBackup)
	protected.POST("/backups/:id/restore", backupHandler.RestoreBackup)
	protected.DELETE("/backups/:id", backupHandler.DeleteBackup)

	logHandler := handler.NewLogHandler(db, cfg.Security.EncryptionKey, cfg.App.PageSize)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
