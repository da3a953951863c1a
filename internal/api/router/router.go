package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KalitoMero/silent-excel-vault/config"
	"github.com/KalitoMero/silent-excel-vault/internal/api/handler"
	"github.com/KalitoMero/silent-excel-vault/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 媒体静态文件（视频附件回放） ──
	r.StaticFS("/uploads/media", http.Dir(cfg.Upload.Dir))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 工单模块
		v1.POST("/scan-orders", h.Order.CreateOrder)
		v1.GET("/orders", h.Order.ListOrders)
		v1.GET("/orders/open", h.Order.ListOpenOrders)
		v1.POST("/complete-order", h.Order.CompleteOrder)
		v1.POST("/cancel-order", h.Order.CancelOrder)
		v1.GET("/archive", h.Order.ListArchive)

		// 监控看板模块
		monitor := v1.Group("/monitor")
		{
			monitor.GET("", h.Monitor.GetBoard)
			monitor.POST("/scan-input", h.Monitor.ScanInput)
			monitor.POST("/barcode", h.Monitor.CompleteByBarcode)
		}

		// 媒体附件模块
		media := v1.Group("/media")
		{
			media.POST("", h.Media.CreateMedia)
			media.GET("", h.Media.ListMedia)
			media.GET("/:auftragsnummer", h.Media.ListMediaByNummer)
		}

		// 部门模块
		departments := v1.Group("/departments")
		{
			departments.GET("", h.Department.ListDepartments)
			departments.POST("", h.Department.CreateDepartment)
			departments.DELETE("/:id", h.Department.DeleteDepartment)
		}

		// 追加信息模块
		additionalInfos := v1.Group("/additional-infos")
		{
			additionalInfos.GET("", h.AdditionalInfo.ListAdditionalInfos)
			additionalInfos.POST("", h.AdditionalInfo.CreateAdditionalInfo)
			additionalInfos.DELETE("/:id", h.AdditionalInfo.DeleteAdditionalInfo)
		}

		// 设置与参照数据模块
		v1.GET("/excel-settings", h.Settings.GetExcelSettings)
		v1.POST("/excel-settings", h.Settings.SaveExcelSettings)
		v1.GET("/column-settings", h.Settings.GetColumnSettings)
		v1.POST("/column-settings", h.Settings.SaveColumnSettings)
		v1.POST("/excel-import", h.Import.ImportMatrix)
		v1.POST("/excel-upload", h.Import.UploadWorkbook)
		v1.GET("/excel-data", h.Import.GetExcelData)

		// 统计模块
		statistics := v1.Group("/statistics")
		{
			statistics.GET("", h.Statistics.GetStatistics)
			statistics.GET("/export", h.Statistics.ExportArchive)
		}

		// 扫描向导模块
		wizard := v1.Group("/wizard/sessions")
		{
			wizard.POST("", h.Wizard.StartSession)
			wizard.GET("/:id", h.Wizard.GetSession)
			wizard.POST("/:id/priority", h.Wizard.SelectPriority)
			wizard.POST("/:id/department", h.Wizard.SelectDepartment)
			wizard.POST("/:id/zusatzinfo", h.Wizard.SelectZusatzinfo)
			wizard.POST("/:id/media", h.Wizard.MediaAction)
			wizard.POST("/:id/confirm", h.Wizard.Confirm)
			wizard.DELETE("/:id", h.Wizard.AbandonSession)
		}
	}

	return r
}
