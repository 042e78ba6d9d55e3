// file: internal/transport/http/router/router.go
package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"SiscontBridge/internal/adapter/datasource/sqlserver"
	"SiscontBridge/internal/catalog"
	"SiscontBridge/internal/core/domain"
	"SiscontBridge/internal/core/port"
	"SiscontBridge/internal/export"
	"SiscontBridge/internal/observe"
	"SiscontBridge/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Dependencies 结构体用于将所有依赖项注入到路由器中
type Dependencies struct {
	Catalog   *catalog.Catalog
	Exporter  *export.Exporter
	Inspector *service.Inspector
	Manager   *sqlserver.Manager
	Limiter   *IPRateLimiter
}

// New 创建并配置基于 Gin 的 HTTP 路由器
func New(deps Dependencies) http.Handler {
	router := gin.Default()

	// --- 配置全局中间件 ---
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(requestID())

	router.GET("/metrics", gin.WrapH(observe.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler())
		v1.GET("/catalog", catalogHandler(deps.Catalog))

		// --- 导出平面 (Export Plane) ---
		exportGroup := v1.Group("/export")
		if deps.Limiter != nil {
			exportGroup.Use(deps.Limiter.Middleware())
		}
		{
			exportGroup.POST("/:entry", exportHandler(deps))
			exportGroup.POST("", rawExportHandler(deps))
		}

		// --- 结构浏览平面 (Inspection Plane) ---
		inspectGroup := v1.Group("/inspect")
		{
			inspectGroup.POST("/tables", tablesHandler(deps))
			inspectGroup.POST("/structure/:table", structureHandler(deps))
			inspectGroup.POST("/relations/:table", relationsHandler(deps))
			inspectGroup.POST("/overview", overviewHandler(deps))
		}
	}

	return router
}

// =============================================================================
//  导出处理器 (Export Handlers)
// =============================================================================

func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// catalogHandler 返回目录全部条目的元信息，供界面列出可导出的逻辑表
func catalogHandler(cat *catalog.Catalog) gin.HandlerFunc {
	type entryInfo struct {
		Name       string `json:"name"`
		Doctype    string `json:"doctype"`
		StorageKey string `json:"storage_key"`
		Module     string `json:"module"`
		Paginated  bool   `json:"paginated"`
	}
	return func(c *gin.Context) {
		infos := make([]entryInfo, 0)
		for _, name := range cat.Names() {
			e, _ := cat.Get(name)
			infos = append(infos, entryInfo{
				Name:       name,
				Doctype:    e.Doctype,
				StorageKey: e.StorageKey,
				Module:     e.Module,
				Paginated:  e.Paginated(),
			})
		}
		c.JSON(http.StatusOK, gin.H{"data": infos})
	}
}

// exportHandler 执行一个目录条目的导出并返回记录集。
// 与源系统一致，响应只带 data 数组，信封的 doctype 不回显。
func exportHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		entryName := c.Param("entry")
		entry, ok := deps.Catalog.Get(entryName)
		if !ok {
			writeExportError(c, fmt.Errorf("'%s': %w", entryName, port.ErrEntryNotFound))
			return
		}

		var params sqlserver.Params
		if err := c.ShouldBindJSON(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的连接参数: " + err.Error()})
			return
		}

		db, err := deps.Manager.Open(c.Request.Context(), params)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "连接数据库失败: " + err.Error()})
			return
		}
		defer db.Close()

		slog.Info("开始导出", "entry", entryName, "doctype", entry.Doctype,
			"request_id", c.GetString("request_id"))

		var result *domain.ExportResult
		if entry.Paginated() {
			page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
			size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))
			result, err = deps.Exporter.ExportPaginated(c.Request.Context(), db, entry, page, size)
		} else {
			result, err = deps.Exporter.Export(c.Request.Context(), db, entry)
		}
		if err != nil {
			writeExportError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result.Data})
	}
}

// writeExportError 把错误分类映射到 HTTP 状态码
func writeExportError(c *gin.Context, err error) {
	var persistErr *port.PersistError
	var exportErr *port.ExportError
	switch {
	case errors.Is(err, port.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, port.ErrStorageKeyRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &persistErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": persistErr.Error()})
	case errors.As(err, &exportErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": exportErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("导出失败: %v", err)})
	}
}

// rawExportHandler 透传导出：不走目录，按物理表名 + 列名清单导出
func rawExportHandler(deps Dependencies) gin.HandlerFunc {
	type rawRequest struct {
		sqlserver.Params
		Table  string   `json:"table" binding:"required"`
		Fields []string `json:"fields" binding:"required,min=1"`
	}
	return func(c *gin.Context) {
		var req rawRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体: " + err.Error()})
			return
		}

		db, err := deps.Manager.Open(c.Request.Context(), req.Params)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "连接数据库失败: " + err.Error()})
			return
		}
		defer db.Close()

		result, err := service.ExportRaw(c.Request.Context(), db, deps.Exporter, req.Table, req.Fields)
		if err != nil {
			writeExportError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"table_name": req.Table, "data": result.Data})
	}
}

// =============================================================================
//  结构浏览处理器 (Inspection Handlers)
// =============================================================================

func tablesHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, deps, func(db port.Session, fp string) (any, error) {
			return deps.Inspector.ListTables(c.Request.Context(), db, fp)
		})
	}
}

func structureHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := c.Param("table")
		withSession(c, deps, func(db port.Session, fp string) (any, error) {
			return deps.Inspector.TableStructure(c.Request.Context(), db, fp, table)
		})
	}
}

func relationsHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := c.Param("table")
		withSession(c, deps, func(db port.Session, fp string) (any, error) {
			return deps.Inspector.TableRelations(c.Request.Context(), db, fp, table)
		})
	}
}

func overviewHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, deps, func(db port.Session, fp string) (any, error) {
			return deps.Inspector.GetOverview(c.Request.Context(), db, fp)
		})
	}
}

// withSession 绑定连接参数、建会话、执行查询、统一出错处理
func withSession(c *gin.Context, deps Dependencies, fn func(db port.Session, fingerprint string) (any, error)) {
	var params sqlserver.Params
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的连接参数: " + err.Error()})
		return
	}

	db, err := deps.Manager.Open(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "连接数据库失败: " + err.Error()})
		return
	}
	defer db.Close()

	fingerprint := params.Host + "/" + params.Database
	data, err := fn(db, fingerprint)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}
