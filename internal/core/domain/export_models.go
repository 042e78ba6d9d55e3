// file: internal/core/domain/export_models.go
package domain

// Record 是一行导出结果：alias → JSON 安全值 (null/bool/number/string)
type Record map[string]any

// ExportResult 既是 API 返回值，也是落盘 JSON 信封。
// 字段顺序决定信封键顺序：doctype 在前，data 在后。
type ExportResult struct {
	Doctype string   `json:"doctype"`
	Data    []Record `json:"data"`

	// Path 记录本次导出写入的文件路径。
	// 分页模式计数为零短路时为空串（未写文件）。
	Path string `json:"-"`
}

// CatalogEntry 是一个静态导出定义：一个逻辑表对应一条
type CatalogEntry struct {
	// Doctype 是目标系统的实体名，如 "Employee"
	Doctype string `json:"doctype"`
	// StorageKey 是源物理表名，复用为输出文件基名
	StorageKey string `json:"storage_key"`
	// Module 是目标系统里的归属模块标签，如 "Setup"
	Module  string       `json:"module"`
	Mapping FieldMapping `json:"-"`
	// Query 是完整的 SELECT 语句（非分页入口使用）
	Query string `json:"-"`
	// Args 是 Query/CountQuery 的绑定参数（如 corte 的年份边界）
	Args []any `json:"-"`

	// 分页入口专用：CountQuery 先行计数，BaseFrom + OrderBy
	// 与 Mapping.SelectClause() 拼出主查询。分页要求确定性的 ORDER BY。
	CountQuery string `json:"-"`
	BaseFrom   string `json:"-"`
	OrderBy    string `json:"-"`
}

// Paginated 报告该条目是否走分页导出路径
func (e CatalogEntry) Paginated() bool {
	return e.CountQuery != "" || e.BaseFrom != ""
}
