// file: internal/service/raw_export.go
package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"SiscontBridge/internal/core/domain"
	"SiscontBridge/internal/core/port"
	"SiscontBridge/internal/export"
)

// identPattern 只放行普通标识符，拦住透传查询里的注入
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ExportRaw 是无映射的透传导出：按物理表名导出选定列，
// 每个单元格走 auto 语义推断，文件名就是表名。
func ExportRaw(ctx context.Context, sess port.Session, exp *export.Exporter, tableName string, fields []string) (*domain.ExportResult, error) {
	if !identPattern.MatchString(tableName) {
		return nil, fmt.Errorf("非法的表名: %q", tableName)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("透传导出必须指定至少一个列名")
	}
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		if !identPattern.MatchString(f) {
			return nil, fmt.Errorf("非法的列名: %q", f)
		}
		quoted = append(quoted, fmt.Sprintf("%q", f))
	}

	entry := domain.CatalogEntry{
		Doctype:    tableName,
		StorageKey: tableName,
		Module:     "Raw",
		// Mapping 留空：全部列回落到 auto 语义
		Query: fmt.Sprintf("SELECT %s FROM %q", strings.Join(quoted, ", "), tableName),
	}
	return exp.Export(ctx, sess, entry)
}
