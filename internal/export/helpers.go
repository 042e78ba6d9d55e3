// Package export file: internal/export/helpers.go
package export

import (
	"errors"
	"fmt"
	"strings"
)

// buildPageSQL 把 SELECT 投影、FROM/WHERE 片段与 ORDER BY 拼成完整查询。
// page > 0 时追加 OFFSET ... FETCH NEXT 分页子句（SQL Server 语法，
// 要求 ORDER BY 存在）；page <= 0 表示全量。
func buildPageSQL(selectClause, baseFrom, orderBy string, page, size int) (string, error) {
	if strings.TrimSpace(selectClause) == "" {
		return "", errors.New("SELECT 投影不能为空 (buildPageSQL)")
	}
	if strings.TrimSpace(baseFrom) == "" {
		return "", errors.New("FROM 片段不能为空 (buildPageSQL)")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(selectClause)
	sb.WriteString(" ")
	sb.WriteString(strings.TrimSpace(baseFrom))
	sb.WriteString(" ")
	sb.WriteString(strings.TrimSpace(orderBy))

	if page > 0 {
		if size < 1 {
			size = 500
		}
		offset := (page - 1) * size
		sb.WriteString(fmt.Sprintf(" OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, size))
	}
	return sb.String(), nil
}
