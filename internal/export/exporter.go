// Package export file: internal/export/exporter.go
//
// Table Exporter：执行一条目录条目的 SQL，把结果行逐格按字段映射
// 序列化成记录集，交给 Json Sink 落盘，同时把记录集返回给调用方。
package export

import (
	"context"
	"fmt"
	"log/slog"

	"SiscontBridge/internal/core/domain"
	"SiscontBridge/internal/core/port"
	"SiscontBridge/internal/observe"
	"SiscontBridge/internal/serialize"
	"SiscontBridge/internal/sink"
)

// Exporter 编排一次导出。无内部状态，可被并发请求共享。
type Exporter struct {
	sink *sink.Sink
}

func New(s *sink.Sink) *Exporter {
	return &Exporter{sink: s}
}

// Export 执行非分页导出：一次查询取全部行，序列化后写一个 JSON 文件。
// 行内单元格转换失败只降级为 null；查询失败与持久化失败都向上传播。
// 持久化失败时内存结果照常返回（result 与 error 同时非 nil）。
func (e *Exporter) Export(ctx context.Context, sess port.Session, entry domain.CatalogEntry) (*domain.ExportResult, error) {
	observe.ExportTotal.Inc()

	if err := validateEntry(entry); err != nil {
		observe.ExportFail.Inc()
		return nil, err
	}

	records, err := e.fetch(ctx, sess, entry, entry.Query)
	if err != nil {
		observe.ExportFail.Inc()
		return nil, err
	}

	return e.finish(entry, records)
}

// ExportPaginated 执行分页导出：先跑计数查询，总数为零时短路返回
// 空结果且不写文件。page <= 0 表示一次取全量；分页必须有 ORDER BY，
// 否则页边界在多次调用间不稳定。
func (e *Exporter) ExportPaginated(ctx context.Context, sess port.Session, entry domain.CatalogEntry, page, size int) (*domain.ExportResult, error) {
	observe.ExportTotal.Inc()

	if err := validateEntry(entry); err != nil {
		observe.ExportFail.Inc()
		return nil, err
	}
	if entry.OrderBy == "" {
		observe.ExportFail.Inc()
		return nil, &port.ExportError{Doctype: entry.Doctype, StorageKey: entry.StorageKey,
			Err: fmt.Errorf("分页导出必须提供确定性的 ORDER BY")}
	}

	countSQL := entry.CountQuery
	if countSQL == "" {
		// BaseFrom 可能带 GROUP BY：直接前缀 COUNT(*) 会得到每组一行，
		// 空表时一行都没有。包成子查询后恒为单行的组数。
		countSQL = fmt.Sprintf("SELECT COUNT(*) FROM (SELECT 1 AS one %s) AS t", entry.BaseFrom)
	}
	var total int64
	if err := sess.QueryRowContext(ctx, countSQL, entry.Args...).Scan(&total); err != nil {
		observe.ExportFail.Inc()
		slog.Error("计数查询失败", "doctype", entry.Doctype, "error", err)
		return nil, &port.ExportError{Doctype: entry.Doctype, StorageKey: entry.StorageKey, Err: err}
	}

	if total == 0 {
		// 不算错误：短路返回空结果，不写文件
		slog.Warn("⚠️ 计数为零，跳过导出", "doctype", entry.Doctype, "storage_key", entry.StorageKey)
		return &domain.ExportResult{Doctype: entry.Doctype, Data: []domain.Record{}}, nil
	}

	query, err := buildPageSQL(entry.Mapping.SelectClause(), entry.BaseFrom, entry.OrderBy, page, size)
	if err != nil {
		observe.ExportFail.Inc()
		return nil, &port.ExportError{Doctype: entry.Doctype, StorageKey: entry.StorageKey, Err: err}
	}

	records, err := e.fetch(ctx, sess, entry, query)
	if err != nil {
		observe.ExportFail.Inc()
		return nil, err
	}

	return e.finish(entry, records)
}

// validateEntry 在任何数据库访问前快速失败
func validateEntry(entry domain.CatalogEntry) error {
	if entry.StorageKey == "" {
		return port.ErrStorageKeyRequired
	}
	if err := entry.Mapping.Validate(); err != nil {
		return err
	}
	return nil
}

// fetch 执行查询并把每行序列化成一条记录。
// 列按列名与映射别名配对（大小写敏感）；映射之外的列回落到 auto 语义，
// 以支持不声明全部投影列的透传查询。行顺序保持数据库返回顺序。
func (e *Exporter) fetch(ctx context.Context, sess port.Session, entry domain.CatalogEntry, query string) ([]domain.Record, error) {
	rows, err := sess.QueryContext(ctx, query, entry.Args...)
	if err != nil {
		slog.Error("导出查询执行失败", "doctype", entry.Doctype, "error", err)
		return nil, &port.ExportError{Doctype: entry.Doctype, StorageKey: entry.StorageKey, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &port.ExportError{Doctype: entry.Doctype, StorageKey: entry.StorageKey, Err: err}
	}

	plan := entry.Mapping.TypePlan()
	records := make([]domain.Record, 0, 64)

	for rows.Next() {
		scanDest := make([]any, len(columns))
		scanDestPtrs := make([]any, len(columns))
		for i := range scanDest {
			scanDestPtrs[i] = &scanDest[i]
		}
		if err := rows.Scan(scanDestPtrs...); err != nil {
			return nil, &port.ExportError{Doctype: entry.Doctype, StorageKey: entry.StorageKey, Err: err}
		}

		record := make(domain.Record, len(columns))
		for i, colName := range columns {
			fieldType, mapped := plan[colName]
			if !mapped {
				fieldType = domain.TypeAuto
			}
			record[colName] = serialize.Value(scanDest[i], fieldType)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, &port.ExportError{Doctype: entry.Doctype, StorageKey: entry.StorageKey, Err: err}
	}

	return records, nil
}

// finish 落盘并组装返回值。持久化失败时结果与错误一起返回。
func (e *Exporter) finish(entry domain.CatalogEntry, records []domain.Record) (*domain.ExportResult, error) {
	result := &domain.ExportResult{Doctype: entry.Doctype, Data: records}

	path, err := e.sink.Write(entry.StorageKey, entry.Doctype, records)
	if err != nil {
		observe.ExportFail.Inc()
		slog.Error("导出结果持久化失败", "doctype", entry.Doctype, "storage_key", entry.StorageKey, "error", err)
		return result, err
	}
	result.Path = path

	observe.RowsExported.Add(float64(len(records)))
	slog.Info("导出完成", "doctype", entry.Doctype, "rows", len(records), "path", path)
	return result, nil
}
