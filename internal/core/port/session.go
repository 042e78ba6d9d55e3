// Package port file: internal/core/port/session.go
package port

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Standard errors
var (
	ErrEntryNotFound      = errors.New("目录中未找到指定的导出条目")
	ErrStorageKeyRequired = errors.New("storage_key required")
)

// Session 抽象一次导出独占的数据库会话：
// 能执行带参数的文本查询并返回列名 + 行。*sql.DB 与 *sql.Conn 均满足。
type Session interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ExportError 携带出错导出的上下文（doctype 与底层原因）
type ExportError struct {
	Doctype    string
	StorageKey string
	Err        error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("导出 '%s' (%s) 失败: %v", e.Doctype, e.StorageKey, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// PersistError 表示 Json Sink 无法建目录或写文件
type PersistError struct {
	StorageKey string
	Err        error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("持久化 '%s.json' 失败: %v", e.StorageKey, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
