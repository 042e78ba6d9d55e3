// Package service file: internal/service/inspect.go
//
// 连接目标库后的结构浏览：表清单、列结构、外键关系。
// 结果按连接指纹做 TTL 缓存，操作员在界面上反复点同一张表时
// 不必每次都打数据库。
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"SiscontBridge/internal/core/port"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// ColumnInfo 描述目标表的一个物理列
type ColumnInfo struct {
	ColumnName string `json:"column_name"`
	DataType   string `json:"data_type"`
	MaxLength  *int64 `json:"max_length"`
	IsNullable string `json:"is_nullable"`
}

// Relation 描述一条外键关系，键名沿用源系统的返回格式
type Relation struct {
	ParentTable  string `json:"tabla_padre"`
	ParentColumn string `json:"columna_padre"`
	ChildTable   string `json:"tabla_hija"`
	ChildColumn  string `json:"columna_hija"`
}

// TableList 是表清单的返回信封
type TableList struct {
	Tables      []string `json:"tables"`
	TotalTables int      `json:"total_tables"`
}

// Overview 把表清单与全部外键关系打包给浏览页一次取走
type Overview struct {
	Tables    TableList  `json:"tables"`
	Relations []Relation `json:"relations"`
}

// Inspector 持有结构查询的 TTL 缓存
type Inspector struct {
	cache *cache.Cache
}

func NewInspector(ttl time.Duration) *Inspector {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Inspector{cache: cache.New(ttl, 2*ttl)}
}

// ListTables 返回目标库全部用户表。fingerprint 标识一个连接目标
// （host/database），作为缓存键的一部分。
func (i *Inspector) ListTables(ctx context.Context, sess port.Session, fingerprint string) (*TableList, error) {
	cacheKey := "tables:" + fingerprint
	if v, ok := i.cache.Get(cacheKey); ok {
		return v.(*TableList), nil
	}

	rows, err := sess.QueryContext(ctx,
		`SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_TYPE = 'BASE TABLE'`)
	if err != nil {
		return nil, fmt.Errorf("查询表清单失败: %w", err)
	}
	defer rows.Close()

	list := &TableList{Tables: []string{}}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			slog.Warn("扫描表名失败，跳过", "error", err)
			continue
		}
		list.Tables = append(list.Tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	list.TotalTables = len(list.Tables)

	i.cache.Set(cacheKey, list, cache.DefaultExpiration)
	return list, nil
}

// TableStructure 返回指定表的列结构
func (i *Inspector) TableStructure(ctx context.Context, sess port.Session, fingerprint, tableName string) ([]ColumnInfo, error) {
	cacheKey := "structure:" + fingerprint + ":" + tableName
	if v, ok := i.cache.Get(cacheKey); ok {
		return v.([]ColumnInfo), nil
	}

	rows, err := sess.QueryContext(ctx, `
        SELECT COLUMN_NAME, DATA_TYPE, CHARACTER_MAXIMUM_LENGTH, IS_NULLABLE
        FROM INFORMATION_SCHEMA.COLUMNS
        WHERE TABLE_NAME = ?`, tableName)
	if err != nil {
		return nil, fmt.Errorf("查询表 '%s' 结构失败: %w", tableName, err)
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var c ColumnInfo
		if err := rows.Scan(&c.ColumnName, &c.DataType, &c.MaxLength, &c.IsNullable); err != nil {
			slog.Warn("扫描列信息失败，跳过", "table", tableName, "error", err)
			continue
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	i.cache.Set(cacheKey, cols, cache.DefaultExpiration)
	return cols, nil
}

// TableRelations 返回与指定表相关的外键关系。
// 表名走绑定参数，不再像源系统那样拼进 SQL 文本。
func (i *Inspector) TableRelations(ctx context.Context, sess port.Session, fingerprint, tableName string) ([]Relation, error) {
	cacheKey := "relations:" + fingerprint + ":" + tableName
	if v, ok := i.cache.Get(cacheKey); ok {
		return v.([]Relation), nil
	}

	rows, err := sess.QueryContext(ctx, `
        SELECT
            OBJECT_NAME(f.parent_object_id) AS tabla_padre,
            COL_NAME(fc.parent_object_id, fc.parent_column_id) AS columna_padre,
            OBJECT_NAME(f.referenced_object_id) AS tabla_hija,
            COL_NAME(fc.referenced_object_id, fc.referenced_column_id) AS columna_hija
        FROM sys.foreign_keys f
        INNER JOIN sys.foreign_key_columns fc ON f.object_id = fc.constraint_object_id
        WHERE OBJECT_NAME(f.parent_object_id) = ?
           OR OBJECT_NAME(f.referenced_object_id) = ?`, tableName, tableName)
	if err != nil {
		return nil, fmt.Errorf("查询表 '%s' 外键关系失败: %w", tableName, err)
	}
	defer rows.Close()

	rels, err := scanRelations(rows)
	if err != nil {
		return nil, err
	}

	i.cache.Set(cacheKey, rels, cache.DefaultExpiration)
	return rels, nil
}

// AllRelations 返回整库的外键关系
func (i *Inspector) AllRelations(ctx context.Context, sess port.Session, fingerprint string) ([]Relation, error) {
	cacheKey := "relations:" + fingerprint + ":*"
	if v, ok := i.cache.Get(cacheKey); ok {
		return v.([]Relation), nil
	}

	rows, err := sess.QueryContext(ctx, `
        SELECT
            OBJECT_NAME(f.parent_object_id) AS tabla_padre,
            COL_NAME(fc.parent_object_id, fc.parent_column_id) AS columna_padre,
            OBJECT_NAME(f.referenced_object_id) AS tabla_hija,
            COL_NAME(fc.referenced_object_id, fc.referenced_column_id) AS columna_hija
        FROM sys.foreign_keys f
        INNER JOIN sys.foreign_key_columns fc ON f.object_id = fc.constraint_object_id`)
	if err != nil {
		return nil, fmt.Errorf("查询全库外键关系失败: %w", err)
	}
	defer rows.Close()

	rels, err := scanRelations(rows)
	if err != nil {
		return nil, err
	}

	i.cache.Set(cacheKey, rels, cache.DefaultExpiration)
	return rels, nil
}

// GetOverview 并发拉取表清单与全库外键关系
func (i *Inspector) GetOverview(ctx context.Context, sess port.Session, fingerprint string) (*Overview, error) {
	var ov Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := i.ListTables(gctx, sess, fingerprint)
		if err != nil {
			return err
		}
		ov.Tables = *list
		return nil
	})
	g.Go(func() error {
		rels, err := i.AllRelations(gctx, sess, fingerprint)
		if err != nil {
			return err
		}
		ov.Relations = rels
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ov.Relations == nil {
		ov.Relations = []Relation{}
	}
	return &ov, nil
}

// Flush 清空缓存（换库重连后调用）
func (i *Inspector) Flush() { i.cache.Flush() }

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRelations(rows rowScanner) ([]Relation, error) {
	rels := make([]Relation, 0)
	for rows.Next() {
		var r Relation
		if err := rows.Scan(&r.ParentTable, &r.ParentColumn, &r.ChildTable, &r.ChildColumn); err != nil {
			slog.Warn("扫描外键关系失败，跳过", "error", err)
			continue
		}
		rels = append(rels, r)
	}
	return rels, rows.Err()
}
