// Package sqlserver file: internal/adapter/datasource/sqlserver/manager.go
//
// 数据库会话管理：按调用方提供的连接参数（host/database/password）
// 加进程级配置（user/port/driver）建立一次导出独占的会话。
// 会话不做池化共享，由调用方负责关闭。
package sqlserver

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	_ "github.com/microsoft/go-mssqldb" // 目标库: SQL Server
	_ "modernc.org/sqlite"              // 本地/测试库: SQLite
)

// Params 是调用方每次请求携带的连接描述符
type Params struct {
	Host     string `json:"host" binding:"required"`
	Password string `json:"password" binding:"required"`
	Database string `json:"database" binding:"required"`
}

// Manager 持有进程级连接配置
type Manager struct {
	driver string
	user   string
	port   int
}

func NewManager(driver, user string, port int) *Manager {
	if driver == "" {
		driver = "sqlserver"
	}
	return &Manager{driver: driver, user: user, port: port}
}

// Conn 是一次导出独占的数据库会话。
// go-mssqldb 的 sqlserver 驱动不识别 '?' 占位符（SQL 文本原样进
// sp_executesql，参数按 @p1..@pN 绑定），所以对该驱动在发送前
// 把 '?' 改写为序号参数。sqlite 驱动原生支持 '?'，不改写。
type Conn struct {
	db      *sql.DB
	rewrite bool
}

func (c *Conn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if c.rewrite {
		query = translatePlaceholders(query)
	}
	return c.db.QueryContext(ctx, query, args...)
}

func (c *Conn) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	if c.rewrite {
		query = translatePlaceholders(query)
	}
	return c.db.QueryRowContext(ctx, query, args...)
}

func (c *Conn) Close() error { return c.db.Close() }

// Open 建立并验证（Ping）一个新的数据库会话
func (m *Manager) Open(ctx context.Context, p Params) (*Conn, error) {
	dsn, err := buildDSN(m.driver, p.Host, m.port, p.Database, m.user, p.Password)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(m.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("打开数据库连接 (%s@%s/%s) 失败: %w", m.user, p.Host, p.Database, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("连接数据库 '%s/%s' (Ping) 失败: %w", p.Host, p.Database, err)
	}

	slog.Debug("数据库会话已建立", "driver", m.driver, "host", p.Host, "database", p.Database)
	return &Conn{db: db, rewrite: m.driver == "sqlserver"}, nil
}

// translatePlaceholders 把字符串字面量之外的 '?' 依次改写为 @p1..@pN
func translatePlaceholders(query string) string {
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	inString := false
	for _, r := range query {
		switch {
		case r == '\'':
			inString = !inString
			sb.WriteRune(r)
		case r == '?' && !inString:
			n++
			sb.WriteString("@p")
			sb.WriteString(strconv.Itoa(n))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// buildDSN 按驱动类型构造连接串
func buildDSN(driver, host string, port int, database, user, password string) (string, error) {
	switch driver {
	case "sqlserver":
		u := &url.URL{
			Scheme: "sqlserver",
			User:   url.UserPassword(user, password),
			Host:   fmt.Sprintf("%s:%d", host, port),
		}
		q := url.Values{}
		q.Set("database", database)
		u.RawQuery = q.Encode()
		return u.String(), nil
	case "sqlite":
		// 本地模式：host 字段直接当文件路径用
		return fmt.Sprintf("file:%s?_busy_timeout=10000&_journal_mode=WAL", host), nil
	}
	return "", fmt.Errorf("不支持的数据库驱动: %q", driver)
}
