// file: internal/service/raw_export_test.go

package service

import (
	"context"
	"database/sql"
	"testing"

	"SiscontBridge/internal/export"
	"SiscontBridge/internal/sink"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestExportRaw_RejectsBadIdentifiers(t *testing.T) {
	exp := export.New(sink.New(t.TempDir()))

	// 标识符校验在任何数据库访问之前，session 传 nil 也安全
	cases := []struct {
		table  string
		fields []string
	}{
		{"users; DROP TABLE users", []string{"id"}},
		{"users", []string{"id; --"}},
		{"users", []string{`name"`}},
		{"", []string{"id"}},
		{"users", nil},
	}
	for _, c := range cases {
		_, err := ExportRaw(context.Background(), nil, exp, c.table, c.fields)
		assert.Error(t, err, "table=%q fields=%v 应被拒绝", c.table, c.fields)
	}
}

func TestExportRaw_EndToEnd(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE productos (id INTEGER PRIMARY KEY, nombre TEXT, precio TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO productos VALUES (1, 'Tornillo', '0.15'), (2, 'Clavo', '0.05')`)
	require.NoError(t, err)

	exp := export.New(sink.New(t.TempDir()))
	result, err := ExportRaw(context.Background(), db, exp, "productos", []string{"nombre", "precio"})
	require.NoError(t, err)

	// 透传导出：doctype 与存储键都是表名
	assert.Equal(t, "productos", result.Doctype)
	require.Len(t, result.Data, 2)
	// 无映射 → auto 推断：数字文本升格为数字
	assert.Equal(t, "Tornillo", result.Data[0]["nombre"])
	assert.Equal(t, 0.15, result.Data[0]["precio"])
}
