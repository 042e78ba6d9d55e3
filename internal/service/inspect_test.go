// file: internal/service/inspect_test.go

package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspector_ListTablesCached(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "初始化sqlmock失败")
	defer db.Close()

	mock.ExpectQuery("SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).
			AddRow("SCPTRABAJADORES").
			AddRow("SNOCARGOS"))

	i := NewInspector(time.Minute)
	ctx := context.Background()

	list, err := i.ListTables(ctx, db, "srv1/S5Principal")
	require.NoError(t, err)
	assert.Equal(t, 2, list.TotalTables)
	assert.Equal(t, []string{"SCPTRABAJADORES", "SNOCARGOS"}, list.Tables)

	// 第二次命中缓存，不再打数据库（sqlmock 只登记了一次查询）
	again, err := i.ListTables(ctx, db, "srv1/S5Principal")
	require.NoError(t, err)
	assert.Equal(t, list, again)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInspector_CacheKeyedByFingerprint(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// 两个不同指纹 → 两次真实查询
	mock.ExpectQuery("SELECT TABLE_NAME").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).AddRow("a"))
	mock.ExpectQuery("SELECT TABLE_NAME").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).AddRow("b"))

	i := NewInspector(time.Minute)
	ctx := context.Background()

	l1, err := i.ListTables(ctx, db, "srv1/db1")
	require.NoError(t, err)
	l2, err := i.ListTables(ctx, db, "srv2/db2")
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, l1.Tables)
	assert.Equal(t, []string{"b"}, l2.Tables)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInspector_TableStructure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COLUMN_NAME, DATA_TYPE, CHARACTER_MAXIMUM_LENGTH, IS_NULLABLE").
		WithArgs("SCPTRABAJADORES").
		WillReturnRows(sqlmock.NewRows(
			[]string{"COLUMN_NAME", "DATA_TYPE", "CHARACTER_MAXIMUM_LENGTH", "IS_NULLABLE"}).
			AddRow("CPTrabNombre", "varchar", int64(50), "YES").
			AddRow("TrabFechaAlta", "datetime", nil, "NO"))

	i := NewInspector(time.Minute)
	cols, err := i.TableStructure(context.Background(), db, "srv1/db", "SCPTRABAJADORES")
	require.NoError(t, err)
	require.Len(t, cols, 2)

	assert.Equal(t, "CPTrabNombre", cols[0].ColumnName)
	require.NotNil(t, cols[0].MaxLength)
	assert.Equal(t, int64(50), *cols[0].MaxLength)
	// 无长度的列 max_length 保持 null
	assert.Nil(t, cols[1].MaxLength)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInspector_TableRelationsBindsTableName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM sys.foreign_keys").
		WithArgs("SCPTRABAJADORES", "SCPTRABAJADORES").
		WillReturnRows(sqlmock.NewRows(
			[]string{"tabla_padre", "columna_padre", "tabla_hija", "columna_hija"}).
			AddRow("SCPTRABAJADORES", "CargId", "SNOCARGOS", "CargId"))

	i := NewInspector(time.Minute)
	rels, err := i.TableRelations(context.Background(), db, "srv1/db", "SCPTRABAJADORES")
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, "SNOCARGOS", rels[0].ChildTable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInspector_GetOverview(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// 并发取数，两条查询的到达顺序不固定
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("SELECT TABLE_NAME").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).AddRow("t1"))
	mock.ExpectQuery("FROM sys.foreign_keys").
		WillReturnRows(sqlmock.NewRows(
			[]string{"tabla_padre", "columna_padre", "tabla_hija", "columna_hija"}))

	i := NewInspector(time.Minute)
	ov, err := i.GetOverview(context.Background(), db, "srv1/db")
	require.NoError(t, err)
	assert.Equal(t, 1, ov.Tables.TotalTables)
	// 空关系序列化成 []，不是 null
	assert.NotNil(t, ov.Relations)
	assert.Empty(t, ov.Relations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInspector_Flush(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT TABLE_NAME").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).AddRow("x"))
	mock.ExpectQuery("SELECT TABLE_NAME").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).AddRow("x"))

	i := NewInspector(time.Minute)
	ctx := context.Background()

	_, err = i.ListTables(ctx, db, "fp")
	require.NoError(t, err)
	i.Flush()
	// 缓存清空后重新查询
	_, err = i.ListTables(ctx, db, "fp")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
