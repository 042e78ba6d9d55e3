// file: internal/catalog/catalog_test.go

package catalog

import (
	"strings"
	"testing"

	"SiscontBridge/internal/core/domain"
)

func TestCatalog_ValidatesClean(t *testing.T) {
	c := New()
	if err := c.Validate(); err != nil {
		t.Fatalf("目录自检失败: %v", err)
	}
	if len(c.Names()) != 13 {
		t.Errorf("条目数量应为 13, got=%d", len(c.Names()))
	}
}

func TestCatalog_GetAndOrder(t *testing.T) {
	c := New()

	e, ok := c.Get("trabajadores")
	if !ok {
		t.Fatal("trabajadores 条目缺失")
	}
	if e.Doctype != "Employee" || e.StorageKey != "SCPTRABAJADORES" {
		t.Errorf("trabajadores 元数据不对: %+v", e)
	}

	if _, ok := c.Get("no-existe"); ok {
		t.Error("未注册条目不应命中")
	}

	names := c.Names()
	if names[0] != "trabajadores" || names[len(names)-1] != "corte-sc408" {
		t.Errorf("条目顺序不对: %v", names)
	}
	if len(c.List()) != len(names) {
		t.Error("List 与 Names 数量不一致")
	}
}

func TestCatalog_StorageKeysUnique(t *testing.T) {
	c := New()
	seen := make(map[string]string)
	for _, name := range c.Names() {
		e, _ := c.Get(name)
		if prev, dup := seen[e.StorageKey]; dup {
			t.Errorf("storage_key %q 在 %q 与 %q 间重复，落盘会互相覆盖", e.StorageKey, prev, name)
		}
		seen[e.StorageKey] = name
	}
}

func TestCatalog_PaginatedEntriesHaveOrderBy(t *testing.T) {
	c := New()
	for _, name := range c.Names() {
		e, _ := c.Get(name)
		if e.Paginated() && e.OrderBy == "" {
			t.Errorf("分页条目 %q 缺少 ORDER BY", name)
		}
		if !e.Paginated() && e.Query == "" {
			t.Errorf("非分页条目 %q 缺少查询文本", name)
		}
	}
}

func TestCorteEntry_YearBounds(t *testing.T) {
	e := CorteEntry(2026)

	if len(e.Args) != 2 || e.Args[0] != 2026 || e.Args[1] != 2025 {
		t.Fatalf("corte 年份边界应为 [当前年, 上一年], got=%v", e.Args)
	}
	// 年份走绑定参数，SQL 文本里不应出现字面年份
	if strings.Contains(e.CountQuery, "2026") || strings.Contains(e.BaseFrom, "2026") {
		t.Error("年份不应拼进 SQL 文本")
	}
	if strings.Count(e.CountQuery, "?") != 2 || strings.Count(e.BaseFrom, "?") != 2 {
		t.Error("IN 子句应各有两个绑定占位符")
	}
}

func TestEmployeeEntry_SelectClause(t *testing.T) {
	c := New()
	e, _ := c.Get("trabajadores")

	clause := e.Mapping.SelectClause()
	for _, want := range []string{"AS identity_number", "AS first_name", "AS designation", "AS salary_mode"} {
		if !strings.Contains(clause, want) {
			t.Errorf("雇员映射缺少投影 %q:\n%s", want, clause)
		}
	}

	plan := e.Mapping.TypePlan()
	if plan["first_name"] != domain.TypeString {
		t.Errorf("first_name 语义类型错误: %s", plan["first_name"])
	}
	// 选择列表字段要数字语义
	if plan["salary_mode"] != domain.TypeNumeric {
		t.Errorf("salary_mode 语义类型错误: %s", plan["salary_mode"])
	}
}
