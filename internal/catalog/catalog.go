// Package catalog file: internal/catalog/catalog.go
//
// Query Catalog：每个逻辑表一条静态导出定义（doctype、存储键、
// 字段映射、SQL 文本），进程启动时构建一次，运行期只读。
package catalog

import (
	"fmt"
	"time"

	"SiscontBridge/internal/core/domain"
)

// Catalog 是按条目名（路由 slug）索引的只读注册表
type Catalog struct {
	entries map[string]domain.CatalogEntry
	order   []string
}

// New 构建完整目录。corte 条目的年份边界按当前时间计算。
func New() *Catalog {
	c := &Catalog{entries: make(map[string]domain.CatalogEntry)}
	for _, e := range []struct {
		name  string
		entry domain.CatalogEntry
	}{
		{"trabajadores", employees()},
		{"categorias-ocupacionales", occupationalCategories()},
		{"cargos-trabajadores", designations()},
		{"tipos-trabajadores", employmentTypes()},
		{"tipos-retenciones", withholdingTypes()},
		{"pensionados", pensioners()},
		{"tasas-destajos", pieceRates()},
		{"colectivos", employeeGroups()},
		{"departamentos", departments()},
		{"unidad-medida", unitsOfMeasure()},
		{"submayor-vacaciones", vacationSubledger()},
		{"salarios-no-reclamados", unclaimedSalaries()},
		{"corte-sc408", CorteEntry(time.Now().Year())},
	} {
		c.entries[e.name] = e.entry
		c.order = append(c.order, e.name)
	}
	return c
}

// Get 按条目名查找
func (c *Catalog) Get(name string) (domain.CatalogEntry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// Names 返回声明顺序的条目名列表
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// List 返回声明顺序的全部条目
func (c *Catalog) List() []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.entries[name])
	}
	return out
}

// Validate 校验每个条目：存储键非空、映射合法
func (c *Catalog) Validate() error {
	for _, name := range c.order {
		e := c.entries[name]
		if e.StorageKey == "" {
			return fmt.Errorf("条目 '%s' 缺少 storage_key", name)
		}
		if err := e.Mapping.Validate(); err != nil {
			return fmt.Errorf("条目 '%s' 字段映射非法: %w", name, err)
		}
		if e.Paginated() && e.OrderBy == "" {
			return fmt.Errorf("分页条目 '%s' 缺少 ORDER BY", name)
		}
	}
	return nil
}
