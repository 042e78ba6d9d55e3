// file: internal/catalog/general.go
//
// 通用（General）模块的导出条目
package catalog

import (
	"SiscontBridge/internal/core/domain"
)

func unitsOfMeasure() domain.CatalogEntry {
	mapping := domain.FieldMapping{
		{Alias: "uom_name", Expr: "UMedDescrip", Type: domain.TypeString},
	}
	return domain.CatalogEntry{
		Doctype:    "UOM",
		StorageKey: "SMGNOMENCLADORUNIDADMEDIDA",
		Module:     "Setup",
		Mapping:    mapping,
		Query: `SELECT ` + mapping.SelectClause() + `
    FROM SMGNOMENCLADORUNIDADMEDIDA
    WHERE UMedactiva = 1`,
	}
}
