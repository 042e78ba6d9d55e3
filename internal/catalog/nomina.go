// file: internal/catalog/nomina.go
//
// 工资/人事（Nómina）模块的导出条目。SQL 文本与过滤条件按源系统
// 原样移植；个别条目的 "未停用" 过滤极性在源库里就不一致，这里
// 保持原状，待与真实数据核对后再改（见各条目注释）。
package catalog

import (
	"SiscontBridge/internal/core/domain"
)

// employees 导出在职工人主数据
func employees() domain.CatalogEntry {
	mapping := domain.FieldMapping{
		{Alias: "identity_number", Expr: "T.CPTrabConsecutivoID", Type: domain.TypeString},
		{Alias: "first_name", Expr: "T.CPTrabNombre", Type: domain.TypeString},
		{Alias: "last_name", Expr: "T.CPTrabPriApellido", Type: domain.TypeString},
		{Alias: "second_surname", Expr: "T.CPTrabSegApellido", Type: domain.TypeString},
		{Alias: "gender", Expr: "T.TrabSexo", Type: domain.TypeString},
		{Alias: "occupational_category", Expr: "C.CategODescripcion", Type: domain.TypeString},
		{Alias: "designation", Expr: "CAR.CargDescripcion", Type: domain.TypeString},
		{Alias: "employment_type", Expr: "TT.TipTrabDescripcion", Type: domain.TypeString},
		{Alias: "date_of_joining", Expr: "T.TrabFechaAlta", Type: domain.TypeString},
		{Alias: "contract_end_date", Expr: "T.TrabFechaBaja", Type: domain.TypeString},
		// 选择列表字段，要数字不要带引号
		{Alias: "salary_mode", Expr: "T.TrabFormaCobro", Type: domain.TypeNumeric},
		{Alias: "banc_ac_no", Expr: "T.TrabTmagnMN", Type: domain.TypeString},
		{Alias: "company_email", Expr: "T.TrabCorreo", Type: domain.TypeString},
		{Alias: "accumulate_vacations", Expr: "T.TrabCPVacaciones", Type: domain.TypeString},
		{Alias: "current_address", Expr: "PD.SRHPersDireccionDir", Type: domain.TypeString},
		{Alias: "permanent_address", Expr: "PD.SRHPersDireccionOficial", Type: domain.TypeString},
		{Alias: "state_province", Expr: "R.ProvCod", Type: domain.TypeString},
		{Alias: "city_town", Expr: "R.MunicCod", Type: domain.TypeString},
		{Alias: "department", Expr: "T.AreaCodigo", Type: domain.TypeInteger},
	}
	return domain.CatalogEntry{
		Doctype:    "Employee",
		StorageKey: "SCPTRABAJADORES",
		Module:     "Setup",
		Mapping:    mapping,
		Query: `SELECT ` + mapping.SelectClause() + `
    FROM SCPTrabajadores AS T
    LEFT JOIN SNOCARGOS AS CAR ON T.CargId = CAR.CargId
    LEFT JOIN SNOCATEGOCUP AS C ON T.CategId = C.CategId
    LEFT JOIN SNOTIPOTRABAJADOR AS TT ON T.TipTrabId = TT.TipTrabId
    LEFT JOIN SRHPersonas AS P ON T.CPTrabConsecutivoID = P.SRHPersonasId
    LEFT JOIN SRHPersonasDireccion AS PD ON P.SRHPersonasId = PD.SRHPersonasId
    LEFT JOIN TEREPARTOS AS R ON PD.TRepartosCodigo = R.TRepartosCodigo
    WHERE (T.TrabDesactivado = '' OR T.TrabDesactivado IS NULL)`,
	}
}

func occupationalCategories() domain.CatalogEntry {
	mapping := domain.FieldMapping{
		{Alias: "category_name", Expr: "CategODescripcion", Type: domain.TypeString},
	}
	return domain.CatalogEntry{
		Doctype:    "Occupational Category",
		StorageKey: "SNOCATEGOCUP",
		Module:     "Cuba",
		Mapping:    mapping,
		// 源库此列的 "空" 是单个空格，不是空串
		Query: `SELECT ` + mapping.SelectClause() + `
    FROM SNOCATEGOCUP
    WHERE CategDesactivado = ' ' OR CategDesactivado IS NULL`,
	}
}

func designations() domain.CatalogEntry {
	mapping := domain.FieldMapping{
		{Alias: "designation_name", Expr: "CargDescripcion", Type: domain.TypeString},
	}
	return domain.CatalogEntry{
		Doctype:    "Designation",
		StorageKey: "SNOCARGOS",
		Module:     "Setup",
		Mapping:    mapping,
		Query: `SELECT ` + mapping.SelectClause() + `
    FROM SNOCARGOS
    WHERE CargDesactivado = '' OR CargDesactivado IS NULL`,
	}
}

func employmentTypes() domain.CatalogEntry {
	mapping := domain.FieldMapping{
		{Alias: "employee_type_name", Expr: "TipTrabDescripcion", Type: domain.TypeString},
	}
	// 存储键带 C（SNOCTIPOTRABAJADOR）而表名不带，沿用源系统的命名
	return domain.CatalogEntry{
		Doctype:    "Employment Type",
		StorageKey: "SNOCTIPOTRABAJADOR",
		Module:     "HR",
		Mapping:    mapping,
		Query: `SELECT ` + mapping.SelectClause() + `
    FROM SNOTIPOTRABAJADOR s
    WHERE TipTrabDesactivado = '' OR TipTrabDesactivado IS NULL`,
	}
}

func withholdingTypes() domain.CatalogEntry {
	mapping := domain.FieldMapping{
		{Alias: "withholding_type_name", Expr: "CPCRetDescripcion", Type: domain.TypeString},
		{Alias: "debt_to", Expr: "CRetDeudaCon", Type: domain.TypeInteger},
		{Alias: "account", Expr: "c.ClcuDescripcion", Type: domain.TypeString},
		{Alias: "priority", Expr: "CRetPPrioridad", Type: domain.TypeInteger},
		{Alias: "child_support", Expr: "CRetPPenAlimenticia", Type: domain.TypeBoolean},
		{Alias: "by_installments", Expr: "CRetPConPlazos", Type: domain.TypeInteger},
	}
	return domain.CatalogEntry{
		Doctype:    "Withholding Type",
		StorageKey: "SCPCONRETPAGAR",
		Module:     "Cuba",
		Mapping:    mapping,
		Query: `SELECT ` + mapping.SelectClause() + `
    FROM SCPCONRETPAGAR s LEFT JOIN SCGCLASIFICADORDECUENTAS c ON s.ClcuIDCuenta = c.ClcuIDCuenta
    WHERE CRetPDesactivado = '' OR CRetPDesactivado IS NULL`,
	}
}

func pensioners() domain.CatalogEntry {
	mapping := domain.FieldMapping{
		{Alias: "customer_name", Expr: "MantPensNombre + ' ' + MantPensPriApe + ' ' + MantPensSegApe", Type: domain.TypeString},
		{Alias: "customer_primary_address", Expr: "MantPensDir", Type: domain.TypeString},
	}
	return domain.CatalogEntry{
		Doctype:    "Customer",
		StorageKey: "SNOMANTPENS",
		Module:     "Selling",
		Mapping:    mapping,
		Query: `SELECT ` + mapping.SelectClause() + `
    FROM SNOMANTPENS
    WHERE MantPensDesactivada = '' OR MantPensDesactivada IS NULL`,
	}
}

func pieceRates() domain.CatalogEntry {
	mapping := domain.FieldMapping{
		{Alias: "item_name", Expr: "TasaDDescripcion", Type: domain.TypeString},
		{Alias: "price_list_rate", Expr: "TasaDTasa", Type: domain.TypeFloat},
	}
	return domain.CatalogEntry{
		Doctype:    "Item Price",
		StorageKey: "SNONOMENCLADORTASASDESTAJO",
		Module:     "Stock",
		Mapping:    mapping,
		// 可疑：!= '' 的极性与其余条目相反，疑似会选中"已停用"的记录。
		// 与真实数据核对前保持源系统原状。
		Query: `SELECT ` + mapping.SelectClause() + `
    FROM SNONOMENCLADORTASASDESTAJO
    WHERE TasaDesactivado != '' OR TasaDesactivado IS NULL`,
	}
}

func employeeGroups() domain.CatalogEntry {
	mapping := domain.FieldMapping{
		{Alias: "employee_group_name", Expr: "ColecDescripcion", Type: domain.TypeString},
	}
	return domain.CatalogEntry{
		Doctype:    "Employee Group",
		StorageKey: "SNONOMENCLADORCOLECTIVOS",
		Module:     "Setup",
		Mapping:    mapping,
		// 可疑：!= '' OR IS NOT NULL 按逻辑选的是"已停用"的记录。
		// 与真实数据核对前保持源系统原状。
		Query: `SELECT ` + mapping.SelectClause() + `
    FROM SNONOMENCLADORCOLECTIVOS
    WHERE ColecDesactivado != '' OR ColecDesactivado IS NOT NULL`,
	}
}

func departments() domain.CatalogEntry {
	mapping := domain.FieldMapping{
		{Alias: "parent_department", Expr: "CASE WHEN s1.sareaDescrip IS NULL THEN NULL ELSE s.AreaDescrip END", Type: domain.TypeString},
		{Alias: "department_name", Expr: "CASE WHEN s1.sareaDescrip IS NULL THEN s.AreaDescrip ELSE s1.sareaDescrip END", Type: domain.TypeString},
	}
	return domain.CatalogEntry{
		Doctype:    "Department",
		StorageKey: "SMGAREASUBAREA",
		Module:     "Setup",
		Mapping:    mapping,
		Query: `SELECT ` + mapping.SelectClause() + `
    FROM S5Principal.dbo.SMGAREASUBAREA s
    LEFT JOIN S5Principal.dbo.SMGAREASUBAREA1 s1 ON s.AreaCodigo = s1.AreaCodigo`,
	}
}
