// file: internal/catalog/paginated.go
//
// 大表走分页导出路径的条目：先计数，零结果短路；
// 主查询由映射投影 + BaseFrom + OrderBy 拼装。
package catalog

import (
	"SiscontBridge/internal/core/domain"
)

// vacationSubledger 导出休假submayor期初余额
func vacationSubledger() domain.CatalogEntry {
	return domain.CatalogEntry{
		Doctype:    "Employee Opening Vacation Subledger",
		StorageKey: "SNOSMVACACIONES",
		Module:     "Cuba",
		Mapping: domain.FieldMapping{
			{Alias: "initial_balance_in_amount", Expr: "MAX(s.SMVacSaldoInicialI)", Type: domain.TypeFloat},
			{Alias: "initial_balance_in_days", Expr: "MAX(s.SMVacSaldoInicialD)", Type: domain.TypeFloat},
			{Alias: "employee", Expr: "MAX(s2.CPTrabNombre + ' ' + s2.CPTrabPriApellido + ' ' + s2.CPTrabSegApellido)", Type: domain.TypeString},
			{Alias: "expediente_laboral", Expr: "MAX(s2.CPTrabExp)", Type: domain.TypeString},
			{Alias: "SMVacId", Expr: "MAX(s.SMVacId)", Type: domain.TypeInteger},
		},
		BaseFrom: `FROM S5Principal.dbo.SNOSMVACACIONES s
    JOIN S5Principal.dbo.SCPTRABAJADORES s2
        ON s.CPTrabConsecutivoID = s2.CPTrabConsecutivoID
    WHERE (s.SMVacDesactivado = '' AND s2.TrabDesactivado = '')
        AND s.SMVacSaldoInicialD > 0
    GROUP BY s.CPTrabConsecutivoID`,
		OrderBy: "ORDER BY MAX(s.SMVacId) DESC",
	}
}

// unclaimedSalaries 导出未领工资submayor期初
func unclaimedSalaries() domain.CatalogEntry {
	return domain.CatalogEntry{
		Doctype:    "Opening of the Unclaimed Salary Subledger",
		StorageKey: "SNOSMREINTEGRONR",
		Module:     "Cuba",
		Mapping: domain.FieldMapping{
			{Alias: "employee", Expr: "s2.CPTrabNombre + ' ' + s2.CPTrabPriApellido + ' ' + s2.CPTrabSegApellido", Type: domain.TypeString},
			{Alias: "amount", Expr: "s.SMrnrImporte", Type: domain.TypeFloat},
			{Alias: "reimbursement_date", Expr: "s.SMrnrFecha", Type: domain.TypeDate},
		},
		BaseFrom: `FROM SNOSMREINTEGRONR s JOIN SCPTRABAJADORES s2 ON
    s.CPTrabConsecutivoID = s2.CPTrabConsecutivoID
    WHERE (s.SMrnrDebito = 0 AND s.SMrnrIdenPaga IS NULL) AND s2.TrabDesactivado = ''`,
		OrderBy: "ORDER BY s.SMrnrIdentificador",
	}
}

// CorteEntry 构建按年份界定的 sc408 corte 聚合条目。
// 年份作为绑定参数传入，不再拼进 SQL 文本（源系统用的是字符串插值）。
func CorteEntry(currentYear int) domain.CatalogEntry {
	previousYear := currentYear - 1
	return domain.CatalogEntry{
		Doctype:    "sc408 model",
		StorageKey: "SNOMODSC408CORTE",
		Module:     "Cuba",
		Mapping: domain.FieldMapping{
			{Alias: "employee", Expr: "s2.CPTrabConsecutivoID", Type: domain.TypeString},
			{Alias: "employee_name", Expr: "MAX(s2.CPTrabNombre + ' ' + s2.CPTrabPriApellido + ' ' + s2.CPTrabSegApellido)", Type: domain.TypeString},
			{Alias: "year_to_date", Expr: "MAX(s.sccorteanoCalendario)", Type: domain.TypeInteger},
			{Alias: "month_to_date", Expr: "MAX(s.sccorteMesCalendario)", Type: domain.TypeInteger},
			{Alias: "worked_days", Expr: "SUM(s.sccorteSalarioTiempoDias)", Type: domain.TypeFloat},
			{Alias: "formed_salary", Expr: "SUM(s.sccorteSalarioTiempoImporte)", Type: domain.TypeFloat},
			{Alias: "total_vacations_accrued", Expr: "SUM(s.sccorteVacacionesDias)", Type: domain.TypeFloat},
			{Alias: "amount_for_accrued_vacations", Expr: "SUM(s.sccorteVacacionesImporte)", Type: domain.TypeFloat},
			{Alias: "total_of_subsidies_days", Expr: "SUM(s.sccorteSubsidioDias)", Type: domain.TypeFloat},
			{Alias: "total_amount_of_subsidies", Expr: "SUM(s.sccorteSubsidioImporte)", Type: domain.TypeFloat},
		},
		Args: []any{currentYear, previousYear},
		CountQuery: `SELECT COUNT(DISTINCT s2.CPTrabConsecutivoID)
    FROM SNOMODSC408CORTE s
    JOIN SCPTRABAJADORES s2 ON s.CPTrabConsecutivoID = s2.CPTrabConsecutivoID
    WHERE (s2.TrabDesactivado = '' OR s2.TrabDesactivado IS NULL)
      AND s.sccorteanoCalendario IN (?, ?)`,
		BaseFrom: `FROM SNOMODSC408CORTE s
    JOIN SCPTRABAJADORES s2 ON s.CPTrabConsecutivoID = s2.CPTrabConsecutivoID
    WHERE (s2.TrabDesactivado = '' OR s2.TrabDesactivado IS NULL)
      AND s.sccorteanoCalendario IN (?, ?)
    GROUP BY s2.CPTrabConsecutivoID`,
		OrderBy: "ORDER BY s2.CPTrabConsecutivoID",
	}
}
