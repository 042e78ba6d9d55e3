// Package domain file: internal/core/domain/mapping.go
package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SemanticType 是字段声明的输出语义类型，驱动序列化规则。
// 与数据库列的物理 SQL 类型是两回事。
type SemanticType string

const (
	TypeString   SemanticType = "string"
	TypeInteger  SemanticType = "integer"
	TypeFloat    SemanticType = "float"
	TypeNumeric  SemanticType = "numeric"
	TypeBoolean  SemanticType = "boolean"
	TypeDate     SemanticType = "date"
	TypeCurrency SemanticType = "currency"
	TypeDecimal  SemanticType = "decimal"
	// TypeAuto 表示 "按原始值形状推断"，精度最低，
	// 仅在没有显式映射的透传查询里使用。
	TypeAuto SemanticType = "auto"
)

// Field 把一个输出别名绑定到源 SQL 表达式和语义类型
type Field struct {
	Alias string       `json:"alias" validate:"required"`
	Expr  string       `json:"expr" validate:"required"`
	Type  SemanticType `json:"type" validate:"oneof=string integer float numeric boolean date currency decimal auto"`
}

// FieldMapping 是有序的字段映射序列。
// 在目录构建期创建一次，运行期不再修改。
type FieldMapping []Field

var validate = validator.New()

// Validate 检查别名唯一性与语义类型合法性
func (m FieldMapping) Validate() error {
	seen := make(map[string]struct{}, len(m))
	for i, f := range m {
		if err := validate.Struct(f); err != nil {
			return fmt.Errorf("字段映射第 %d 项 (alias=%q) 非法: %w", i, f.Alias, err)
		}
		if _, dup := seen[f.Alias]; dup {
			return fmt.Errorf("字段映射中别名 %q 重复", f.Alias)
		}
		seen[f.Alias] = struct{}{}
	}
	return nil
}

// SelectClause 按声明顺序构建 SELECT 投影列表: "expr AS alias, ..."
func (m FieldMapping) SelectClause() string {
	parts := make([]string, 0, len(m))
	for _, f := range m {
		parts = append(parts, f.Expr+" AS "+f.Alias)
	}
	return strings.Join(parts, ", ")
}

// TypePlan 返回 alias → 语义类型 的查找表，供序列化阶段 O(1) 查询
func (m FieldMapping) TypePlan() map[string]SemanticType {
	plan := make(map[string]SemanticType, len(m))
	for _, f := range m {
		plan[f.Alias] = f.Type
	}
	return plan
}
