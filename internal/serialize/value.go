// Package serialize file: internal/serialize/value.go
//
// 把数据库驱动返回的原始单元格值按声明的语义类型转换为 JSON 安全值
// (null / bool / number / string)。单个单元格转换失败只记 warning 并
// 置 null，绝不中断整批导出。
package serialize

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"time"

	"SiscontBridge/internal/core/domain"

	"github.com/shopspring/decimal"
)

// truthyTokens 是 boolean 类型唯一认可的真值 token 集合。
// 注意：没有对应的假值集合——不在集合内的任何文本一律按 false 处理。
// 这是源数据的领域行为（垃圾数据默认为未激活），不要"修复"成对称表。
var truthyTokens = map[string]struct{}{
	"1": {}, "S": {}, "TRUE": {}, "Y": {}, "YES": {},
}

// sentinelYear 是 SQL Server datetime 的最小年份，
// 源库用它表示 "无日期"，序列化为 null。
const sentinelYear = 1753

// Value 按语义类型序列化一个原始单元格值。
//
// 规则优先级：空值归一化 → 定点数特例 → 按类型分派。
// 未知语义类型返回 null（静默策略，不报错）。
func Value(raw any, t domain.SemanticType) any {
	// 1. 空值归一化：数据库 NULL、纯空白文本、空序列/空映射 → null
	if isEmpty(raw) {
		return nil
	}

	// 2. 高精度定点数来源：保持精确十进制表示，不走浮点
	if d, ok := raw.(decimal.Decimal); ok {
		switch t {
		case domain.TypeString:
			return d.String()
		case domain.TypeNumeric, domain.TypeFloat, domain.TypeAuto:
			return d.InexactFloat64()
		case domain.TypeInteger:
			return d.IntPart()
		default:
			return d
		}
	}

	// 驱动把 DECIMAL/CHAR 一律交成 []byte，先还原成文本
	if b, ok := raw.([]byte); ok {
		raw = string(b)
	}

	// 3. 按声明类型分派
	switch t {
	case domain.TypeNumeric:
		return asNumeric(raw)
	case domain.TypeInteger:
		return asInteger(raw)
	case domain.TypeFloat, domain.TypeCurrency:
		return asFloat(raw)
	case domain.TypeBoolean:
		return asBoolean(raw)
	case domain.TypeDate:
		return asDate(raw)
	case domain.TypeDecimal:
		// 声明为 decimal 但驱动给的不是定点数：按精确文本处理
		return asNumeric(raw)
	case domain.TypeString:
		return asString(raw)
	case domain.TypeAuto:
		return asAuto(raw)
	}
	return nil
}

// isEmpty 判定空值归一化规则是否命中
func isEmpty(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []byte:
		return strings.TrimSpace(string(v)) == ""
	}
	// 空序列 / 空映射（极少出现，透传路径可能带进来）
	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map {
		return rv.Len() == 0
	}
	return false
}

// warnNil 记录单元格级转换失败并返回 null
func warnNil(raw any, t domain.SemanticType, reason string) any {
	slog.Warn("⚠️ 单元格序列化失败，已置 null", "value", raw, "type", string(t), "reason", reason)
	return nil
}

// asNumeric 数字原样保留（int 还是 int，float 还是 float）；
// 文本按有无小数点决定 float/int
func asNumeric(raw any) any {
	switch v := raw.(type) {
	case int, int32, int64, float32, float64:
		return v
	case string:
		s := strings.TrimSpace(v)
		if strings.Contains(s, ".") {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return warnNil(raw, domain.TypeNumeric, err.Error())
			}
			return f
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return warnNil(raw, domain.TypeNumeric, err.Error())
		}
		return n
	}
	return warnNil(raw, domain.TypeNumeric, "不支持的原始类型")
}

func asInteger(raw any) any {
	switch v := raw.(type) {
	case bool:
		if v {
			return int64(1)
		}
		return int64(0)
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float32:
		return int64(v)
	case float64:
		return int64(v) // 截断取整
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return warnNil(raw, domain.TypeInteger, err.Error())
		}
		return n
	}
	return warnNil(raw, domain.TypeInteger, "不支持的原始类型")
}

func asFloat(raw any) any {
	switch v := raw.(type) {
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return warnNil(raw, domain.TypeFloat, err.Error())
		}
		return f
	}
	return warnNil(raw, domain.TypeFloat, "不支持的原始类型")
}

// asBoolean 数字只有恰好 1 算 true；文本大小写无关地比对真值 token 集合
func asBoolean(raw any) any {
	switch v := raw.(type) {
	case bool:
		return v
	case int:
		return v == 1
	case int32:
		return v == 1
	case int64:
		return v == 1
	case float32:
		return v == 1
	case float64:
		return v == 1
	}
	token := strings.ToUpper(strings.TrimSpace(asString(raw)))
	_, ok := truthyTokens[token]
	return ok
}

func asDate(raw any) any {
	if ts, ok := raw.(time.Time); ok {
		if ts.Year() == sentinelYear {
			return nil
		}
		return ts.Format("2006-01-02T15:04:05")
	}
	return asString(raw)
}

func asString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

// asAuto 无映射透传路径的推断顺序：
// 真值 token → 数字 → 日期 → 去空白文本
func asAuto(raw any) any {
	switch v := raw.(type) {
	case bool:
		return v
	case int, int32, int64, float32, float64:
		return v
	case time.Time:
		return asDate(v)
	}
	s := strings.TrimSpace(asString(raw))
	if _, ok := truthyTokens[strings.ToUpper(s)]; ok {
		return true
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
