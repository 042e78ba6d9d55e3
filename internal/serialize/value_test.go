// file: internal/serialize/value_test.go

package serialize

import (
	"testing"
	"time"

	"SiscontBridge/internal/core/domain"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// 空值归一化：所有语义类型统一
// -----------------------------------------------------------------------------

func TestValue_EmptyNormalization(t *testing.T) {
	allTypes := []domain.SemanticType{
		domain.TypeString, domain.TypeInteger, domain.TypeFloat, domain.TypeNumeric,
		domain.TypeBoolean, domain.TypeDate, domain.TypeCurrency, domain.TypeDecimal,
		domain.TypeAuto,
	}
	emptyInputs := []any{nil, "", "   ", "\t\n", []byte(""), []byte("  "), []any{}, map[string]any{}}

	for _, typ := range allTypes {
		for _, in := range emptyInputs {
			if got := Value(in, typ); got != nil {
				t.Errorf("空值输入 %#v (type=%s) 应归一化为 null, got=%#v", in, typ, got)
			}
		}
	}
}

// -----------------------------------------------------------------------------
// boolean：真值 token 集合之外一律 false，没有对称的假值集合
// -----------------------------------------------------------------------------

func TestValue_BooleanAsymmetry(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{"1", true},
		{"S", true},
		{"s", true}, // 大小写无关
		{"TRUE", true},
		{"true", true},
		{"Y", true},
		{"YES", true},
		{" yes ", true}, // 去空白后比对
		{int64(1), true},
		{float64(1), true},
		{true, true},
		{false, false},
		{int64(0), false},
		{int64(2), false},    // 只有恰好 1 算 true
		{float64(1.5), false},
		{"0", false},
		{"N", false},
		{"no", false},
		{"FALSE", false}, // 不在真值集合即 false，没有假值集合
		{"basura", false},
	}
	for _, c := range cases {
		got := Value(c.in, domain.TypeBoolean)
		if got != c.want {
			t.Errorf("boolean(%#v) = %#v, want %v", c.in, got, c.want)
		}
	}
}

// -----------------------------------------------------------------------------
// numeric / integer / float / currency
// -----------------------------------------------------------------------------

func TestValue_Numeric(t *testing.T) {
	// 文本按有无小数点决定 int / float
	if got := Value("123", domain.TypeNumeric); got != int64(123) {
		t.Errorf("numeric(\"123\") = %#v, want int64(123)", got)
	}
	if got := Value("123.45", domain.TypeNumeric); got != float64(123.45) {
		t.Errorf("numeric(\"123.45\") = %#v, want 123.45", got)
	}
	// 数字原样保留
	if got := Value(int64(7), domain.TypeNumeric); got != int64(7) {
		t.Errorf("numeric(int64(7)) = %#v", got)
	}
	if got := Value(float64(7.5), domain.TypeNumeric); got != float64(7.5) {
		t.Errorf("numeric(7.5) = %#v", got)
	}
	// 垃圾文本 → null，不中断
	if got := Value("abc", domain.TypeNumeric); got != nil {
		t.Errorf("numeric(\"abc\") 应为 null, got=%#v", got)
	}
}

func TestValue_Integer(t *testing.T) {
	if got := Value("42", domain.TypeInteger); got != int64(42) {
		t.Errorf("integer(\"42\") = %#v", got)
	}
	// 带小数点的文本对 integer 是转换失败 → null
	if got := Value("123.45", domain.TypeInteger); got != nil {
		t.Errorf("integer(\"123.45\") 应为 null, got=%#v", got)
	}
	// 浮点数值截断取整
	if got := Value(float64(9.99), domain.TypeInteger); got != int64(9) {
		t.Errorf("integer(9.99) = %#v, want 9", got)
	}
	// 布尔转 1/0
	if got := Value(true, domain.TypeInteger); got != int64(1) {
		t.Errorf("integer(true) = %#v, want 1", got)
	}
	if got := Value("abc", domain.TypeInteger); got != nil {
		t.Errorf("integer(\"abc\") 应为 null, got=%#v", got)
	}
}

func TestValue_FloatAndCurrency(t *testing.T) {
	for _, typ := range []domain.SemanticType{domain.TypeFloat, domain.TypeCurrency} {
		if got := Value("12.50", typ); got != float64(12.5) {
			t.Errorf("%s(\"12.50\") = %#v", typ, got)
		}
		if got := Value(int64(3), typ); got != float64(3) {
			t.Errorf("%s(3) = %#v, want 3.0", typ, got)
		}
		if got := Value("no-es-numero", typ); got != nil {
			t.Errorf("%s(垃圾文本) 应为 null, got=%#v", typ, got)
		}
	}
}

// -----------------------------------------------------------------------------
// 定点数：string 语义保持精确文本，numeric 语义转 float
// -----------------------------------------------------------------------------

func TestValue_Decimal(t *testing.T) {
	d := decimal.RequireFromString("123.45")

	if got := Value(d, domain.TypeString); got != "123.45" {
		t.Errorf("decimal→string 应保持精确表示 \"123.45\", got=%#v", got)
	}
	if got := Value(d, domain.TypeNumeric); got != float64(123.45) {
		t.Errorf("decimal→numeric = %#v, want 123.45", got)
	}
	if got := Value(d, domain.TypeInteger); got != int64(123) {
		t.Errorf("decimal→integer = %#v, want 123", got)
	}

	// 驱动交成 []byte 的 DECIMAL，声明 decimal 语义时按精确文本走 numeric 规则
	if got := Value([]byte("0.05"), domain.TypeDecimal); got != float64(0.05) {
		t.Errorf("decimal([]byte \"0.05\") = %#v", got)
	}
}

// -----------------------------------------------------------------------------
// date：1753 哨兵年 → null
// -----------------------------------------------------------------------------

func TestValue_Date(t *testing.T) {
	ts := time.Date(2023, 5, 17, 14, 30, 0, 0, time.UTC)
	if got := Value(ts, domain.TypeDate); got != "2023-05-17T14:30:00" {
		t.Errorf("date 格式错误: %#v", got)
	}

	sentinel := time.Date(1753, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := Value(sentinel, domain.TypeDate); got != nil {
		t.Errorf("1753 哨兵日期应序列化为 null, got=%#v", got)
	}

	// 非时间值按字符串兜底
	if got := Value("2023-01-01", domain.TypeDate); got != "2023-01-01" {
		t.Errorf("date(文本) = %#v", got)
	}
}

// -----------------------------------------------------------------------------
// string / auto / 未知类型
// -----------------------------------------------------------------------------

func TestValue_String(t *testing.T) {
	if got := Value("  hola  ", domain.TypeString); got != "  hola  " {
		t.Errorf("string 不应去除首尾空白: %#v", got)
	}
	if got := Value([]byte("texto"), domain.TypeString); got != "texto" {
		t.Errorf("string([]byte) = %#v", got)
	}
	ts := time.Date(2023, 5, 17, 14, 30, 0, 0, time.UTC)
	if got := Value(ts, domain.TypeString); got != "2023-05-17 14:30:00" {
		t.Errorf("string(time) = %#v", got)
	}
}

func TestValue_Auto(t *testing.T) {
	cases := []struct {
		in   any
		want any
	}{
		{"YES", true},       // 真值 token 优先
		{"42", int64(42)},   // 整数
		{"3.14", 3.14},      // 浮点
		{" texto ", "texto"}, // 去空白文本兜底
		{int64(5), int64(5)},
		{true, true},
	}
	for _, c := range cases {
		if got := Value(c.in, domain.TypeAuto); got != c.want {
			t.Errorf("auto(%#v) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

func TestValue_UnknownType(t *testing.T) {
	// 未知语义类型静默返回 null，不 panic 不报错
	if got := Value("algo", domain.SemanticType("misterio")); got != nil {
		t.Errorf("未知类型应返回 null, got=%#v", got)
	}
}
