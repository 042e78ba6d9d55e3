// Package observe 暴露 Prometheus 指标
package observe

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 指标定义
var (
	ExportTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "siscont_exports_total",
		Help: "导出请求总数",
	})
	ExportFail = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "siscont_exports_failed",
		Help: "导出失败数",
	})
	RowsExported = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "siscont_rows_exported_total",
		Help: "累计导出的记录行数",
	})
)

// Register 必须在 main 调用一次
func Register() {
	prometheus.MustRegister(ExportTotal, ExportFail, RowsExported)
}

// Handler 返回 /metrics 的 HTTP 处理器
func Handler() http.Handler { return promhttp.Handler() }
