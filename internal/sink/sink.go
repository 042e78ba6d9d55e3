// Package sink file: internal/sink/sink.go
//
// Json Sink：把一批导出记录按固定信封落盘。
// 路径约定 <dir>/<storage_key>.json，重复导出同一 storage_key 直接覆盖。
package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"SiscontBridge/internal/core/domain"
	"SiscontBridge/internal/core/port"
)

// Sink 持有进程级的输出目录配置
type Sink struct {
	Dir string
}

func New(dir string) *Sink {
	return &Sink{Dir: dir}
}

// Write 序列化信封 {doctype, data} 并写入 <Dir>/<storageKey>.json。
// 先写临时文件再 rename，保证磁盘上要么是完整信封要么什么都没有。
// 返回最终写入的路径。
func (s *Sink) Write(storageKey, doctype string, records []domain.Record) (string, error) {
	if storageKey == "" {
		return "", port.ErrStorageKeyRequired
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		slog.Error("❌ 创建输出目录失败", "dir", s.Dir, "error", err)
		return "", &port.PersistError{StorageKey: storageKey, Err: err}
	}

	envelope := domain.ExportResult{Doctype: doctype, Data: records}
	if envelope.Data == nil {
		envelope.Data = []domain.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // 非 ASCII 字符原样保留
	enc.SetIndent("", "    ")
	if err := enc.Encode(envelope); err != nil {
		return "", &port.PersistError{StorageKey: storageKey, Err: err}
	}

	outputPath := filepath.Join(s.Dir, storageKey+".json")
	tmp, err := os.CreateTemp(s.Dir, storageKey+".*.tmp")
	if err != nil {
		slog.Error("❌ 创建临时文件失败", "dir", s.Dir, "error", err)
		return "", &port.PersistError{StorageKey: storageKey, Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		slog.Error("❌ 写入临时文件失败", "path", tmpPath, "error", err)
		return "", &port.PersistError{StorageKey: storageKey, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", &port.PersistError{StorageKey: storageKey, Err: err}
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		slog.Error("❌ 替换输出文件失败", "path", outputPath, "error", err)
		return "", &port.PersistError{StorageKey: storageKey, Err: err}
	}

	slog.Info(fmt.Sprintf("✅ JSON 已保存: %s", outputPath))
	return outputPath, nil
}
