// file: cmd/bridge/main.go

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"SiscontBridge/internal/adapter/datasource/sqlserver"
	"SiscontBridge/internal/catalog"
	"SiscontBridge/internal/export"
	"SiscontBridge/internal/observe"
	"SiscontBridge/internal/service"
	"SiscontBridge/internal/sink"
	"SiscontBridge/internal/transport/http/router"

	"github.com/spf13/viper"
)

const version = "v0.3.0"

type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

type SQLConfig struct {
	Driver string `mapstructure:"driver"`
	User   string `mapstructure:"user"`
	Port   int    `mapstructure:"port"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	SQL    SQLConfig    `mapstructure:"sql"`
	Output OutputConfig `mapstructure:"output"`
}

func main() {
	// 在日志系统完全初始化前，使用标准 log
	log.Printf("SiscontBridge %s 正在启动...", version)

	exePath, err := os.Executable()
	if err != nil {
		log.Fatalf("CRITICAL: 无法获取可执行文件路径: %v", err)
	}
	rootDir := filepath.Dir(filepath.Dir(exePath))

	viper.SetConfigFile(filepath.Join(rootDir, "configs", "config.yaml"))
	viper.SetEnvPrefix("SISCONT")
	viper.AutomaticEnv()
	viper.SetDefault("server.port", 8230)
	viper.SetDefault("server.log_level", "INFO")
	viper.SetDefault("sql.driver", "sqlserver")
	viper.SetDefault("sql.user", "sa")
	viper.SetDefault("sql.port", 1433)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			log.Printf("ℹ️  未找到配置文件，使用默认值与环境变量。")
		} else {
			log.Fatalf("CRITICAL: 读取配置文件失败: %v", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("CRITICAL: 解析配置到结构体失败: %v", err)
	}

	observe.InitLogger(config.Server.LogLevel)
	slog.Info("SiscontBridge starting up", "version", version)

	outputDir, err := resolveOutputDir(config.Output.Dir, rootDir)
	if err != nil {
		slog.Error("解析输出目录失败", "error", err)
		os.Exit(1)
	}
	slog.Info("JSON 输出目录", "path", outputDir)

	cat := catalog.New()
	if err := cat.Validate(); err != nil {
		slog.Error("导出目录校验失败", "error", err)
		os.Exit(1)
	}
	slog.Info("服务层: 导出目录构建完成", "entries", len(cat.Names()))

	deps := router.Dependencies{
		Catalog:   cat,
		Exporter:  export.New(sink.New(outputDir)),
		Inspector: service.NewInspector(5 * time.Minute),
		Manager:   sqlserver.NewManager(config.SQL.Driver, config.SQL.User, config.SQL.Port),
		Limiter:   router.NewIPRateLimiter(2, 5),
	}

	httpRouter := router.New(deps)
	slog.Info("传输层: HTTP 路由器创建完成。")

	observe.Register()
	slog.Info("监控: metrics 已注册。")

	addr := fmt.Sprintf(":%d", config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: httpRouter,
	}

	go func() {
		slog.Info("SiscontBridge 启动成功，开始监听HTTP请求...", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP服务启动失败", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("收到停机信号，准备优雅关闭...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("HTTP服务优雅关闭失败", "error", err)
		os.Exit(1)
	}

	slog.Info("HTTP服务已成功关闭。")
	slog.Info("程序即将退出。")
}

// resolveOutputDir 决定 JSON 文件落到哪里：
// 环境变量 SISCONT_OUTPUT_DIR（经 viper 映射到 output.dir）优先，
// 否则回落到应用根目录下的默认目录，按需创建。
func resolveOutputDir(configured, rootDir string) (string, error) {
	dir := configured
	if dir == "" {
		dir = filepath.Join(rootDir, "archivos_json")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("创建输出目录 '%s' 失败: %w", dir, err)
	}
	return dir, nil
}
