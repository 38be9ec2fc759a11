// Package main 提供 ignorance-server 命令行入口
//
// 启动一个回显服务器：每个连接收到的消息按原通道发回给发送方。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	ignorance "github.com/dragonslaya84/IgnoranceNG"
	"github.com/dragonslaya84/IgnoranceNG/config"
	"github.com/dragonslaya84/IgnoranceNG/pkg/lib/log"
)

var logger = log.Logger("ignorance/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
//   命令行参数：运行时覆盖 / 快速测试
//   JSON 配置文件：持久化配置
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	configFile  = flag.String("config", "", "配置文件路径（JSON）")
	port        = flag.Int("port", 7777, "监听端口")
	bind        = flag.String("bind", "", "绑定地址（为空时绑定所有接口）")
	debug       = flag.Bool("debug", false, "启用调试诊断")
	metricsAddr = flag.String("metrics-addr", "", "Prometheus 指标监听地址（如 :9100）")
	showVersion = flag.Bool("version", false, "显示版本信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Println(ignorance.VersionInfo())
		return nil
	}

	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	srv, err := ignorance.New(ignorance.WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("创建服务器失败: %w", err)
	}
	defer func() { _ = srv.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("📦 %s\n", ignorance.VersionInfo())
	logger.Info("启动服务器", "version", ignorance.Version, "commit", ignorance.GitCommit)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	fmt.Printf("服务器已启动: %s（按 Ctrl+C 退出）\n", srv.Addr())

	if addr := cfg.Metrics.ListenAddr; addr != "" {
		metricsSrv := serveMetrics(addr, srv)
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = metricsSrv.Shutdown(shutdownCtx)
		}()
	}

	acceptLoop(ctx, srv)

	fmt.Println("\n正在关闭服务器...")
	return srv.Close()
}

// buildConfig 构建配置
//
// 配置优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（IGNORANCE_* 前缀）
//  3. 配置文件
//  4. 默认值
func buildConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)

	if isFlagSet("port") {
		cfg.Server = cfg.Server.WithPort(*port)
	}
	if isFlagSet("bind") {
		if *bind == "" {
			cfg.Server = cfg.Server.WithBindAll(true)
		} else {
			cfg.Server = cfg.Server.WithBindAddress(*bind)
		}
	}
	if isFlagSet("debug") {
		cfg.Diagnostics.DebugEnabled = *debug
	}
	if isFlagSet("metrics-addr") {
		cfg.Metrics.ListenAddr = *metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFlagSet 检查命令行参数是否被显式设置
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// serveMetrics 在 addr 上提供 /metrics
func serveMetrics(addr string, srv *ignorance.Server) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(srv.Gatherer(), promhttp.HandlerOpts{}))

	hs := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("指标服务异常退出", "addr", addr, "error", err)
		}
	}()
	logger.Info("指标服务已启动", "addr", addr)
	return hs
}

// acceptLoop 接受连接直到 ctx 取消
func acceptLoop(ctx context.Context, srv *ignorance.Server) {
	for {
		conn, err := srv.Accept(ctx)
		if err != nil {
			return
		}
		logger.Info("新连接", "peer", conn.ID(), "remote", conn.RemoteAddr())
		go echo(ctx, conn)
	}
}

// echo 将收到的消息按原通道发回
func echo(ctx context.Context, conn *ignorance.Connection) {
	for {
		msg, err := conn.Receive(ctx)
		if err != nil {
			logger.Info("连接结束", "peer", conn.ID(), "reason", conn.DisconnectReason())
			return
		}
		if err := conn.Send(msg.ChannelID, msg.Data); err != nil {
			logger.Warn("回显失败", "peer", conn.ID(), "channel", msg.ChannelID, "error", err)
		}
	}
}
