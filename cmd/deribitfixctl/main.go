// Command deribitfixctl is an interactive console for driving a Deribit FIX
// session: connect, submit orders and quotes, subscribe to market data, and
// inspect what the session has seen so far.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joaquinbejar/deribit-fix-sub001/client"
	"github.com/joaquinbejar/deribit-fix-sub001/config"
	"github.com/joaquinbejar/deribit-fix-sub001/session"
	"github.com/joaquinbejar/deribit-fix-sub001/transport"
	"github.com/sirupsen/logrus"
)

var version = "dev"

func main() {
	host := flag.String("host", envOr("DERIBIT_FIX_HOST", "test.deribit.com"), "FIX gateway host")
	port := flag.Int("port", envIntOr("DERIBIT_FIX_PORT", 9881), "FIX gateway port")
	useTLS := flag.Bool("tls", true, "wrap the TCP connection in TLS")
	senderCompID := flag.String("sender", os.Getenv("DERIBIT_FIX_SENDER"), "SenderCompID")
	targetCompID := flag.String("target", envOr("DERIBIT_FIX_TARGET", "DERIBITSERVER"), "TargetCompID")
	apiKey := flag.String("api-key", os.Getenv("DERIBIT_FIX_API_KEY"), "Deribit FIX API access key")
	apiSecret := flag.String("api-secret", os.Getenv("DERIBIT_FIX_API_SECRET"), "Deribit FIX API secret key")
	statePath := flag.String("state", os.Getenv("DERIBIT_FIX_STATE"), "SQLite path for persisted sequence/retained state (empty = in-memory)")
	logLevel := flag.String("log-level", envOr("DERIBIT_FIX_LOG_LEVEL", "info"), "logrus level: debug, info, warn, error")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("deribitfixctl", version)
		return
	}

	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(*logLevel); err == nil {
		logger.SetLevel(lvl)
	}
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Config{
		Host:         *host,
		Port:         *port,
		UseTLS:       *useTLS,
		SenderCompID: *senderCompID,
		TargetCompID: *targetCompID,
		APIKey:       *apiKey,
		APISecret:    *apiSecret,
		HeartBtInt:   config.DefaultHeartBtInt,

		ConnectTimeout:   10 * time.Second,
		LogonTimeout:     10 * time.Second,
		LogoutTimeout:    5 * time.Second,
		TestRequestGrace: 10 * time.Second,

		MaxFrameSize: 1 << 20,
		StatePath:    *statePath,

		Reconnect: config.ReconnectConfig{
			InitialInterval: 500 * time.Millisecond,
			Multiplier:      1.5,
			MaxInterval:     30 * time.Second,
			MaxElapsedTime:  0,
		},
	}

	if cfg.SenderCompID == "" {
		fmt.Fprintln(os.Stderr, "deribitfixctl: -sender (or DERIBIT_FIX_SENDER) is required")
		os.Exit(1)
	}

	dialer := transport.TCPDialer{Config: transport.TCPConfig{
		Host:           cfg.Host,
		Port:           cfg.Port,
		UseTLS:         cfg.UseTLS,
		TLSConfig:      cfg.TLSConfig,
		MaxFrameSize:   cfg.MaxFrameSize,
		ConnectTimeout: cfg.ConnectTimeout,
	}}

	cl := client.New(cfg, dialer, session.DefaultSHA256Auth{}, config.NewLogrusLogger(logger))

	app := newApp(cl, cfg)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout+cfg.LogonTimeout)
	defer cancel()
	if err := app.client.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "deribitfixctl: connect failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Connected! Logged in to", cfg.TargetCompID)

	go app.consumeEvents()
	app.runREPL()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(v, "%d", &parsed); err != nil {
		return fallback
	}
	return parsed
}
