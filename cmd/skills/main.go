/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/opensearch-project/skills-go/pkg/appconfig"
	"github.com/opensearch-project/skills-go/pkg/logger"
	"github.com/opensearch-project/skills-go/pkg/searchclient"
	"github.com/opensearch-project/skills-go/pkg/tool"
)

// skills entry
func main() {
	if err := bootstrap(); err != nil {
		fmt.Printf("bootstrap error %+v\n", err)
		os.Exit(1)
	}
}

func bootstrap() error {
	if err := appconfig.SetupAppConfig(); err != nil {
		return err
	}
	cfg := appconfig.StdConfig

	if !appconfig.IsDev() {
		logger.SetupFileLogger(cfg.LogDir, true)
	}

	client := searchclient.New(searchclient.Config{
		Addr:               cfg.Backend.Addr,
		Username:           cfg.Backend.Username,
		Password:           cfg.Backend.Password,
		Secure:             cfg.Backend.Secure,
		InsecureSkipVerify: cfg.Backend.InsecureSkipVerify,
		Timeout:            time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
		RatePerSecond:      cfg.Backend.RatePerSecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := client.WaitReady(ctx); err != nil {
		return err
	}

	registry := tool.NewRegistry()
	logPattern, err := tool.NewLogPatternTool(client, cfg.Tools.LogPattern)
	if err != nil {
		return err
	}
	if err := registry.Register(logPattern); err != nil {
		return err
	}

	logger.Infof("[bootstrap] serving on %s, tools=%v", cfg.Server.Listen, registry.Names())
	http.Handle("/api/tool/", registry.Handler())
	http.Handle("/api/health", registry.Handler())
	return http.ListenAndServe(cfg.Server.Listen, nil)
}
