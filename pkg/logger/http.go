/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

package logger

import (
	"net/http"
	"time"
)

func registerHttpHandler() {
	http.HandleFunc("/api/log/debug/start", func(writer http.ResponseWriter, request *http.Request) {
		DebugEnabled = true
		writer.Write([]byte("OK"))
	})
	http.HandleFunc("/api/log/debug/stop", func(writer http.ResponseWriter, request *http.Request) {
		DebugEnabled = false
		writer.Write([]byte("OK"))
	})
	go func() {
		// debug logging turns itself off eventually
		timer := time.NewTimer(10 * time.Hour)
		defer timer.Stop()
		for range timer.C {
			DebugEnabled = false
		}
	}()
}
