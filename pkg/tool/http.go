/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

package tool

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/spf13/cast"

	"github.com/opensearch-project/skills-go/pkg/logger"
)

// Handler exposes the registry over HTTP:
//
//	POST /api/tool/{name}  body: json object of parameters
//	GET  /api/health
//
// Parameter values may arrive as any scalar json type and are coerced to
// strings, matching the loosely-typed tool parameter surface.
func (r *Registry) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/api/tool/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		name := strings.TrimPrefix(req.URL.Path, "/api/tool/")
		t, ok := r.Get(name)
		if !ok {
			http.Error(w, "unknown tool "+name, http.StatusNotFound)
			return
		}

		var raw map[string]interface{}
		if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		params := make(map[string]string, len(raw))
		for k, v := range raw {
			s, err := cast.ToStringE(v)
			if err != nil {
				http.Error(w, "invalid parameter "+k, http.StatusBadRequest)
				return
			}
			params[k] = s
		}

		out, err := t.Execute(req.Context(), params)
		if err != nil {
			logger.Errorf("[http] tool %s failed: %+v", name, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(out))
	})
	return mux
}
