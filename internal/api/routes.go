package api

import (
	"github.com/gorilla/mux"

	"github.com/nightsky-studio/zzzcalc/internal/cache"
)

// RegisterRoutes wires the HTTP surface of spec.md §6 onto router.
func RegisterRoutes(router *mux.Router, m *cache.Manager, baseDir string) {
	handler := NewHandler(m, baseDir)

	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware)

	router.HandleFunc("/", handler.Index).Methods("GET")
	router.HandleFunc("/refresh", handler.Refresh).Methods("POST")
	router.HandleFunc("/rotations", handler.PutRotation).Methods("PUT")
	router.HandleFunc("/damage", handler.PostDamage).Methods("POST")
}
