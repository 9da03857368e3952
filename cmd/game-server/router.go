package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"

	"card-room/internal/app/table"
	"card-room/internal/game"
	"card-room/internal/logging"
	"card-room/internal/store"
	"card-room/internal/ws"
)

func newRouter(svc *table.Service, st *store.Store, wsServer *ws.Server) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/healthz", healthHandler(st))
	r.Get("/ws", wsServer.HandleWS)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Get("/tables", listTablesHandler(svc))
		r.Post("/tables", createTableHandler(svc))
		r.Get("/tables/{table_id}/state", stateHandler(svc))
		r.Post("/tables/{table_id}/join", joinHandler(svc))
		r.Post("/tables/{table_id}/leave", leaveHandler(svc))
		r.Post("/tables/{table_id}/actions", actionHandler(svc))
		if st != nil {
			r.Get("/tables/{table_id}/hands", handsHandler(st))
		}
	})
	return r
}

func apiLogMiddleware() func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.New(slog.NewJSONHandler(logging.Writer(), &slog.HandlerOptions{})),
		&httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				rc := chi.RouteContext(req.Context())
				route := req.URL.Path
				if rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("route", route),
				}
			},
		},
	)
}

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := map[string]any{"ok": true}
		if st != nil {
			if err := st.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				out["ok"] = false
				out["db"] = "down"
				_ = json.NewEncoder(w).Encode(out)
				return
			}
			out["db"] = "up"
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

func listTablesHandler(svc *table.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": svc.Tables()})
	}
}

func createTableHandler(svc *table.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := svc.CreateTable()
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "table_id": id})
	}
}

func stateHandler(svc *table.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := chi.URLParam(r, "table_id")
		viewer := r.URL.Query().Get("viewer")
		snap, err := svc.PublicState(tableID, viewer)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(snap)
	}
}

func joinHandler(svc *table.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := chi.URLParam(r, "table_id")
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := svc.Join(r.Context(), tableID, body.Name); err != nil {
			writeError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func leaveHandler(svc *table.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := chi.URLParam(r, "table_id")
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := svc.Leave(r.Context(), tableID, body.Name); err != nil {
			writeError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func actionHandler(svc *table.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := chi.URLParam(r, "table_id")
		var body struct {
			Name   string `json:"name"`
			Action string `json:"action"`
			Amount int64  `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		res, err := svc.Act(r.Context(), tableID, body.Name, game.ActionType(body.Action), body.Amount)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

func handsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := chi.URLParam(r, "table_id")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		items, err := st.ListHands(r.Context(), tableID, limit)
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, table.ErrTableNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrTableFull), errors.Is(err, game.ErrNameTaken):
		status = http.StatusConflict
	}
	writeHTTPError(w, status, err.Error())
}

func writeHTTPError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code})
}
