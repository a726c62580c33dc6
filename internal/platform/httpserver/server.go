package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	operationservice "conductor/contexts/bulk-ops/operation-service"
	selectionservice "conductor/contexts/bulk-ops/selection-service"
	assetservice "conductor/contexts/catalog/asset-service"
	workflowservice "conductor/contexts/catalog/workflow-service"
	payeeservice "conductor/contexts/finance-core/payee-service"
	userservice "conductor/contexts/identity-access/user-service"
	activityfeedservice "conductor/contexts/internal-ops/activity-feed-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "conductor/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	assets     assetservice.Module
	workflow   workflowservice.Module
	selection  selectionservice.Module
	operations operationservice.Module
	users      userservice.Module
	payees     payeeservice.Module
	activity   activityfeedservice.Module
}

type Modules struct {
	Assets     assetservice.Module
	Workflow   workflowservice.Module
	Selection  selectionservice.Module
	Operations operationservice.Module
	Users      userservice.Module
	Payees     payeeservice.Module
	Activity   activityfeedservice.Module
}

func New(modules Modules, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		assets:     modules.Assets,
		workflow:   modules.Workflow,
		selection:  modules.Selection,
		operations: modules.Operations,
		users:      modules.Users,
		payees:     modules.Payees,
		activity:   modules.Activity,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /assets", s.handleListAssets)
	s.mux.HandleFunc("POST /assets", s.handleCreateAsset)
	s.mux.HandleFunc("GET /assets/bulk/ids", s.handleListAssetIDs)
	s.mux.HandleFunc("GET /assets/{asset_id}", s.handleGetAsset)
	s.mux.HandleFunc("PATCH /assets/{asset_id}", s.handleUpdateAsset)
	s.mux.HandleFunc("DELETE /assets/{asset_id}", s.handleDeleteAsset)
	s.mux.HandleFunc("POST /assets/{asset_id}/collection", s.handleAssignCollection)
	s.mux.HandleFunc("DELETE /assets/{asset_id}/collection", s.handleRemoveCollection)
	s.mux.HandleFunc("GET /collections", s.handleListCollections)
	s.mux.HandleFunc("POST /collections", s.handleCreateCollection)

	s.mux.HandleFunc("POST /assets/{asset_id}/submit", s.handleWorkflowDecision)
	s.mux.HandleFunc("POST /assets/{asset_id}/approve", s.handleWorkflowDecision)
	s.mux.HandleFunc("POST /assets/{asset_id}/reject", s.handleWorkflowDecision)
	s.mux.HandleFunc("POST /assets/{asset_id}/unpublish", s.handleWorkflowDecision)
	s.mux.HandleFunc("POST /assets/{asset_id}/decide/{action}", s.handleWorkflowDecision)
	s.mux.HandleFunc("GET /assets/{asset_id}/history", s.handleWorkflowHistory)
	s.mux.HandleFunc("GET /assets/{asset_id}/timeline", s.handleWorkflowTimeline)

	s.mux.HandleFunc("POST /bulk/selection", s.handleSelectionGet)
	s.mux.HandleFunc("POST /bulk/selection/toggle", s.handleSelectionToggle)
	s.mux.HandleFunc("POST /bulk/selection/range", s.handleSelectionRange)
	s.mux.HandleFunc("POST /bulk/selection/all", s.handleSelectionAll)
	s.mux.HandleFunc("DELETE /bulk/selection", s.handleSelectionClear)

	s.mux.HandleFunc("POST /assets/bulk", s.handleBulkRun)
	s.mux.HandleFunc("POST /users/bulk", s.handleBulkRun)
	s.mux.HandleFunc("GET /bulk/operations", s.handleListOperations)

	s.mux.HandleFunc("GET /users", s.handleListUsers)
	s.mux.HandleFunc("POST /users", s.handleCreateUser)
	s.mux.HandleFunc("GET /users/bulk/ids", s.handleListUserIDs)
	s.mux.HandleFunc("GET /users/{user_id}", s.handleGetUser)
	s.mux.HandleFunc("PATCH /users/{user_id}", s.handleUpdateUser)
	s.mux.HandleFunc("POST /users/{user_id}/suspend", s.handleSuspendUser)
	s.mux.HandleFunc("POST /users/{user_id}/activate", s.handleActivateUser)

	s.mux.HandleFunc("POST /payees/splits", s.handleCreateSplit)
	s.mux.HandleFunc("POST /payees/splits/{split_id}/accept", s.handleAcceptSplit)
	s.mux.HandleFunc("POST /payees/splits/{split_id}/revoke", s.handleRevokeSplit)
	s.mux.HandleFunc("GET /payees/contributors/{contributor_id}/splits", s.handleListSplits)

	s.mux.HandleFunc("GET /activity", s.handleListActivity)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveActorID(r *http.Request) string {
	if actor := strings.TrimSpace(r.Header.Get("X-User-Id")); actor != "" {
		return actor
	}
	return strings.TrimSpace(r.Header.Get("X-Admin-Id"))
}
