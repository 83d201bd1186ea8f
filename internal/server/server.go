package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/dielawn/personal-finance/internal/config"
	"github.com/dielawn/personal-finance/internal/report"
	"github.com/dielawn/personal-finance/pkg/constants"
	"github.com/dielawn/personal-finance/pkg/finance"
	"github.com/dielawn/personal-finance/pkg/loans"
	"github.com/dielawn/personal-finance/pkg/mathutil"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	options       report.Options
	reports       *cache.Cache
	limiter       *rate.Limiter
}

// NewHandler constructs the HTTP handler that serves the report API. A nil
// cfg uses the server defaults.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg, _ = LoadConfig("")
	}

	maxUploadSize := cfg.UploadSizeBytes()
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		options:       report.DefaultOptions(),
	}
	if ttl := cfg.CacheTTLDuration(); ttl > 0 {
		h.reports = cache.New(ttl, 2*ttl)
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		h.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	}

	mux := http.NewServeMux()

	// Report endpoint (profile file upload)
	mux.HandleFunc("/api/summary", h.handleSummary)

	// Report endpoint for editor-driven updates
	mux.HandleFunc("/api/editor/summary", h.handleSummaryEditor)

	// Profile serialization endpoint for editor downloads
	mux.HandleFunc("/api/editor/export", h.handleConfigExport)

	// Stateless recomputation for slider-driven views
	mux.HandleFunc("/api/amortization", h.handleAmortization)
	mux.HandleFunc("/api/projection", h.handleProjection)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return h.withRequestContext(h.withRateLimit(mux))
}

type summaryResponse struct {
	RequestID  string        `json:"requestId"`
	Report     report.Report `json:"report"`
	Cached     bool          `json:"cached"`
	Duration   string        `json:"duration"`
	ConfigYAML string        `json:"configYaml,omitempty"`
}

func (h *handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleSummary"
	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing profile file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			requestLogger(r, h.logger).Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read profile: %v", err), op)
		return
	}

	h.runReport(w, r, buf.Bytes(), start, op, false)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleSummaryEditor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleSummaryEditor"
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode profile: %v", err), op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	profilePayload := payload
	if rawProfile, ok := payload["config"]; ok {
		profileMap, ok := rawProfile.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, "invalid config payload: expected object", op)
			return
		}
		profilePayload = profileMap
	}

	profileBytes, err := marshalOrderedProfileYAML(profilePayload)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to encode profile: %v", err), op)
		return
	}

	h.runReport(w, r, profileBytes, start, op, true)
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleConfigExport"
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode profile: %v", err), op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedProfileYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to encode profile: %v", err), op)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// profileKeyOrder is the section order used when writing a profile back out.
var profileKeyOrder = []string{
	"logging", "output", "pay", "postTaxContributions", "debts", "housing",
	"vehicles", "expenses", "accounts", "projection",
}

func marshalOrderedProfileYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range profileKeyOrder {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

// runReport computes the report for a YAML profile, reusing a cached report
// for byte-identical profiles.
func (h *handler) runReport(w http.ResponseWriter, r *http.Request, profileBytes []byte, start time.Time, op string, echoProfile bool) {
	logger := requestLogger(r, h.logger)
	key := cacheKey(profileBytes)

	response := summaryResponse{RequestID: requestID(r)}
	if echoProfile {
		response.ConfigYAML = string(profileBytes)
	}

	if cached, ok := h.cachedReport(key); ok {
		response.Report = cached
		response.Cached = true
	} else {
		profile, err := config.LoadConfigurationFromReader(bytes.NewReader(profileBytes), "yaml")
		if err != nil {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
			return
		}
		response.Report = report.GetReport(logger, *profile, h.options)
		if h.reports != nil {
			h.reports.SetDefault(key, response.Report)
		}
	}

	elapsed := time.Since(start)
	response.Duration = elapsed.String()

	logger.Info("report computed",
		zap.String("op", op),
		zap.Bool("cached", response.Cached),
		zap.Int("debts", len(response.Report.Debts)),
		zap.Int("accounts", len(response.Report.Projection.Accounts)),
		zap.Int("warnings", len(response.Report.Warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, r, http.StatusOK, response)
}

func (h *handler) cachedReport(key string) (report.Report, bool) {
	if h.reports == nil {
		return report.Report{}, false
	}
	value, ok := h.reports.Get(key)
	if !ok {
		return report.Report{}, false
	}
	cached, ok := value.(report.Report)
	return cached, ok
}

func cacheKey(profileBytes []byte) string {
	sum := sha256.Sum256(bytes.TrimSpace(profileBytes))
	return hex.EncodeToString(sum[:])
}

type amortizationRequest struct {
	Balance      float64 `json:"balance"`
	Payment      float64 `json:"payment"`
	InterestRate float64 `json:"interestRate"`
}

func (h *handler) handleAmortization(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleAmortization"
	var req amortizationRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	h.writeJSON(w, r, http.StatusOK, loans.Schedule(req.Balance, req.Payment, req.InterestRate))
}

type projectionRequest struct {
	InitialBalance     float64  `json:"initialBalance"`
	AnnualContribution float64  `json:"annualContribution"`
	GrowthRate         *float64 `json:"growthRate"`
	Years              *int     `json:"years"`
}

type projectionResponse struct {
	GrowthRatePercent float64                  `json:"growthRatePercent"`
	Years             []finance.ProjectionYear `json:"years"`
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleProjection"
	var req projectionRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	growthRate := h.options.Defaults.GrowthRatePercent
	if req.GrowthRate != nil {
		growthRate = mathutil.ClampNonNegative(*req.GrowthRate)
	}
	years := h.options.Defaults.HorizonYears
	if req.Years != nil {
		years = *req.Years
	}

	h.writeJSON(w, r, http.StatusOK, projectionResponse{
		GrowthRatePercent: growthRate,
		Years:             finance.Project(req.InitialBalance, req.AnnualContribution, growthRate, years),
	})
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	requestLogger(r, h.logger).Error("report request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, r, status, map[string]string{"error": msg, "requestId": requestID(r)})
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		requestLogger(r, h.logger).Error("failed to write JSON response", zap.Error(err))
	}
}
