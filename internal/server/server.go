package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/iwvelando/order-dashboard/internal/export"
	"github.com/iwvelando/order-dashboard/internal/normalize"
	"github.com/iwvelando/order-dashboard/internal/report"
	"github.com/iwvelando/order-dashboard/internal/workbook"
	"github.com/iwvelando/order-dashboard/pkg/constants"
	"github.com/iwvelando/order-dashboard/pkg/validation"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// Form fields of the upload endpoints.
const (
	fieldFile   = "file"
	fieldPerson = "person"
	fieldRegion = "region"
	fieldMonth  = "month"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	chart         export.ChartOptions
}

// Option customizes the handler built by NewHandler.
type Option func(*handler)

// WithChartOptions sets the size of the rendered charts.
func WithChartOptions(opts export.ChartOptions) Option {
	return func(h *handler) {
		h.chart = opts
	}
}

// NewHandler constructs the HTTP handler that serves the dashboard UI and report API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, opts ...Option) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

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
		chart:         export.DefaultChartOptions(),
	}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/report", h.handleReport)
		r.Post("/export/csv", h.handleExportCSV)
		r.Post("/export/xlsx", h.handleExportXLSX)
		r.Post("/export/chart/{kind}", h.handleExportChart)
		r.Get("/version", h.handleVersion)
	})

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.Handle("/*", http.FileServer(http.FS(sub)))

	return r
}

type selectionLists struct {
	Persons []string `json:"persons"`
	Regions []string `json:"regions"`
	Months  []string `json:"months"`
}

type reportResponse struct {
	UploadID  string                  `json:"uploadId"`
	Options   selectionLists          `json:"options"`
	Selection selectionLists          `json:"selection"`
	Rows      []report.Record         `json:"rows"`
	Summary   report.Summary          `json:"summary"`
	CSV       string                  `json:"csv"`
	Sheets    []normalize.SheetResult `json:"sheets"`
	Warnings  []string                `json:"warnings,omitempty"`
	Duration  string                  `json:"duration"`
}

// upload is a normalized and filtered workbook received from a request.
type upload struct {
	id       string
	filename string
	result   normalize.Result
	filtered report.Table
	options  selectionLists
	selected selectionLists
	warnings []string
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"
	start := time.Now()

	up, ok := h.readUpload(w, r, op)
	if !ok {
		return
	}

	summary := report.Summarize(up.filtered)
	csvData, err := export.CSVBytes(up.filtered)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode CSV: %v", err), op)
		return
	}

	rows := up.filtered.Records
	if rows == nil {
		rows = []report.Record{}
	}

	elapsed := time.Since(start)
	response := reportResponse{
		UploadID:  up.id,
		Options:   up.options,
		Selection: up.selected,
		Rows:      rows,
		Summary:   summary,
		CSV:       string(csvData),
		Sheets:    up.result.Sheets,
		Warnings:  up.warnings,
		Duration:  elapsed.String(),
	}

	h.logger.Info("report computed",
		zap.String("op", op),
		zap.String("upload", up.id),
		zap.String("file", up.filename),
		zap.Int("records", up.result.Table.Len()),
		zap.Int("selected", up.filtered.Len()),
		zap.Int("warnings", len(up.warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportCSV"

	up, ok := h.readUpload(w, r, op)
	if !ok {
		return
	}

	data, err := export.CSVBytes(up.filtered)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode CSV: %v", err), op)
		return
	}
	h.writeAttachment(w, export.Artifact{Name: constants.CSVFileName, ContentType: export.ContentTypeCSV, Data: data}, op)
}

func (h *handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportXLSX"

	up, ok := h.readUpload(w, r, op)
	if !ok {
		return
	}

	data, err := export.XLSXBytes(up.filtered)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode workbook: %v", err), op)
		return
	}
	h.writeAttachment(w, export.Artifact{Name: constants.XLSXFileName, ContentType: export.ContentTypeXLSX, Data: data}, op)
}

func (h *handler) handleExportChart(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportChart"

	kind, err := export.ParseChartKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}

	up, ok := h.readUpload(w, r, op)
	if !ok {
		return
	}

	png, err := export.RenderChart(kind, report.Summarize(up.filtered), h.chart)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err), op)
		return
	}
	h.writeAttachment(w, export.Artifact{Name: kind.FileName(), ContentType: export.ContentTypePNG, Data: png}, op)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// readUpload parses the multipart request, normalizes the workbook and applies
// the requested selection. On failure it has already written the response.
const msgAwaitingWorkbook = "waiting for an order workbook"

func (h *handler) readUpload(w http.ResponseWriter, r *http.Request, op string) (*upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		if errors.Is(err, http.ErrNotMultipart) {
			h.respondErrorWithOp(w, http.StatusBadRequest, msgAwaitingWorkbook+": request is not a multipart upload", op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return nil, false
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.Warn("failed to remove multipart temp files",
				zap.String("op", op),
				zap.Error(err),
			)
		}
	}()

	file, header, err := r.FormFile(fieldFile)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, msgAwaitingWorkbook+": missing file field", op)
		return nil, false
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		h.respondErrorWithOp(w, http.StatusUnsupportedMediaType,
			fmt.Sprintf("unsupported file type %q: expected .xlsx", header.Filename), op)
		return nil, false
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read upload: %v", err), op)
		return nil, false
	}

	up := &upload{id: uuid.NewString(), filename: header.Filename}
	h.logger.Debug("workbook received",
		zap.String("op", op),
		zap.String("upload", up.id),
		zap.String("request", middleware.GetReqID(r.Context())),
		zap.String("file", header.Filename),
		zap.Int("bytes", buf.Len()),
	)

	wb, err := workbook.Read(h.logger, &buf)
	if err != nil {
		if errors.Is(err, workbook.ErrInvalidFormat) {
			h.respondErrorWithOp(w, http.StatusUnsupportedMediaType, err.Error(), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return nil, false
	}

	up.result, err = normalize.New(h.logger).Normalize(wb)
	if err != nil {
		if errors.Is(err, normalize.ErrNoQualifyingSheets) {
			h.respondErrorWithOp(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("%v: sheets need a header row and month rows such as JANEIRO in the first column", err), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return nil, false
	}

	table := up.result.Table
	persons := formValues(r.MultipartForm, fieldPerson)
	regions := formValues(r.MultipartForm, fieldRegion)
	months := formValues(r.MultipartForm, fieldMonth)

	up.options = selectionLists{
		Persons: table.Persons(),
		Regions: table.Regions(),
		Months:  calendarOrder(table.Months()),
	}

	up.warnings = append(up.warnings, validation.UnknownSelections(fieldPerson, persons, up.options.Persons)...)
	up.warnings = append(up.warnings, validation.UnknownSelections(fieldRegion, regions, up.options.Regions)...)
	up.warnings = append(up.warnings, validation.UnknownSelections(fieldMonth, months, up.options.Months)...)
	if up.result.Degraded > 0 {
		up.warnings = append(up.warnings, fmt.Sprintf("%d values could not be parsed and were read as 0", up.result.Degraded))
	}

	sel := report.SelectionFrom(table, persons, regions, months)
	up.filtered = report.Filter(table, sel)
	up.selected = selectionLists{
		Persons: selected(up.options.Persons, sel.Persons),
		Regions: selected(up.options.Regions, sel.Regions),
		Months:  selected(up.options.Months, sel.Months),
	}
	return up, true
}

// formValues returns the values of a repeated form field, or nil when the
// field is absent. A field sent only with empty values selects nothing.
func formValues(form *multipart.Form, field string) []string {
	raw, ok := form.Value[field]
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

func calendarOrder(months []string) []string {
	out := append([]string(nil), months...)
	sort.SliceStable(out, func(i, j int) bool {
		return constants.MonthIndex(out[i]) < constants.MonthIndex(out[j])
	})
	return out
}

func selected(options []string, set report.Set) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		if set.Has(o) {
			out = append(out, o)
		}
	}
	return out
}

func (h *handler) writeAttachment(w http.ResponseWriter, a export.Artifact, op string) {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(a.Data); err != nil {
		h.logger.Error("failed to write attachment",
			zap.String("op", op),
			zap.String("file", a.Name),
			zap.Error(err),
		)
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("report request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	} else {
		h.logger.Warn("report request rejected",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
