package main

import (
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"time"
)

// server owns the per-process configuration. Uploaded tables never
// outlive their request, so there is no cross-request state here.
type server struct {
	cfg Config
}

func newServer(cfg Config) *server {
	return &server{cfg: cfg}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", withRequestLog(s.uploadHandler))
	mux.HandleFunc("/export", withRequestLog(s.exportHandler))
	mux.HandleFunc("/api/metrics", withRequestLog(s.metricsAPIHandler))
	mux.HandleFunc("/healthz", withRequestLog(healthHandler))
	return mux
}

// uploadResult is what one successful upload yields, passed by value
// from the boundary to rendering instead of through shared state.
type uploadResult struct {
	Info   UploadInfo
	Table  *Table
	Report MetricsReport
}

// processUpload runs the validation chain and, on success, the metrics
// engine. Every failure comes back as an UploadError; the engine is
// never reached with a partially-constructed table.
func (s *server) processUpload(w http.ResponseWriter, r *http.Request) (*uploadResult, *UploadError) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes()); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, uploadErr(ErrFileTooLarge, err)
		}
		return nil, uploadErr(ErrParse, err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, uploadErr(ErrNoFileSubmitted, err)
	}
	defer file.Close()

	if uerr := validateFilename(header.Filename); uerr != nil {
		return nil, uerr
	}

	table, uerr := parseCSV(file, s.cfg.MaxRows)
	if uerr != nil {
		return nil, uerr
	}

	return &uploadResult{
		Info: UploadInfo{
			FileName:   header.Filename,
			FileSize:   header.Size,
			UploadTime: time.Now(),
		},
		Table:  table,
		Report: computeMetrics(table),
	}, nil
}

// uploadHandler serves the form on GET and the report page on POST.
// Validation failures re-render the form with a single message.
func (s *server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Cache-Control", "no-cache")
		s.renderForm(w, uploadPage{})
	case http.MethodPost:
		result, uerr := s.processUpload(w, r)
		if uerr != nil {
			log.Printf("upload rejected: %v", uerr)
			s.renderForm(w, uploadPage{Error: uerr.Message()})
			return
		}
		s.renderReport(w, result)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *server) renderForm(w http.ResponseWriter, page uploadPage) {
	if err := uploadTemplate.Execute(w, page); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *server) renderReport(w http.ResponseWriter, result *uploadResult) {
	page := reportPage{
		FileName:  result.Info.FileName,
		FileSize:  formatFileSize(result.Info.FileSize),
		Timestamp: result.Info.UploadTime.Format("January 2, 2006 at 3:04 PM"),
		Report:    result.Report,
		Columns:   result.Table.Columns,
	}

	if colName, uerr := selectChartColumn(result.Table); uerr != nil {
		page.ChartNotice = uerr.Message()
	} else {
		page.ChartColumn = colName
		png, err := renderHistogram(ChartSpec{Table: result.Table, Column: colName})
		switch {
		case err != nil:
			log.Printf("chart error: %v", err)
			page.ChartNotice = "The chart could not be rendered"
		case png == nil:
			page.ChartNotice = "No values to chart in column " + colName
		default:
			page.ChartPNG = base64.StdEncoding.EncodeToString(png)
		}
	}

	if err := resultTemplate.Execute(w, page); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Failed to display results", http.StatusInternalServerError)
	}
}
