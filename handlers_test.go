package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func testServer() *server {
	return newServer(Config{Addr: ":0", MaxUploadMB: 10, MaxRows: 10000})
}

// multipartUpload builds a POST request carrying one file field.
func multipartUpload(t *testing.T, target, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestProcessUploadScenario(t *testing.T) {
	srv := testServer()
	result, uerr := srv.processUpload(httptest.NewRecorder(), multipartUpload(t, "/", "data.csv", "a,b\n1,2\n1,2\n3,\n"))
	if uerr != nil {
		t.Fatalf("process: %v", uerr)
	}
	want := MetricsReport{MissingValues: 1, DuplicateRows: 1, TotalRows: 3, TotalColumns: 2}
	if result.Report != want {
		t.Fatalf("report: got %+v, want %+v", result.Report, want)
	}
	if result.Info.FileName != "data.csv" {
		t.Fatalf("file name: %q", result.Info.FileName)
	}
}

func TestProcessUploadHeaderOnly(t *testing.T) {
	srv := testServer()
	result, uerr := srv.processUpload(httptest.NewRecorder(), multipartUpload(t, "/", "data.csv", "a,b\n"))
	if uerr != nil {
		t.Fatalf("process: %v", uerr)
	}
	want := MetricsReport{TotalColumns: 2}
	if result.Report != want {
		t.Fatalf("report: got %+v, want %+v", result.Report, want)
	}
	col, cerr := selectChartColumn(result.Table)
	if cerr != nil || col != "a" {
		t.Fatalf("chart column: %q, %v", col, cerr)
	}
}

func TestUploadHandlerGetRendersForm(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.uploadHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<form") {
		t.Fatal("response does not contain the upload form")
	}
}

func TestUploadHandlerSuccessPage(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.uploadHandler(rec, multipartUpload(t, "/", "data.csv", "a,b\n1,2\n1,2\n3,\n"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Duplicate rows", "Missing values", "data:image/png;base64,"} {
		if !strings.Contains(body, want) {
			t.Fatalf("response missing %q", want)
		}
	}
}

func TestUploadHandlerUnsupportedExtension(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.uploadHandler(rec, multipartUpload(t, "/", "data.txt", "a,b\n1,2\n"))
	body := rec.Body.String()
	if !strings.Contains(body, "Only .csv files are supported") {
		t.Fatalf("expected the extension message, got: %s", body)
	}
	if !strings.Contains(body, "<form") {
		t.Fatal("form should be re-rendered on failure")
	}
}

func TestUploadHandlerNoFilePart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("other", "value")
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	srv := testServer()
	rec := httptest.NewRecorder()
	srv.uploadHandler(rec, req)
	if !strings.Contains(rec.Body.String(), "No file was submitted") {
		t.Fatalf("expected the no-file message, got: %s", rec.Body.String())
	}
}

// An empty upload parses to a zero-column table: metrics still render
// (all zeros), the chart is replaced by the empty-table notice.
func TestUploadHandlerEmptyFile(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.uploadHandler(rec, multipartUpload(t, "/", "data.csv", ""))
	body := rec.Body.String()
	if !strings.Contains(body, "Total rows") {
		t.Fatal("metrics should still be displayed")
	}
	if strings.Contains(body, "data:image/png") {
		t.Fatal("no chart should be rendered")
	}
	if !strings.Contains(body, "nothing to chart") {
		t.Fatalf("expected the empty-table notice, got: %s", body)
	}
}

func TestUploadHandlerFileTooLarge(t *testing.T) {
	srv := newServer(Config{Addr: ":0", MaxUploadMB: 1, MaxRows: 10000})
	big := "a,b\n" + strings.Repeat("1,2\n", 400000) // ~1.5 MB against a 1 MB cap
	rec := httptest.NewRecorder()
	srv.uploadHandler(rec, multipartUpload(t, "/", "data.csv", big))
	body := rec.Body.String()
	if !strings.Contains(body, "File too large") {
		t.Fatalf("expected the size message, got: %s", body)
	}
	if strings.Contains(body, "could not be read as CSV") {
		t.Fatal("size rejection should not report a parse failure")
	}
}

func TestUploadHandlerMethodRedirect(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.uploadHandler(rec, httptest.NewRequest(http.MethodPut, "/", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: %d, want 303", rec.Code)
	}
}

func TestMetricsAPIHandler(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.metricsAPIHandler(rec, multipartUpload(t, "/api/metrics", "data.csv", "a,b\n1,2\n1,2\n3,\n"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var resp struct {
		Success bool          `json:"success"`
		Data    MetricsReport `json:"data"`
		Error   string        `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := MetricsReport{MissingValues: 1, DuplicateRows: 1, TotalRows: 3, TotalColumns: 2}
	if !resp.Success || resp.Data != want {
		t.Fatalf("response: %+v", resp)
	}
}

func TestMetricsAPIHandlerRejectsBadUpload(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.metricsAPIHandler(rec, multipartUpload(t, "/api/metrics", "data.txt", "a\n1\n"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d, want 400", rec.Code)
	}
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Fatalf("response: %+v", resp)
	}
}

func TestExportHandler(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.exportHandler(rec, multipartUpload(t, "/export", "data.csv", "a,b\n1,2\n1,2\n3,\n"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != xlsxContentType {
		t.Fatalf("content type: %q", got)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()
	checks := map[string]string{
		"B4": "1", // missing values
		"B5": "1", // duplicate rows
		"B6": "3", // total rows
		"B7": "2", // total columns
	}
	for cell, want := range checks {
		got, err := f.GetCellValue("Report", cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("%s: got %q, want %q", cell, got, want)
		}
	}
}

func TestRoutesHealth(t *testing.T) {
	srv := testServer()
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["status"] != "healthy" {
		t.Fatalf("payload: %v", payload)
	}
}
