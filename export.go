package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// exportHandler re-runs validation and metrics on the posted file and
// responds with the report as an .xlsx attachment. There is no stored
// table to export from; every request carries its own file.
func (s *server) exportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	result, uerr := s.processUpload(w, r)
	if uerr != nil {
		http.Error(w, uerr.Message(), http.StatusBadRequest)
		return
	}

	f, err := buildReportWorkbook(result.Info, result.Report)
	if err != nil {
		log.Printf("export error: %v", err)
		http.Error(w, "Failed to build report", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="metrics_report.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Printf("export write error: %v", err)
	}
}

func buildReportWorkbook(info UploadInfo, report MetricsReport) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"File", info.FileName},
		{"Uploaded", info.UploadTime.Format("2006-01-02 15:04:05")},
		{"Missing Values", report.MissingValues},
		{"Duplicate Rows", report.DuplicateRows},
		{"Total Rows", report.TotalRows},
		{"Total Columns", report.TotalColumns},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}
