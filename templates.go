package main

import (
	"fmt"
	"html/template"
)

var templateFuncs = template.FuncMap{
	"formatSize": formatFileSize,
	"formatNumber": func(f float64) string {
		return fmt.Sprintf("%.2f", f)
	},
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

var uploadTemplate = template.Must(template.New("upload.html").Funcs(templateFuncs).ParseFiles("upload.html"))
var resultTemplate = template.Must(template.New("results.html").Funcs(templateFuncs).ParseFiles("results.html"))
