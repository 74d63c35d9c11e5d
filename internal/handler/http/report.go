package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/handler/http/response"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/blackhole-hr/attendance-backend-go/internal/service/processor"
)

const maxUploadSize = 32 << 20 // 32 MB

type ReportHandler interface {
	Process(w http.ResponseWriter, r *http.Request)
	Active(w http.ResponseWriter, r *http.Request)
	ExtraStatistics(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	attendanceService attendance.Service
	processor         *processor.Processor
	exportDir         string
}

func NewReportHandler(attendanceService attendance.Service, proc *processor.Processor, exportDir string) ReportHandler {
	return &reportHandlerImpl{
		attendanceService: attendanceService,
		processor:         proc,
		exportDir:         exportDir,
	}
}

func (h *reportHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Spreadsheet file is required", nil)
		return
	}
	defer file.Close()

	year, err := strconv.Atoi(r.FormValue("year"))
	if err != nil || year < 2000 || year > 2100 {
		response.BadRequest(w, "Valid year is required", nil)
		return
	}
	month, err := strconv.Atoi(r.FormValue("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "Valid month (1-12) is required", nil)
		return
	}

	opts := processor.Options{Year: year, Month: month}

	// max_hours accepts H:MM or decimal hours, matching the upload form.
	if raw := r.FormValue("max_hours"); raw != "" {
		opts.MaxHours = duration.ParseLenient(raw)
	}
	if raw := r.FormValue("selected_dates"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts.SelectedDates); err != nil {
			response.BadRequest(w, "selected_dates must be a JSON array of YYYY-MM-DD strings", nil)
			return
		}
		for _, d := range opts.SelectedDates {
			if _, ok := validator.IsValidDate(d); !ok {
				response.BadRequest(w, fmt.Sprintf("Invalid selected date %q", d), nil)
				return
			}
		}
	}

	report, err := h.processor.Process(file, opts)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := os.MkdirAll(h.exportDir, 0o755); err != nil {
		response.HandleError(w, err)
		return
	}
	filename := fmt.Sprintf("Attendance_Report_%04d-%02d_%s.xlsx",
		year, month, time.Now().Format("20060102_150405"))
	if err := h.processor.Export(report, filepath.Join(h.exportDir, filename)); err != nil {
		response.HandleError(w, err)
		return
	}
	report.OutputFile = filename

	result, err := h.attendanceService.SetActiveReport(r.Context(), report)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report processed", result)
}

func (h *reportHandlerImpl) Active(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ActiveReport(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) ExtraStatistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ExtraStatistics(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if !validator.IsSafeFilename(filename) {
		response.BadRequest(w, "Valid filename parameter is required", nil)
		return
	}

	path := filepath.Join(h.exportDir, filename)
	if _, err := os.Stat(path); err != nil {
		response.NotFound(w, "Report file not found")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}
