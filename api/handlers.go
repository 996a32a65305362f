/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the payroll command surface and its queries via REST API. Handles
  HTTP request/response and JSON serialization, and delegates every change
  to the command engine so it can be undone.

ENDPOINTS:
  Employees:
    GET    /api/employees                       List employees (id order)
    POST   /api/employees                       Create employee
    GET    /api/employees/search?name=&index=   Find by name fragment
    GET    /api/employees/{id}                  Employee details
    PATCH  /api/employees/{id}                  Change one attribute
    DELETE /api/employees/{id}                  Remove employee
    GET    /api/employees/{id}/attributes/{name}

  Entries:
    POST   /api/employees/{id}/timecards        Post time card
    DELETE /api/employees/{id}/timecards/{date}
    POST   /api/employees/{id}/sales            Post sale, returns handle
    DELETE /api/employees/{id}/sales/{receipt}
    GET    /api/employees/{id}/hours|sales|charges?from=&to=
    POST   /api/union/{member}/charges          Post service charge
    DELETE /api/union/{member}/charges/{charge}

  Payroll:
    GET    /api/schedules, POST /api/schedules
    GET    /api/payroll/total?date=             Read-only total
    POST   /api/payroll/runs                    Run payroll, write report
    GET    /api/payroll/runs[/{id}]             Archived runs
    GET    /api/payroll/report.csv|pdf?date=    Read-only report

  History:
    POST   /api/history/undo, /api/history/redo, /api/reset

DATES:
  d/M/yyyy everywhere. Inside URL paths '/' is written as '-' (14-1-2005).

CONCURRENCY:
  The engine is single-writer. Handler serializes every request touching it
  with one mutex, queries included, so a query never sees half a command.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Employee, member, entry or run not found
  - 409: Rejected by current state, empty undo/redo stack, closed system
  - 500: Report or archive failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - command/engine.go: Undo/redo engine
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/payroll-engine/command"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/report"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	mu        sync.Mutex
	engine    *command.Engine
	archive   payroll.Archive
	reportDir string
	logger    *zap.Logger
}

// NewHandler creates a handler over engine. archive may be nil, in which case
// run listings are empty.
func NewHandler(engine *command.Engine, archive payroll.Archive, reportDir string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{engine: engine, archive: archive, reportDir: reportDir, logger: logger}
}

// execute runs cmd under the handler lock.
func (h *Handler) execute(cmd command.Command) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Execute(cmd)
}

// query runs fn against the live system under the handler lock.
func (h *Handler) query(fn func(s *payroll.System) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, err := h.engine.System()
	if err != nil {
		return err
	}
	return fn(s)
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees in id order.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	dtos := []EmployeeDTO{}
	err := h.query(func(s *payroll.System) error {
		for _, e := range s.Employees() {
			dtos = append(dtos, toEmployeeDTO(e))
		}
		return nil
	})
	if err != nil {
		h.fail(w, "Failed to list employees", err)
		return
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	h.respondEmployee(w, http.StatusOK, chi.URLParam(r, "id"))
}

// CreateEmployee registers an employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cmd := &command.CreateEmployee{
		Name:       req.Name,
		Address:    req.Address,
		Kind:       req.Kind,
		Salary:     req.Salary,
		Commission: req.Commission,
	}
	if err := h.execute(cmd); err != nil {
		h.fail(w, "Failed to create employee", err)
		return
	}
	h.respondEmployee(w, http.StatusCreated, cmd.ID.String())
}

// ChangeAttribute changes one attribute of an employee.
func (h *Handler) ChangeAttribute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ChangeAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cmd := &command.ChangeAttribute{ID: id, Attribute: req.Attribute, Value: req.Value, Extra: req.Extra}
	if err := h.execute(cmd); err != nil {
		h.fail(w, "Failed to change attribute", err)
		return
	}
	h.respondEmployee(w, http.StatusOK, id)
}

// RemoveEmployee removes an employee with its entries and membership.
func (h *Handler) RemoveEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.execute(&command.RemoveEmployee{ID: chi.URLParam(r, "id")}); err != nil {
		h.fail(w, "Failed to remove employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAttribute returns one attribute formatted as the command surface prints it.
func (h *Handler) GetAttribute(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var value string
	err := h.query(func(s *payroll.System) (err error) {
		value, err = s.Attribute(chi.URLParam(r, "id"), name)
		return err
	})
	if err != nil {
		h.fail(w, "Failed to get attribute", err)
		return
	}
	writeJSON(w, http.StatusOK, AttributeDTO{Attribute: name, Value: value})
}

// SearchEmployees returns the index-th (1-based, default 1) employee whose name
// contains the query.
func (h *Handler) SearchEmployees(w http.ResponseWriter, r *http.Request) {
	index := 1
	if raw := r.URL.Query().Get("index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid index", err)
			return
		}
		index = n
	}

	var id payroll.EmployeeID
	err := h.query(func(s *payroll.System) (err error) {
		id, err = s.EmployeeByName(r.URL.Query().Get("name"), index)
		return err
	})
	if err != nil {
		h.fail(w, "Failed to search employees", err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResultDTO{ID: int(id)})
}

func (h *Handler) respondEmployee(w http.ResponseWriter, status int, id string) {
	var dto EmployeeDTO
	err := h.query(func(s *payroll.System) error {
		e, err := s.Employee(id)
		if err != nil {
			return err
		}
		dto = toEmployeeDTO(e)
		return nil
	})
	if err != nil {
		h.fail(w, "Failed to get employee", err)
		return
	}
	writeJSON(w, status, dto)
}

// =============================================================================
// ENTRY HANDLERS
// =============================================================================

// PostTimeCard records hours worked on a date.
func (h *Handler) PostTimeCard(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cmd := &command.PostTimeCard{ID: chi.URLParam(r, "id"), Date: req.Date, Hours: req.Hours}
	if err := h.execute(cmd); err != nil {
		h.fail(w, "Failed to post time card", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) RemoveTimeCard(w http.ResponseWriter, r *http.Request) {
	cmd := &command.RemoveTimeCard{ID: chi.URLParam(r, "id"), Date: pathDate(chi.URLParam(r, "date"))}
	if err := h.execute(cmd); err != nil {
		h.fail(w, "Failed to remove time card", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostSale records a sale and returns its receipt handle.
func (h *Handler) PostSale(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cmd := &command.PostSale{ID: chi.URLParam(r, "id"), Date: req.Date, Amount: req.Amount}
	if err := h.execute(cmd); err != nil {
		h.fail(w, "Failed to post sale", err)
		return
	}
	writeJSON(w, http.StatusCreated, HandleDTO{Handle: cmd.Receipt})
}

func (h *Handler) RemoveSale(w http.ResponseWriter, r *http.Request) {
	cmd := &command.RemoveSale{ID: chi.URLParam(r, "id"), Receipt: chi.URLParam(r, "receipt")}
	if err := h.execute(cmd); err != nil {
		h.fail(w, "Failed to remove sale", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostServiceCharge records a union service charge by member id.
func (h *Handler) PostServiceCharge(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cmd := &command.PostServiceCharge{MemberID: chi.URLParam(r, "member"), Date: req.Date, Amount: req.Amount}
	if err := h.execute(cmd); err != nil {
		h.fail(w, "Failed to post service charge", err)
		return
	}
	writeJSON(w, http.StatusCreated, HandleDTO{Handle: cmd.Charge})
}

func (h *Handler) RemoveServiceCharge(w http.ResponseWriter, r *http.Request) {
	cmd := &command.RemoveServiceCharge{MemberID: chi.URLParam(r, "member"), Charge: chi.URLParam(r, "charge")}
	if err := h.execute(cmd); err != nil {
		h.fail(w, "Failed to remove service charge", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHours returns normal, extra and total hours in [from, to).
func (h *Handler) GetHours(w http.ResponseWriter, r *http.Request) {
	from, to := rangeParams(r)
	var totals payroll.HourTotals
	err := h.query(func(s *payroll.System) (err error) {
		totals, err = s.HoursWorked(chi.URLParam(r, "id"), from, to)
		return err
	})
	if err != nil {
		h.fail(w, "Failed to get hours", err)
		return
	}
	writeJSON(w, http.StatusOK, HoursDTO{
		Normal: totals.Normal.String(),
		Extra:  totals.Extra.String(),
		Total:  totals.Total().String(),
	})
}

// GetSales returns the sales total in [from, to).
func (h *Handler) GetSales(w http.ResponseWriter, r *http.Request) {
	from, to := rangeParams(r)
	h.respondAmount(w, "Failed to get sales", func(s *payroll.System) (string, error) {
		total, err := s.SalesTotal(chi.URLParam(r, "id"), from, to)
		return total.StringFixed(2), err
	})
}

// GetCharges returns the service charges total in [from, to).
func (h *Handler) GetCharges(w http.ResponseWriter, r *http.Request) {
	from, to := rangeParams(r)
	h.respondAmount(w, "Failed to get service charges", func(s *payroll.System) (string, error) {
		total, err := s.ServiceChargesTotal(chi.URLParam(r, "id"), from, to)
		return total.StringFixed(2), err
	})
}

func (h *Handler) respondAmount(w http.ResponseWriter, message string, fn func(s *payroll.System) (string, error)) {
	var total string
	err := h.query(func(s *payroll.System) (err error) {
		total, err = fn(s)
		return err
	})
	if err != nil {
		h.fail(w, message, err)
		return
	}
	writeJSON(w, http.StatusOK, AmountDTO{Total: total})
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	var list []string
	err := h.query(func(s *payroll.System) error {
		list = s.Schedules()
		return nil
	})
	if err != nil {
		h.fail(w, "Failed to list schedules", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateSchedule registers a payment schedule descriptor.
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cmd := &command.CreateSchedule{Description: req.Description}
	if err := h.execute(cmd); err != nil {
		h.fail(w, "Failed to create schedule", err)
		return
	}
	writeJSON(w, http.StatusCreated, ScheduleDTO{Schedule: cmd.Canonical})
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// TotalPayroll returns the net total due on a date without running payroll.
func (h *Handler) TotalPayroll(w http.ResponseWriter, r *http.Request) {
	date := pathDate(r.URL.Query().Get("date"))
	h.respondAmount(w, "Failed to compute payroll", func(s *payroll.System) (string, error) {
		total, err := s.TotalPayroll(date)
		return total.StringFixed(2), err
	})
}

// RunPayroll pays everyone due on the date, writes the text report into the
// report directory and archives the run.
func (h *Handler) RunPayroll(w http.ResponseWriter, r *http.Request) {
	var req RunPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	day, err := generic.ParseDate("data", pathDate(req.Date))
	if err != nil {
		h.fail(w, "Invalid payroll date", err)
		return
	}

	run, err := h.runPayroll(r.Context(), day)
	if err != nil {
		h.fail(w, "Failed to run payroll", err)
		return
	}

	dto := toRunDTO(run.Payroll.Record(run.ID, time.Time{}))
	dto.CreatedAt = ""
	dto.Report = run.Output
	writeJSON(w, http.StatusCreated, dto)
}

// runPayroll runs payroll for day under the handler lock, writing the report
// to folha-YYYY-MM-DD.txt in the report directory.
func (h *Handler) runPayroll(ctx context.Context, day generic.TimePoint) (*command.Run, error) {
	if err := os.MkdirAll(h.reportDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", generic.ErrReportWrite, err)
	}
	output := filepath.Join(h.reportDir, "folha-"+day.String()+".txt")

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.RunPayroll(ctx, day.Format(), output)
}

// ListRuns returns archived runs, newest first, without paychecks.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	dtos := []RunDTO{}
	if h.archive == nil {
		writeJSON(w, http.StatusOK, dtos)
		return
	}
	runs, err := h.archive.ListRuns(r.Context())
	if err != nil {
		h.fail(w, "Failed to list runs", err)
		return
	}
	for _, rec := range runs {
		dtos = append(dtos, toRunDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRun returns one archived run with its paychecks.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		h.fail(w, "Run not found", generic.ErrRunNotFound)
		return
	}
	rec, err := h.archive.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "Failed to get run", err)
		return
	}
	writeJSON(w, http.StatusOK, toRunDTO(*rec))
}

// ReportCSV renders the payroll of a date as CSV without running it.
func (h *Handler) ReportCSV(w http.ResponseWriter, r *http.Request) {
	h.respondReport(w, r, "text/csv", report.WriteCSV)
}

// ReportPDF renders the payroll of a date as PDF without running it.
func (h *Handler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	h.respondReport(w, r, "application/pdf", report.WritePDF)
}

func (h *Handler) respondReport(w http.ResponseWriter, r *http.Request, contentType string, render func(io.Writer, *payroll.Payroll) error) {
	day, err := generic.ParseDate("data", pathDate(r.URL.Query().Get("date")))
	if err != nil {
		h.fail(w, "Invalid payroll date", err)
		return
	}

	var p *payroll.Payroll
	err = h.query(func(s *payroll.System) error {
		p = s.Compute(day)
		return nil
	})
	if err != nil {
		h.fail(w, "Failed to compute payroll", err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if err := render(w, p); err != nil {
		h.logger.Error("report render failed", zap.String("date", day.String()), zap.Error(err))
	}
}

// =============================================================================
// HISTORY HANDLERS
// =============================================================================

func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	h.history(w, "Failed to undo", h.engine.Undo)
}

func (h *Handler) Redo(w http.ResponseWriter, r *http.Request) {
	h.history(w, "Failed to redo", h.engine.Redo)
}

func (h *Handler) history(w http.ResponseWriter, message string, op func() error) {
	h.mu.Lock()
	err := op()
	undo, redo := h.engine.History()
	h.mu.Unlock()
	if err != nil {
		h.fail(w, message, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryDTO{Undo: undo, Redo: redo})
}

// Reset clears every employee and custom schedule. It is undoable.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.execute(&command.Reset{}); err != nil {
		h.fail(w, "Failed to reset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

// pathDate turns 14-1-2005 into 14/1/2005.
func pathDate(s string) string {
	return strings.ReplaceAll(s, "-", "/")
}

func rangeParams(r *http.Request) (from, to string) {
	q := r.URL.Query()
	return pathDate(q.Get("from")), pathDate(q.Get("to"))
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case generic.IsValidation(err):
		return http.StatusBadRequest
	case generic.IsNotFound(err):
		return http.StatusNotFound
	case generic.IsConflict(err), generic.IsHistory(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
	}
	writeError(w, status, message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
