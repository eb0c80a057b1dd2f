package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"

	"rentinfo/internal/app"
	"rentinfo/internal/core"
	"rentinfo/internal/data"
	webui "rentinfo/web"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc        app.ApplicationService
	router     chi.Router
	fileServer http.Handler
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	staticFS, err := fs.Sub(webui.Assets, "static")
	if err != nil {
		panic("web/static embed sub-FS failed: " + err.Error())
	}

	h := &Handler{
		svc:        svc,
		fileServer: http.FileServer(http.FS(staticFS)),
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	// ── Browser ──────────────────────────────────────────────────────────────
	r.Get("/", h.index)
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/static", h.fileServer).ServeHTTP(w, req)
	})

	// ── API (1 MB body limit — payloads are small override maps) ────────────
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20))

		r.Get("/api/units", h.listUnits)
		r.Get("/api/units/{unitID}", h.getUnit)
		r.Post("/api/refresh", h.refresh)

		r.Get("/preview/{unitID}", h.preview)
		r.Post("/preview/{unitID}", h.preview)
		r.Post("/download/{unitID}", h.download)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// index serves the unit selector / override form page.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	page, err := webui.Assets.ReadFile("static/index.html")
	if err != nil {
		writeError(w, r, "index page unavailable", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// listUnits handles GET /api/units.
func (h *Handler) listUnits(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListUnits(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	type response struct {
		Success bool              `json:"success"`
		Units   []app.UnitSummary `json:"units"`
	}
	writeJSON(w, response{Success: true, Units: result.Units})
}

// getUnit handles GET /api/units/{unitID}.
func (h *Handler) getUnit(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetUnit(r.Context(), chi.URLParam(r, "unitID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	type response struct {
		Success bool           `json:"success"`
		Unit    map[string]any `json:"unit"`
	}
	writeJSON(w, response{Success: true, Unit: result.Fields})
}

// refresh handles POST /api/refresh — re-reads the unit source.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.RefreshUnits(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	type response struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	writeJSON(w, response{Success: true, Count: result.Count})
}

// preview handles GET/POST /preview/{unitID} — renders the HTML sheet.
// A POST body may carry a JSON override map.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	ov, ok := h.decodeOverrides(w, r)
	if !ok {
		return
	}

	result, err := h.svc.PreviewSheet(r.Context(), chi.URLParam(r, "unitID"), ov)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, result.HTML)
}

// download handles POST /download/{unitID} — generates the PDF attachment.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	ov, ok := h.decodeOverrides(w, r)
	if !ok {
		return
	}

	result, err := h.svc.DownloadSheet(r.Context(), chi.URLParam(r, "unitID"), ov)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+result.Filename)
	_, _ = w.Write(result.PDF)
}

// decodeOverrides reads the optional JSON override payload. Values may
// be JSON strings (possibly with $ and , decorations) or numbers; both
// become the raw strings the engine coerces. Returns false after
// writing an error response when the body is present but malformed.
func (h *Handler) decodeOverrides(w http.ResponseWriter, r *http.Request) (*core.Overrides, bool) {
	if r.Method == http.MethodGet || r.Body == nil || r.ContentLength == 0 {
		return nil, true
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return nil, false
	}

	return overridesFromPayload(payload), true
}

// overridesFromPayload maps the known numeric keys of the payload onto
// an Overrides patch. Null and empty values are "no override"; unknown
// keys are ignored.
func overridesFromPayload(payload map[string]any) *core.Overrides {
	ov := &core.Overrides{}
	for key, raw := range payload {
		if !data.IsNumericField(key) {
			continue
		}

		var val string
		switch v := raw.(type) {
		case nil:
			continue
		case string:
			val = data.CleanNumeric(v)
		case json.Number:
			val = v.String()
		default:
			val = fmt.Sprint(v)
		}
		if val == "" {
			continue
		}

		switch key {
		case "base_rent":
			ov.BaseRent = val
		case "wsg_monthly":
			ov.WSGMonthly = val
		case "security_deposit":
			ov.SecurityDeposit = val
		case "application_fee":
			ov.ApplicationFee = val
		case "cleaning_fee":
			ov.CleaningFee = val
		case "holding_fee_percent":
			ov.HoldingFeePercent = val
		case "parking_monthly_cost":
			ov.ParkingMonthlyCost = val
		case "wifi_monthly_cost":
			ov.WifiMonthlyCost = val
		case "wifi_device_limit":
			ov.WifiDeviceLimit = val
		case "pet_rent_monthly":
			ov.PetRentMonthly = val
		}
	}

	if ov.IsZero() {
		return nil
	}
	return ov
}

// writeServiceError maps service-layer failures onto the error envelope.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var cerr *core.CoercionError
	switch {
	case errors.Is(err, data.ErrUnitNotFound):
		writeError(w, r, "unit not found", "UNIT_NOT_FOUND", http.StatusNotFound)
	case errors.As(err, &cerr):
		writeError(w, r, cerr.Error(), "COERCION_ERROR", http.StatusUnprocessableEntity)
	default:
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
