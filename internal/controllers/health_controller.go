package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"talkmigrate/internal/services"
	"time"
)

type HealthController struct {
	service   services.MigrationServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Phase         string  `json:"phase"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	p := hc.service.Progress()
	status := "ok"
	if p.Phase == services.PhaseFailed {
		status = "failed"
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        status,
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Phase:         string(p.Phase),
	}
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

// Progress reports the running phase and the counts gathered so far.
func (hc *HealthController) Progress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, hc.service.Progress())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.MigrationServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
	}
}
