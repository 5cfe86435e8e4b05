package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"courtsense/models/status"
	"courtsense/models/venue"
	services "courtsense/service"
	"courtsense/util"
)

const (
	LAT_QUERY_ARG     = "lat"
	LON_QUERY_ARG     = "lon"
	RADIUS_QUERY_ARG  = "radius"
	VERBOSE_QUERY_ARG = "verbose"
	RENDER_QUERY_ARG  = "render"
)

// VenueWithStatus pairs a venue with its merged live status.
type VenueWithStatus struct {
	Venue  venue.Venue       `json:"venue"`
	Status status.LiveStatus `json:"status"`
}

// MinifiedVenue is the small form returned when verbose=false.
type MinifiedVenue struct {
	VenueName     string           `json:"venue_name"`
	VenueAddress  string           `json:"venue_address"`
	CrowdLabel    string           `json:"crowd_label"`
	CrowdColor    string           `json:"crowd_color"`
	DataFreshness status.Freshness `json:"data_freshness"`
	Confidence    int              `json:"confidence"`
}

// displayRank orders venues busiest-first on the nearby surface.
var displayRank = map[status.DisplayLevel]int{
	status.DisplayPacked: 4,
	status.DisplayBusy:   3,
	status.DisplayActive: 2,
	status.DisplayQuiet:  1,
	status.DisplayDead:   0,
}

type StatusHandler struct {
	venueService      *services.VenueService
	liveStatusService *services.LiveStatusService
}

func NewStatusHandler(
	venueService *services.VenueService,
	liveStatusService *services.LiveStatusService,
) *StatusHandler {
	return &StatusHandler{
		venueService:      venueService,
		liveStatusService: liveStatusService,
	}
}

// GetVenuesNearby handles GET /v1/venues/nearby?lat&lon&radius[&verbose].
func (h *StatusHandler) GetVenuesNearby(w http.ResponseWriter, r *http.Request) {
	lat, lon, radius, verbose, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	venues, err := h.venueService.GetVenuesNearby(lat, lon, radius)
	if err != nil {
		log.Println("[StatusHandler] Error loading nearby venues:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	merged := make([]VenueWithStatus, 0, len(venues))
	for _, v := range venues {
		ls, err := h.liveStatusService.GetLiveStatus(v.VenueID, now)
		if err != nil {
			log.Printf("[StatusHandler] No status for venue_id=%s, skipping: %v", v.VenueID, err)
			continue
		}
		merged = append(merged, VenueWithStatus{Venue: v, Status: *ls})
	}

	// Busiest first, confidence as tie-break.
	sort.Slice(merged, func(i, j int) bool {
		ri, rj := displayRank[merged[i].Status.DisplayLevel], displayRank[merged[j].Status.DisplayLevel]
		if ri != rj {
			return ri > rj
		}
		return merged[i].Status.Confidence > merged[j].Status.Confidence
	})

	writeJSON(w, h.transform(merged, verbose))
}

// GetVenueStatus handles GET /v1/venues/{id}/status.
func (h *StatusHandler) GetVenueStatus(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["id"]

	ls, err := h.liveStatusService.GetLiveStatus(venueID, time.Now().UTC())
	if err == services.ErrVenueNotFound {
		http.Error(w, "Venue not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[StatusHandler] Error computing status for %s: %v", venueID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, ls)
}

// GetVenueTimeline handles GET /v1/venues/{id}/timeline[?render=html].
func (h *StatusHandler) GetVenueTimeline(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["id"]

	slots, err := h.liveStatusService.GetDailyTimeline(venueID, time.Now().UTC())
	if err == services.ErrVenueNotFound {
		http.Error(w, "Venue not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[StatusHandler] Error computing timeline for %s: %v", venueID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get(RENDER_QUERY_ARG) == "html" {
		v, err := h.venueService.GetVenue(venueID)
		if err != nil || v == nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := util.PlotDailyTimeline(v.VenueName, slots, w); err != nil {
			log.Printf("[StatusHandler] Error rendering timeline chart: %v", err)
		}
		return
	}

	writeJSON(w, slots)
}

func (h *StatusHandler) parseArgs(vals url.Values, w http.ResponseWriter) (
	lat, lon, radius float64, verbose bool, ok bool,
) {
	var err error

	lat, err = parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LAT_QUERY_ARG, http.StatusBadRequest)
		return
	}
	lon, err = parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LON_QUERY_ARG, http.StatusBadRequest)
		return
	}
	radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+RADIUS_QUERY_ARG, http.StatusBadRequest)
		return
	}
	verbose = false
	if v := vals.Get(VERBOSE_QUERY_ARG); v != "" {
		verbose, _ = strconv.ParseBool(v)
	}
	ok = true
	return
}

func (h *StatusHandler) transform(merged []VenueWithStatus, verbose bool) interface{} {
	if verbose {
		return merged
	}
	min := make([]MinifiedVenue, 0, len(merged))
	for _, m := range merged {
		min = append(min, MinifiedVenue{
			VenueName:     m.Venue.VenueName,
			VenueAddress:  m.Venue.VenueAddress,
			CrowdLabel:    m.Status.CrowdLabel,
			CrowdColor:    m.Status.CrowdColor,
			DataFreshness: m.Status.DataFreshness,
			Confidence:    m.Status.Confidence,
		})
	}
	return min
}

// Ping handles GET /ping
func (h *StatusHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "pong"})
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("[StatusHandler] Error encoding response:", err)
	}
}
