package http

import (
	"net/http"

	"nutrilog/internal/core"
)

type foodRequest struct {
	Date        string  `json:"date"`
	Time        string  `json:"time,omitempty"`
	Description string  `json:"description"`
	Kcal        float64 `json:"kcal"`
	ProteinG    float64 `json:"protein_g"`
	FatG        float64 `json:"fat_g"`
	CarbsG      float64 `json:"carbs_g"`
}

type weightRequest struct {
	Date       string   `json:"date"`
	WeightKg   *float64 `json:"weight_kg"`
	BodyFatPct *float64 `json:"body_fat_pct,omitempty"`
	MusclePct  *float64 `json:"muscle_pct,omitempty"`
	WaterPct   *float64 `json:"water_pct,omitempty"`
}

type favoriteRequest struct {
	Name     string  `json:"name"`
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
}

type budgetRequest struct {
	DailyKcal float64 `json:"daily_kcal"`
}

type activityRequest struct {
	Description string  `json:"description"`
	WeightKg    float64 `json:"weight_kg"`
}

type refResponse struct {
	Ref string `json:"ref"`
}

type dailyTotalJSON struct {
	Date     string  `json:"date"`
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
}

type intakeItemJSON struct {
	Time string  `json:"time"`
	Kcal float64 `json:"kcal"`
}

type weightEntryJSON struct {
	Date       string   `json:"date"`
	WeightKg   *float64 `json:"weight_kg"`
	BodyFatPct *float64 `json:"body_fat_pct,omitempty"`
	MusclePct  *float64 `json:"muscle_pct,omitempty"`
	WaterPct   *float64 `json:"water_pct,omitempty"`
}

type balancePointJSON struct {
	Date               string  `json:"date"`
	ConsumedCumulative float64 `json:"consumed_cumulative_kcal"`
	BudgetCumulative   float64 `json:"budget_cumulative_kcal"`
}

type macroEstimateJSON struct {
	Name     string  `json:"name"`
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
	Source   string  `json:"source"`
}

func toDailyTotalJSON(t core.DailyTotal) dailyTotalJSON {
	return dailyTotalJSON{
		Date:     t.Date.String(),
		Kcal:     t.Kcal,
		ProteinG: t.ProteinG,
		FatG:     t.FatG,
		CarbsG:   t.CarbsG,
	}
}

func (s *Server) handleFood(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createFood(w, r)
	case http.MethodDelete:
		s.deleteFood(w, r)
	default:
		methodNotAllowed(w, http.MethodPost, http.MethodDelete)
	}
}

func (s *Server) createFood(w http.ResponseWriter, r *http.Request) {
	var req foodRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	entry := core.FoodEntry{
		Date:        date,
		Time:        sanitizeInput(req.Time),
		Description: sanitizeInput(req.Description),
		Kcal:        req.Kcal,
		ProteinG:    req.ProteinG,
		FatG:        req.FatG,
		CarbsG:      req.CarbsG,
	}

	ref, err := s.entries.LogFood(r.Context(), entry)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.structured.LogFoodLogged(r.Context(), entry.Date.String(), entry.Description, entry.Kcal, ref)
	writeJSON(w, http.StatusCreated, refResponse{Ref: ref})
}

func (s *Server) deleteFood(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := core.ParseDate(q.Get("date"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	description := sanitizeInput(q.Get("description"))
	if description == "" {
		s.writeError(w, r, core.ErrEmptyDescription)
		return
	}
	if err := s.entries.DeleteFood(r.Context(), date, description); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWeight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req weightRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	entry := core.WeightEntry{
		Date:       date,
		WeightKg:   req.WeightKg,
		BodyFatPct: req.BodyFatPct,
		MusclePct:  req.MusclePct,
		WaterPct:   req.WaterPct,
	}

	ref, err := s.entries.LogWeight(r.Context(), entry)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, refResponse{Ref: ref})
}

func (s *Server) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	today, err := s.today(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	window := s.window(r)

	totals, err := s.summaries.DailyTotals(r.Context(), window, today)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	days := make([]dailyTotalJSON, 0, len(totals))
	for _, t := range totals {
		days = append(days, toDailyTotalJSON(t))
	}
	writeJSON(w, http.StatusOK, struct {
		WindowDays int              `json:"window_days"`
		Days       []dailyTotalJSON `json:"days"`
	}{WindowDays: window, Days: days})
}

func (s *Server) handleTodaySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	today, err := s.today(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	total, items, err := s.summaries.Today(r.Context(), today)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	outItems := make([]intakeItemJSON, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, intakeItemJSON{Time: it.Time, Kcal: it.Kcal})
	}
	writeJSON(w, http.StatusOK, struct {
		Total dailyTotalJSON   `json:"total"`
		Items []intakeItemJSON `json:"items"`
	}{Total: toDailyTotalJSON(total), Items: outItems})
}

func (s *Server) handleWeightSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	today, err := s.today(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	window := s.window(r)

	entries, err := s.summaries.WeightSeries(r.Context(), window, today)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	samples := make([]weightEntryJSON, 0, len(entries))
	for _, e := range entries {
		samples = append(samples, weightEntryJSON{
			Date:       e.Date.String(),
			WeightKg:   e.WeightKg,
			BodyFatPct: e.BodyFatPct,
			MusclePct:  e.MusclePct,
			WaterPct:   e.WaterPct,
		})
	}
	writeJSON(w, http.StatusOK, struct {
		WindowDays int               `json:"window_days"`
		Samples    []weightEntryJSON `json:"samples"`
	}{WindowDays: window, Samples: samples})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	today, err := s.today(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	window := s.window(r)

	points, err := s.summaries.Balance(r.Context(), window, today)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]balancePointJSON, 0, len(points))
	for _, p := range points {
		out = append(out, balancePointJSON{
			Date:               p.Date.String(),
			ConsumedCumulative: p.ConsumedCumulative,
			BudgetCumulative:   p.BudgetCumulative,
		})
	}
	writeJSON(w, http.StatusOK, struct {
		WindowDays int                `json:"window_days"`
		Points     []balancePointJSON `json:"points"`
	}{WindowDays: window, Points: out})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	days, err := s.summaries.ActivityDays(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		TotalDays  int `json:"total_days"`
		FoodDays   int `json:"food_days"`
		WeightDays int `json:"weight_days"`
	}{TotalDays: days.Total, FoodDays: days.Food, WeightDays: days.Weight})
}

func (s *Server) handleResolveProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	q := r.URL.Query()
	code := sanitizeInput(q.Get("code"))
	description := sanitizeInput(q.Get("description"))
	if code == "" && description == "" {
		s.writeError(w, r, core.ErrEmptyDescription)
		return
	}

	est, err := s.resolver.ResolveProduct(r.Context(), code, description)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, macroEstimateJSON{
		Name:     est.Name,
		Kcal:     est.Kcal,
		ProteinG: est.ProteinG,
		FatG:     est.FatG,
		CarbsG:   est.CarbsG,
		Source:   est.Source,
	})
}

func (s *Server) handleResolveActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req activityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if sanitizeInput(req.Description) == "" {
		s.writeError(w, r, core.ErrEmptyDescription)
		return
	}

	kcal, err := s.resolver.ResolveActivityKcal(r.Context(), sanitizeInput(req.Description), req.WeightKg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Kcal float64 `json:"kcal"`
	}{Kcal: kcal})
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		favorites, err := s.summaries.Favorites(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		out := make([]favoriteRequest, 0, len(favorites))
		for _, f := range favorites {
			out = append(out, favoriteRequest{
				Name:     f.Name,
				Kcal:     f.Kcal,
				ProteinG: f.ProteinG,
				FatG:     f.FatG,
				CarbsG:   f.CarbsG,
			})
		}
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		var req favoriteRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		ref, err := s.entries.AddFavorite(r.Context(), core.Favorite{
			Name:     sanitizeInput(req.Name),
			Kcal:     req.Kcal,
			ProteinG: req.ProteinG,
			FatG:     req.FatG,
			CarbsG:   req.CarbsG,
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, refResponse{Ref: ref})
	case http.MethodDelete:
		name := sanitizeInput(r.URL.Query().Get("name"))
		if name == "" {
			s.writeError(w, r, core.ErrEmptyDescription)
			return
		}
		if err := s.entries.DeleteFavorite(r.Context(), name); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		kcal, err := s.summaries.Budget(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, budgetRequest{DailyKcal: kcal})
	case http.MethodPut, http.MethodPost:
		var req budgetRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if req.DailyKcal <= 0 {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "daily_kcal must be positive"})
			return
		}
		if err := s.entries.SetBudget(r.Context(), req.DailyKcal); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPost)
	}
}
