package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"simtracker/internal/models"
	"simtracker/internal/sims"
)

func ListSims(store *sims.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.ListAll(r.Context())
		if err != nil {
			lg.Errorw("list sims failed", "error", err)
			respondError(w, err.Error())
			return
		}
		if records == nil {
			records = []models.Sim{}
		}
		respondSuccess(w, records)
	}
}

func CreateSim(store *sims.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in sims.SimInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := store.Create(r.Context(), in)
		if err != nil {
			if !errors.Is(err, sims.ErrMEIDRequired) {
				lg.Errorw("create sim failed", "meid", in.MEID, "error", err)
			}
			respondError(w, err.Error())
			return
		}
		respondSuccess(w, res)
	}
}

// importRow tolerates the legacy uploader's misspelled key for the BAN
// field ("banTo_activate_on"); everything else decodes straight into the
// canonical input.
type importRow struct {
	sims.SimInput
	BanToActivateOnLegacy string `json:"banTo_activate_on"`
}

// ImportCSV accepts either a JSON array of records (the front end parses
// the file client-side and posts rows) or a raw text/csv body. Rows are
// inserted independently; per-row failures are logged, not surfaced, which
// is the contract the importer has always had.
func ImportCSV(store *sims.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ins []sims.SimInput
		if strings.HasPrefix(r.Header.Get("Content-Type"), "text/csv") {
			parsed, err := sims.ReadCSV(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			ins = parsed
		} else {
			var rows []importRow
			if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			ins = make([]sims.SimInput, 0, len(rows))
			for _, row := range rows {
				in := row.SimInput
				if in.BanToActivateOn == "" {
					in.BanToActivateOn = row.BanToActivateOnLegacy
				}
				ins = append(ins, in)
			}
		}
		res := store.BulkCreate(r.Context(), ins)
		lg.Infow("csv import", "inserted", res.Inserted, "skipped", res.Skipped, "failed", res.Failed)
		respondJSON(w, map[string]any{"success": true})
	}
}

func UpdateSim(store *sims.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var patch sims.SimPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := store.Update(r.Context(), uint(id), patch)
		if err != nil {
			lg.Errorw("update sim failed", "id", id, "error", err)
			respondError(w, err.Error())
			return
		}
		respondJSON(w, map[string]any{"success": true, "data": res.Sim, "changes": res.RowsAffected})
	}
}

func DeleteSim(store *sims.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		res, err := store.Delete(r.Context(), uint(id))
		if err != nil {
			lg.Errorw("delete sim failed", "id", id, "error", err)
			respondError(w, err.Error())
			return
		}
		// Absent ids still report success; "deleted" carries the real outcome.
		respondSuccess(w, res)
	}
}

// ExportCSV writes the export to a temp file and streams it back, removing
// the file afterwards.
func ExportCSV(store *sims.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.ListAll(r.Context())
		if err != nil {
			lg.Errorw("csv export failed", "error", err)
			respondError(w, err.Error())
			return
		}
		tmp, err := os.CreateTemp("", "sims-*.csv")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer os.Remove(tmp.Name())
		if err := sims.WriteCSV(tmp, records); err != nil {
			tmp.Close()
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := tmp.Close(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=sims.csv")
		http.ServeFile(w, r, tmp.Name())
	}
}
