package export

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kuhlali/chamapro-extend/internal/export"
	"github.com/kuhlali/chamapro-extend/internal/http/respond"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes expects a {groupID} URL parameter.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
	r.Get("/download", h.download)
}

type summaryResponse struct {
	Items   []export.Item `json:"items"`
	Total   string        `json:"total"`
	Summary string        `json:"summary"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	st, err := h.svc.Statement(r.Context(), groupID, respond.Caller(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, summaryResponse{Items: st.Items, Total: st.Total, Summary: export.Summary(st)})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	st, err := h.svc.Statement(r.Context(), groupID, respond.Caller(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"statement_%s.zip\"", time.Now().Format("20060102")))

	zw := zip.NewWriter(w)
	defer zw.Close()

	csvFile, err := zw.Create("contributions.csv")
	if err == nil {
		err = export.WriteCSV(csvFile, st)
	}

	if err == nil {
		var summaryFile io.Writer

		summaryFile, err = zw.Create("summary.txt")
		if err == nil {
			_, err = io.WriteString(summaryFile, export.Summary(st))
		}
	}

	if err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
