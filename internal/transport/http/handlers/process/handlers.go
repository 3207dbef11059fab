package processhandler

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"folha/internal/domain/advantage"
	"folha/internal/platform/config"
	"folha/internal/processor"
	"folha/internal/store"
	"folha/internal/transport/http/api"
	"folha/internal/transport/http/middleware"
)

// Handler runs the two processing pipelines over uploaded source files.
// Runs is optional; when nil no history is recorded.
type Handler struct {
	Cfg  config.Config
	Runs *store.RunStore
}

func NewHandler(cfg config.Config, runs *store.RunStore) *Handler {
	return &Handler{Cfg: cfg, Runs: runs}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/process/military", h.handleProcess(advantage.VariantMilitary))
	r.Post("/process/standard", h.handleProcess(advantage.VariantStandard))
}

func (h *Handler) handleProcess(variant advantage.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())

		if err := r.ParseMultipartForm(h.Cfg.MaxBodyBytes); err != nil {
			api.Fail(w, http.StatusBadRequest, "bad_request", "invalid multipart form: "+err.Error(), reqID)
			return
		}
		files := r.MultipartForm.File["files"]
		if len(files) == 0 {
			api.Fail(w, http.StatusBadRequest, "bad_request", "no files uploaded", reqID)
			return
		}

		sources, cleanup, err := h.saveSources(files, r.MultipartForm.Value)
		defer cleanup()
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "bad_request", err.Error(), reqID)
			return
		}

		started := time.Now().UTC()
		opts := processor.Options{
			OutputDir: h.Cfg.OutputDir,
			Analysis:  h.Cfg.WriteAnalysis,
			Log:       func(msg string) { slog.Info(msg, "requestId", reqID) },
		}

		var res processor.Result
		if variant == advantage.VariantMilitary {
			res = processor.RunMilitary(sources, opts)
		} else {
			res = processor.RunStandard(sources, opts)
		}

		h.recordRun(r, variant, sources, res, started)

		if !res.OK() {
			api.Fail(w, http.StatusUnprocessableEntity, "processing_failed", res.Message, reqID)
			return
		}
		api.Success(w, res, reqID)
	}
}

// saveSources copies each upload into the upload directory and pairs it with
// its index-aligned form fields. The cleanup removes every temp file whether
// or not the run succeeds.
func (h *Handler) saveSources(files []*multipart.FileHeader, values map[string][]string) ([]advantage.Source, func(), error) {
	var saved []string
	cleanup := func() {
		for _, path := range saved {
			_ = os.Remove(path)
		}
	}

	field := func(name string, i int, fallback string) string {
		if vals := values[name]; i < len(vals) && vals[i] != "" {
			return vals[i]
		}
		return fallback
	}

	sources := make([]advantage.Source, 0, len(files))
	for i, fh := range files {
		path := filepath.Join(h.Cfg.UploadDir, uuid.NewString()+"_"+filepath.Base(fh.Filename))
		if err := saveUpload(fh, path); err != nil {
			return nil, cleanup, fmt.Errorf("saving upload %q: %w", fh.Filename, err)
		}
		saved = append(saved, path)

		hourLimit, err := parseLimit(field("hourLimit", i, ""), h.Cfg.HourLimit)
		if err != nil {
			return nil, cleanup, fmt.Errorf("invalid hourLimit for %q: %w", fh.Filename, err)
		}
		gmrLimit, err := parseLimit(field("gmrHourLimit", i, ""), h.Cfg.GMRHourLimit)
		if err != nil {
			return nil, cleanup, fmt.Errorf("invalid gmrHourLimit for %q: %w", fh.Filename, err)
		}

		sources = append(sources, advantage.Source{
			Path:         path,
			FriendlyName: field("friendlyName", i, fh.Filename),
			Kind:         advantage.SourceKind(field("kind", i, string(advantage.KindStandard))),
			HourLimit:    hourLimit,
			GMRHourLimit: gmrLimit,
		})
	}
	return sources, cleanup, nil
}

func saveUpload(fh *multipart.FileHeader, path string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func parseLimit(raw string, fallback int64) (int64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func (h *Handler) recordRun(r *http.Request, variant advantage.Variant, sources []advantage.Source, res processor.Result, started time.Time) {
	if h.Runs == nil {
		return
	}
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.FriendlyName)
	}
	_, err := h.Runs.Save(r.Context(), store.Run{
		Variant:     variant.String(),
		Status:      res.Status,
		Message:     res.Message,
		SourceFiles: names,
		OutputPaths: res.OutputPaths,
		StartedAt:   started,
		FinishedAt:  time.Now().UTC(),
	})
	if err != nil {
		slog.Warn("recording run failed", "err", err)
	}
}
