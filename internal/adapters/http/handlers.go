package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"svw.info/blockfall/internal/board"
	"svw.info/blockfall/internal/domain"
	"svw.info/blockfall/internal/infrastructure/storage"
	"svw.info/blockfall/internal/ports"
	"svw.info/blockfall/internal/usecase"
	"svw.info/blockfall/internal/validator"
)

type Handler struct {
	UC *usecase.Service

	// SearchTimeout bounds every search request.
	SearchTimeout time.Duration
	Log           *slog.Logger
}

func New(uc *usecase.Service) *Handler {
	return &Handler{UC: uc, SearchTimeout: 10 * time.Second, Log: slog.Default()}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/stabilize", h.handleStabilize)
		r.Post("/best-move", h.handleBestMove)
		r.Post("/top-moves", h.handleTopMoves)
		r.Post("/generate", h.handleGenerate)
		r.Post("/validate", h.handleValidate)
		r.Post("/hint", h.handleHint)
		r.Post("/play", h.handlePlay)
		r.Get("/scenarios", h.handleList)
		r.Post("/scenarios", h.handleSave)
		r.Get("/scenarios/{id}", h.handleLoad)
		r.Post("/scenarios/{id}/solve", h.handleSolveScenario)
	})
	r.Get("/ws/autoplay", h.handleAutoplay)
}

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, validator.ErrInvalidBoard),
		errors.Is(err, validator.ErrInvalidBatch),
		errors.Is(err, validator.ErrInvalidDimension),
		errors.Is(err, storage.ErrInvalidScenario),
		errors.Is(err, usecase.ErrBudgetTooLarge),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Log.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResp{Error: err.Error()})
}

var errBadRequest = errors.New("bad request")

func errInvalidDimension(d domain.Dimension) error {
	return fmt.Errorf("%w: %s", validator.ErrInvalidDimension, d)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(errBadRequest, err)
	}
	return nil
}

// ---- Board requests ----

type boardReq struct {
	Dimension domain.Dimension       `json:"dimension"`
	Board     []domain.PlacementSpec `json:"board"`
	Progress  *domain.Progress       `json:"progress,omitempty"`
}

func (req boardReq) build() (*board.Board, domain.Progress, error) {
	placements := make([]domain.Placement, len(req.Board))
	for i, p := range req.Board {
		placements[i] = p.Placement()
	}
	b, err := validator.NewBoard(req.Dimension, placements)
	if err != nil {
		return nil, domain.Progress{}, err
	}
	p := domain.StartProgress()
	if req.Progress != nil {
		p = *req.Progress
		if p.Level < 1 {
			p.Level = 1
		}
	}
	return b, p, nil
}

type boardResp struct {
	Snapshot   board.Snapshot         `json:"snapshot"`
	Board      []domain.PlacementSpec `json:"board"`
	Progress   domain.Progress        `json:"progress"`
	Overflowed bool                   `json:"overflowed"`
}

func newBoardResp(b *board.Board, p domain.Progress) boardResp {
	placements := b.Placements()
	specs := make([]domain.PlacementSpec, len(placements))
	for i, pl := range placements {
		specs[i] = pl.Spec()
	}
	return boardResp{Snapshot: b.Snapshot(), Board: specs, Progress: p, Overflowed: b.Overflowed()}
}

func (h *Handler) handleStabilize(w http.ResponseWriter, r *http.Request) {
	var req boardReq
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	b, p, err := req.build()
	if err != nil {
		h.fail(w, err)
		return
	}
	p = h.UC.Stabilize(r.Context(), b, p)
	writeJSON(w, http.StatusOK, newBoardResp(b, p))
}

type planResp struct {
	Found      bool            `json:"found"`
	Moves      []domain.Move   `json:"moves"`
	Result     domain.Progress `json:"result"`
	Nodes      int             `json:"nodes"`
	DurationMs int64           `json:"durationMs"`
}

func newPlanResp(plan domain.Plan, ok bool, st ports.Stats) planResp {
	moves := plan.Moves
	if moves == nil {
		moves = []domain.Move{}
	}
	return planResp{Found: ok, Moves: moves, Result: plan.Result, Nodes: st.Nodes, DurationMs: st.Duration.Milliseconds()}
}

func (h *Handler) handleBestMove(w http.ResponseWriter, r *http.Request) {
	var req boardReq
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	b, p, err := req.build()
	if err != nil {
		h.fail(w, err)
		return
	}
	plan, ok, st, err := h.UC.BestMove(r.Context(), b, p)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlanResp(plan, ok, st))
}

type topMovesReq struct {
	boardReq
	Batches []domain.BatchSpec `json:"batches"`
	Target  domain.Target      `json:"target"`
}

func (h *Handler) handleTopMoves(w http.ResponseWriter, r *http.Request) {
	var req topMovesReq
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	b, p, err := req.build()
	if err != nil {
		h.fail(w, err)
		return
	}
	batches := domain.Batches(req.Batches)
	if err := h.UC.ValidateBatches(r.Context(), req.Dimension, batches); err != nil {
		h.fail(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.SearchTimeout)
	defer cancel()
	plan, ok, st, err := h.UC.TopMoves(ctx, b, batches, req.Target, p)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlanResp(plan, ok, st))
}

// ---- Generate ----

type generateReq struct {
	Dimension domain.Dimension `json:"dimension"`
	Level     int              `json:"level,omitempty"`
	Count     int              `json:"count,omitempty"`
	Seed      int64            `json:"seed,omitempty"`
}

type generateResp struct {
	Batches    []domain.BatchSpec `json:"batches"`
	Seed       int64              `json:"seed"`
	Nodes      int                `json:"nodes"`
	DurationMs int64              `json:"durationMs"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	if !req.Dimension.Valid() {
		h.fail(w, errInvalidDimension(req.Dimension))
		return
	}
	if req.Level < 1 {
		req.Level = 1
	}
	if req.Count < 1 || req.Count > 100 {
		req.Count = 10
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	batches, st, err := h.UC.Generate(r.Context(), seed, req.Dimension, req.Level, req.Count)
	if err != nil {
		h.fail(w, err)
		return
	}
	specs := make([]domain.BatchSpec, len(batches))
	for i, b := range batches {
		specs[i] = b.Spec()
	}
	writeJSON(w, http.StatusOK, generateResp{Batches: specs, Seed: seed, Nodes: st.Nodes, DurationMs: st.Duration.Milliseconds()})
}

// ---- Validate ----

type validateReq struct {
	Dimension domain.Dimension       `json:"dimension"`
	Board     []domain.PlacementSpec `json:"board"`
	Batches   []domain.BatchSpec     `json:"batches,omitempty"`
}

type validateResp struct {
	OK        bool              `json:"ok"`
	Conflicts []domain.Position `json:"conflicts,omitempty"`
}

// handleValidate places blocks without checks so that every broken cell can
// be reported, not only the first.
func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	if !req.Dimension.Valid() {
		h.fail(w, errInvalidDimension(req.Dimension))
		return
	}
	var conflicts []domain.Position
	b := board.New(req.Dimension)
	for _, p := range req.Board {
		blk := p.Block.Block()
		if !blk.Valid() || !spanFree(b, blk, p.At) {
			conflicts = append(conflicts, p.At)
			continue
		}
		b.Place(blk, p.At)
	}
	ok, conf, err := h.UC.Validate(r.Context(), b)
	if err != nil {
		h.fail(w, err)
		return
	}
	conflicts = append(conflicts, conf...)
	for _, spec := range req.Batches {
		ok2, conf, err := h.UC.ValidateBatch(r.Context(), req.Dimension, spec.Batch())
		if err != nil {
			h.fail(w, err)
			return
		}
		ok = ok && ok2
		conflicts = append(conflicts, conf...)
	}
	writeJSON(w, http.StatusOK, validateResp{OK: ok && len(conflicts) == 0, Conflicts: conflicts})
}

// spanFree is CanAccept without the length limit, which Validate reports.
func spanFree(b *board.Board, blk *domain.Block, at domain.Position) bool {
	dim := b.Dimension()
	if !dim.Contains(at) {
		return false
	}
	for i := 0; i < blk.Length(); i++ {
		q, ok := dim.Right(at, i)
		if !ok || !b.IsFreeAt(q) {
			return false
		}
	}
	return true
}

// ---- Hint ----

type hintResp struct {
	Found bool         `json:"found"`
	Hint  *domain.Hint `json:"hint,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req boardReq
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	b, p, err := req.build()
	if err != nil {
		h.fail(w, err)
		return
	}
	hh, ok, err := h.UC.Hint(r.Context(), b, p)
	if err != nil {
		h.fail(w, err)
		return
	}
	resp := hintResp{Found: ok}
	if ok {
		resp.Hint = &hh
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Play ----

type playReq struct {
	Dimension domain.Dimension   `json:"dimension"`
	Batches   []domain.BatchSpec `json:"batches"`
}

func (req playReq) batches(ctx context.Context, uc *usecase.Service) ([]domain.FillBatch, error) {
	if !req.Dimension.Valid() {
		return nil, errInvalidDimension(req.Dimension)
	}
	batches := domain.Batches(req.Batches)
	if err := uc.ValidateBatches(ctx, req.Dimension, batches); err != nil {
		return nil, err
	}
	return batches, nil
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playReq
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	batches, err := req.batches(r.Context(), h.UC)
	if err != nil {
		h.fail(w, err)
		return
	}
	res, err := h.UC.PlayGreedy(r.Context(), req.Dimension, batches)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ---- Scenarios ----

type saveResp struct {
	ID string `json:"id"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var s domain.Scenario
	if err := decode(r, &s); err != nil {
		h.fail(w, err)
		return
	}
	s.Normalize()
	if _, _, err := h.UC.ScenarioBoard(r.Context(), &s); err != nil {
		h.fail(w, err)
		return
	}
	if err := h.UC.Save(r.Context(), &s); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saveResp{ID: s.ID})
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	s, err := h.UC.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type listResp struct {
	Scenarios []domain.ScenarioMeta `json:"scenarios"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ss, err := h.UC.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResp{Scenarios: ss})
}

func (h *Handler) handleSolveScenario(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.SearchTimeout)
	defer cancel()
	plan, ok, st, err := h.UC.SolveScenario(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlanResp(plan, ok, st))
}
