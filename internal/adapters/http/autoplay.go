package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"svw.info/blockfall/internal/domain"
)

const wsWriteWait = 5 * time.Second

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// autoplayReq is the first message a client sends. Without batches, Count
// batches are generated from Seed.
type autoplayReq struct {
	playReq
	Seed  int64 `json:"seed,omitempty"`
	Level int   `json:"level,omitempty"`
	Count int   `json:"count,omitempty"`
}

// wsTracer streams every played turn to one connection.
type wsTracer struct {
	conn *websocket.Conn
}

func (t wsTracer) send(kind string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data, err := json.Marshal(wsMessage{Type: kind, Payload: payload})
	if err != nil {
		return err
	}
	_ = t.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return t.conn.WriteMessage(websocket.TextMessage, data)
}

func (t wsTracer) Write(v any) error { return t.send("turn", v) }

// upgrader keeps the default check: a browser may only connect from the page
// this server serves.
var upgrader = websocket.Upgrader{}

// handleAutoplay plays one greedy game per connection and closes it after
// the result.
func (h *Handler) handleAutoplay(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	out := wsTracer{conn: conn}

	var req autoplayReq
	_ = conn.SetReadDeadline(time.Now().Add(h.SearchTimeout))
	if err := conn.ReadJSON(&req); err != nil {
		_ = out.send("error", errorResp{Error: err.Error()})
		return
	}
	ctx := r.Context()
	batches, err := h.autoplayBatches(r, req)
	if err != nil {
		_ = out.send("error", errorResp{Error: err.Error()})
		return
	}
	res, err := h.UC.PlayGreedy(ctx, req.Dimension, batches, out)
	if err != nil {
		_ = out.send("error", errorResp{Error: err.Error()})
		return
	}
	if err := out.send("result", res); err != nil {
		h.Log.Debug("autoplay result not delivered", "err", err)
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(wsWriteWait))
}

func (h *Handler) autoplayBatches(r *http.Request, req autoplayReq) ([]domain.FillBatch, error) {
	if len(req.Batches) > 0 {
		return req.batches(r.Context(), h.UC)
	}
	if req.Level < 1 {
		req.Level = 1
	}
	if req.Count < 1 || req.Count > 100 {
		req.Count = 10
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	if !req.Dimension.Valid() {
		return nil, errInvalidDimension(req.Dimension)
	}
	batches, _, err := h.UC.Generate(r.Context(), req.Seed, req.Dimension, req.Level, req.Count)
	return batches, err
}
