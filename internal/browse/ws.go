package browse

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lovelace-project/lovelace-cli/internal/api"
	"github.com/lovelace-project/lovelace-cli/internal/search"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The dashboard binds to loopback only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// inputFrame is what the dashboard sends on every keystroke.
type inputFrame struct {
	Type string `json:"type"` // "input" or "clear"
	Text string `json:"text,omitempty"`
}

// stateFrame mirrors search.State on the wire.
type stateFrame struct {
	Type    string          `json:"type"` // always "state"
	Query   string          `json:"query"`
	Results []api.BoardGame `json:"results"`
	Loading bool            `json:"loading"`
	Open    bool            `json:"open"`
}

// handleSearchSocket runs one live-search session per websocket connection.
// Each connection owns its own pipeline; closing the socket closes the
// pipeline and discards any in-flight request.
func (s *Server) handleSearchSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// gorilla/websocket allows one concurrent writer; state callbacks come
	// from the pipeline's worker goroutines, so writes are serialized here.
	var writeMu sync.Mutex
	pipeline := search.New(s.client, search.Config{
		Debounce: s.cfg.Debounce,
		PageSize: s.cfg.DropdownSize,
		Logger:   s.log,
		OnChange: func(st search.State) {
			writeMu.Lock()
			defer writeMu.Unlock()
			frame := stateFrame{
				Type:    "state",
				Query:   st.Query,
				Results: st.Results,
				Loading: st.Loading,
				Open:    st.Open,
			}
			if frame.Results == nil {
				frame.Results = []api.BoardGame{}
			}
			if err := conn.WriteJSON(frame); err != nil {
				s.log.Debug("writing search state failed", zap.Error(err))
			}
		},
	})
	defer pipeline.Close()

	for {
		var frame inputFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("search socket closed unexpectedly", zap.Error(err))
			}
			return
		}

		switch frame.Type {
		case "input":
			pipeline.Input(frame.Text)
		case "clear":
			pipeline.Clear()
		default:
			s.log.Debug("ignoring unknown search frame", zap.String("type", frame.Type))
		}
	}
}
