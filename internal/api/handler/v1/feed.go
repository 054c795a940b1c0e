package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/findlocalfirewood/firewood-api/internal/api/handler/v1/response"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
	"github.com/findlocalfirewood/firewood-api/internal/metrics"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = (feedPongWait * 9) / 10
	feedSendBuffer = 16
)

type feedClient struct {
	conn    *websocket.Conn
	send    chan []byte
	standID uuid.UUID
}

type feedMessage struct {
	standID uuid.UUID
	payload []byte
}

// FeedHub fans new check-ins out to the websocket viewers of each stand.
// All client bookkeeping happens on the Run goroutine.
type FeedHub struct {
	upgrader   websocket.Upgrader
	clients    map[uuid.UUID]map[*feedClient]struct{}
	broadcast  chan feedMessage
	register   chan *feedClient
	unregister chan *feedClient
	done       chan struct{}
}

func NewFeedHub(allowedOrigins []string) *FeedHub {
	return &FeedHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
		clients:    make(map[uuid.UUID]map[*feedClient]struct{}),
		broadcast:  make(chan feedMessage, 64),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is canceled, then disconnects everyone.
func (h *FeedHub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for _, viewers := range h.clients {
			for c := range viewers {
				close(c.send)
			}
		}
		h.clients = nil
		metrics.FeedClients.Set(0)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			if h.clients[c.standID] == nil {
				h.clients[c.standID] = make(map[*feedClient]struct{})
			}
			h.clients[c.standID][c] = struct{}{}
			metrics.FeedClients.Inc()
		case c := <-h.unregister:
			h.drop(c)
		case msg := <-h.broadcast:
			for c := range h.clients[msg.standID] {
				select {
				case c.send <- msg.payload:
				default:
					h.drop(c)
				}
			}
		}
	}
}

func (h *FeedHub) drop(c *feedClient) {
	viewers := h.clients[c.standID]
	if _, ok := viewers[c]; !ok {
		return
	}

	delete(viewers, c)
	if len(viewers) == 0 {
		delete(h.clients, c.standID)
	}
	close(c.send)
	metrics.FeedClients.Dec()
}

// Broadcast never blocks the caller. Messages are dropped when the hub is
// stopped or its queue is full.
func (h *FeedHub) Broadcast(standID uuid.UUID, entry domain.CheckInEntry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		zap.L().Error("could not encode feed entry", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- feedMessage{standID: standID, payload: payload}:
	case <-h.done:
	default:
		zap.L().Warn("feed queue full, dropping check-in", zap.String("stand_id", standID.String()))
	}
}

// HandleFeed godoc
// @Summary      Live check-ins for a stand
// @Description  Upgrades to a websocket that receives each new check-in as a JSON CheckInEntry.
// @Tags         checkins
// @Param        standID  path  string  true  "Stand ID"
// @Success      101  {string}  string  "Switching Protocols to WebSocket"
// @Failure      400  {object}  response.Err
// @Router       /stands/{standID}/feed [get]
func (h *FeedHub) HandleFeed(ctx *gin.Context) {
	standID, respErr := standIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &feedClient{
		conn:    conn,
		send:    make(chan []byte, feedSendBuffer),
		standID: standID,
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump(h)
}

func (c *feedClient) writePump() {
	ticker := time.NewTicker(feedPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches for the viewer going away; the feed is one-way.
func (c *feedClient) readPump(h *FeedHub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(feedPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("feed viewer disconnected", zap.Error(err))
			}
			return
		}
	}
}
