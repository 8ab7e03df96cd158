package web

import (
	"net/http"
	"net/url"
	"time"

	"codeberg.org/codeexplainer/server/internal/errors"
	"codeberg.org/codeexplainer/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period, must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// clients only send control frames
	maxMessageSize = 512
)

// builds an upgrader that accepts same-host pages and the configured origins
func newUpgrader(origins []string) websocket.Upgrader {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowed[origin] {
				return true
			}

			u, err := url.Parse(origin)
			if err != nil {
				return false
			}

			return u.Host == r.Host
		},
	}
}

// pushes the session view to the peer after every state change
func (h *Handlers) StateStream(upgrader websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFrom(c)
		if !ok {
			errors.SessionNotFound(c)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// upgrader has already written an HTTP error
			logger.Warn("websocket upgrade failed", "session_id", session.ID, "error", err)
			return
		}
		defer conn.Close() //nolint:errcheck,gosec // G104: defer cleanup

		updates, unsubscribe := session.State.Subscribe()
		defer unsubscribe()

		closed := make(chan struct{})
		go readUntilClosed(conn, closed)

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-closed:
				return

			case state, ok := <-updates:
				conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket timing

				if !ok {
					conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck,gosec // G104: close message
					return
				}

				if err := conn.WriteJSON(newView(session.ID, state)); err != nil {
					logger.Debug("websocket write failed", "session_id", session.ID, "error", err)
					return
				}

			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket timing

				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}

// drains control frames so pongs and close frames are processed
func readUntilClosed(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: websocket setup
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: pong handler
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket closed unexpectedly", "error", err)
			}
			return
		}
	}
}
