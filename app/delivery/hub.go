package delivery

import (
	"sync"

	"github.com/TestingSDK2/notify-backend/model"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// deviceConn serializes writes to one socket; gorilla/websocket supports at
// most one concurrent writer per connection
type deviceConn struct {
	writeMu sync.Mutex
	conn    *websocket.Conn
}

// hub tracks the websocket connection of each device currently attached to
// this process
type hub struct {
	mu    sync.RWMutex
	conns map[string]*deviceConn
}

func newHub() *hub {
	return &hub{conns: make(map[string]*deviceConn)}
}

func (h *hub) attach(deviceID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.conns[deviceID]; ok {
		old.conn.Close()
	}
	h.conns[deviceID] = &deviceConn{conn: conn}
}

// detach removes the device entry only when it still holds the caller's
// connection; a reader whose socket was replaced by a reconnect must not tear
// down the fresh one
func (h *hub) detach(deviceID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	current, ok := h.conns[deviceID]
	if !ok || current.conn != conn {
		return
	}
	current.conn.Close()
	delete(h.conns, deviceID)
}

// send writes the message to the device socket; reports whether the device
// was attached at all
func (h *hub) send(deviceID string, message model.Document) bool {
	h.mu.RLock()
	dc, ok := h.conns[deviceID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	dc.writeMu.Lock()
	defer dc.writeMu.Unlock()
	if err := dc.conn.WriteJSON(message); err != nil {
		logrus.Errorf("unable to push to device [%s]: %s", deviceID, err.Error())
	}
	return true
}
