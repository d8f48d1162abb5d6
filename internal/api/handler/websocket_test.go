package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/travelmart_server/internal/pkg/jwt"
	"github.com/qs3c/travelmart_server/internal/pkg/pubsub"
	"github.com/qs3c/travelmart_server/internal/pkg/response"
	"github.com/qs3c/travelmart_server/internal/pkg/ws"
)

const wsTestSecret = "ws-test-secret"

func newWSServer(t *testing.T, hub *ws.Hub, origins []string) string {
	t.Helper()

	router := gin.New()
	router.GET("/ws", NewWebSocketHandler(hub, wsTestSecret, origins).Handle)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func TestWebSocketHandler_ForwardsEvents(t *testing.T) {
	hub := ws.NewHub()
	url := newWSServer(t, hub, []string{"https://travelmart.example"})

	token, err := jwt.GenerateToken(42, wsTestSecret, 1)
	require.NoError(t, err)

	header := http.Header{"Origin": []string{"https://travelmart.example"}}
	conn, _, err := websocket.DefaultDialer.Dial(url+"?token="+token, header)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return hub.IsOnline(42) }, time.Second, 10*time.Millisecond)

	hub.Forward(&pubsub.AdvertisementEvent{
		Type:            pubsub.EventAdvertisementUpdated,
		UserID:          42,
		AdvertisementID: 7,
		Action:          "pause_expiration",
	})

	var msg struct {
		Type string                    `json:"type"`
		Data pubsub.AdvertisementEvent `json:"data"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, pubsub.EventAdvertisementUpdated, msg.Type)
	assert.Equal(t, int64(7), msg.Data.AdvertisementID)

	conn.Close()
	assert.Eventually(t, func() bool { return !hub.IsOnline(42) }, time.Second, 10*time.Millisecond)
}

func TestWebSocketHandler_RejectsForeignOrigin(t *testing.T) {
	hub := ws.NewHub()
	url := newWSServer(t, hub, []string{"https://travelmart.example"})

	token, err := jwt.GenerateToken(42, wsTestSecret, 1)
	require.NoError(t, err)

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, _, err = websocket.DefaultDialer.Dial(url+"?token="+token, header)
	assert.Error(t, err)
	assert.Zero(t, hub.ConnectionCount())
}

func TestWebSocketHandler_Auth(t *testing.T) {
	router := gin.New()
	router.GET("/ws", NewWebSocketHandler(ws.NewHub(), wsTestSecret, nil).Handle)

	for _, path := range []string{"/ws", "/ws?token=garbage"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, response.CodeAuthFailed, parseResponse(t, w).Code)
	}
}
