package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-classic/internal/service/game"
	"github.com/iamasit07/connect4-classic/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	url    string
	sm     *game.SessionManager
	cm     *ConnectionManager
	signer *auth.Signer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sm := game.NewSessionManager(nil, game.Options{})
	cm := NewConnectionManager()
	sm.SetBroadcaster(cm)
	signer := auth.NewSigner("ws-secret", time.Hour)

	r := gin.New()
	r.GET("/ws/matches/:id", NewHandler(cm, sm, signer, []string{"http://localhost:5173"}).HandleWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{
		url:    "ws" + strings.TrimPrefix(srv.URL, "http"),
		sm:     sm,
		cm:     cm,
		signer: signer,
	}
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func intPtr(v int) *int { return &v }

func TestUnknownMatchIs404(t *testing.T) {
	ts := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(ts.url+"/ws/matches/nope", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRejectsForeignOrigin(t *testing.T) {
	ts := newTestServer(t)
	m, err := ts.sm.CreateMatch("")
	require.NoError(t, err)

	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(ts.url+"/ws/matches/"+m.ID, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSpectatorCannotMove(t *testing.T) {
	ts := newTestServer(t)
	m, err := ts.sm.CreateMatch("")
	require.NoError(t, err)

	conn := dial(t, ts.url+"/ws/matches/"+m.ID)
	initial := readMessage(t, conn)
	require.Equal(t, "state", initial.Type)
	require.NotNil(t, initial.Match)
	assert.Equal(t, m.ID, initial.Match.MatchID)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "make_move", Column: intPtr(3)}))
	msg := readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, 0, m.State().MoveCount())
}

func TestControllerMovesAndSpectatorsSeeThem(t *testing.T) {
	ts := newTestServer(t)
	m, err := ts.sm.CreateMatch("")
	require.NoError(t, err)
	token, err := ts.signer.GenerateMatchToken(m.ID)
	require.NoError(t, err)

	player := dial(t, ts.url+"/ws/matches/"+m.ID)
	readMessage(t, player)
	watcher := dial(t, ts.url+"/ws/matches/"+m.ID)
	readMessage(t, watcher)

	require.NoError(t, player.WriteJSON(ClientMessage{Type: "init", Token: token}))
	assert.Equal(t, "authorized", readMessage(t, player).Type)

	require.NoError(t, player.WriteJSON(ClientMessage{Type: "make_move", Column: intPtr(3)}))

	for _, conn := range []*websocket.Conn{player, watcher} {
		msg := readMessage(t, conn)
		require.Equal(t, "state", msg.Type)
		assert.Equal(t, 1, msg.Match.MoveCount)
		assert.Equal(t, 1, msg.Match.Board[5][3])
	}

	// rejected moves are reported to the sender only
	require.NoError(t, player.WriteJSON(ClientMessage{Type: "make_move", Column: intPtr(7)}))
	msg := readMessage(t, player)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "invalid column", msg.Message)

	require.NoError(t, player.WriteJSON(ClientMessage{Type: "reset"}))
	for _, conn := range []*websocket.Conn{player, watcher} {
		msg := readMessage(t, conn)
		require.Equal(t, "state", msg.Type)
		assert.Equal(t, 0, msg.Match.MoveCount)
	}
}

func TestInitWithTokenForOtherMatch(t *testing.T) {
	ts := newTestServer(t)
	m, err := ts.sm.CreateMatch("")
	require.NoError(t, err)
	token, err := ts.signer.GenerateMatchToken("someone-else")
	require.NoError(t, err)

	conn := dial(t, ts.url+"/ws/matches/"+m.ID)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "init", Token: token}))
	msg := readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "invalid token", msg.Message)
}

func TestClientRemovedOnClose(t *testing.T) {
	ts := newTestServer(t)
	m, err := ts.sm.CreateMatch("")
	require.NoError(t, err)

	conn := dial(t, ts.url+"/ws/matches/"+m.ID)
	readMessage(t, conn)
	assert.Equal(t, 1, ts.cm.ClientCount(m.ID))

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return ts.cm.ClientCount(m.ID) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestRemovedMatchDisconnectsSockets(t *testing.T) {
	ts := newTestServer(t)
	m, err := ts.sm.CreateMatch("")
	require.NoError(t, err)
	token, err := ts.signer.GenerateMatchToken(m.ID)
	require.NoError(t, err)

	conn := dial(t, ts.url+"/ws/matches/"+m.ID)
	readMessage(t, conn)
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "init", Token: token}))
	require.Equal(t, "authorized", readMessage(t, conn).Type)

	require.NoError(t, ts.sm.RemoveMatch(m.ID))

	msg := readMessage(t, conn)
	assert.Equal(t, "match_ended", msg.Type)
	assert.Equal(t, 0, ts.cm.ClientCount(m.ID))

	// the server closes the socket after the notice
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNoStatusReceived), "got %v", err)

	_, err = m.Move(3)
	assert.ErrorIs(t, err, game.ErrMatchNotFound)
	assert.Equal(t, 0, m.State().MoveCount())
}
