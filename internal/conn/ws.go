package conn

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rowdb/rowdb/internal/db"
	"github.com/rowdb/rowdb/pkg"
)

// The websocket surface carries the same requests as the HTTP routes:
// one socket, `{"action": ..., ...request fields}` per message, the
// usual Response back with the client's request id echoed.

type RequestAction string

const (
	RequestActionCreate       RequestAction = "create"
	RequestActionCreateTable  RequestAction = "createTable"
	RequestActionDropTable    RequestAction = "dropTable"
	RequestActionRenameTable  RequestAction = "renameTable"
	RequestActionInsertColumn RequestAction = "insertColumn"
	RequestActionInsertRow    RequestAction = "insertRow"
	RequestActionSelect       RequestAction = "select"
	RequestActionUpdateTable  RequestAction = "updateTable"
	RequestActionListTables   RequestAction = "listTables"
)

func (action RequestAction) IsReadOnly() bool {
	return action == RequestActionSelect || action == RequestActionListTables
}

type WsRequest struct {
	Action RequestAction `json:"action"`
	ReqId  int           `json:"__rowdb_client_req_id__"` // used in rowdb clients
}

func ActionHandler(store *db.Store, action RequestAction, raw []byte) Response {
	switch action {
	case RequestActionCreate:
		return CreateReqHandler(store, raw)
	case RequestActionCreateTable:
		return CreateTableReqHandler(store, raw)
	case RequestActionDropTable:
		return DropTableReqHandler(store, raw)
	case RequestActionRenameTable:
		return RenameTableReqHandler(store, raw)
	case RequestActionInsertColumn:
		return InsertColumnReqHandler(store, raw)
	case RequestActionInsertRow:
		return InsertRowReqHandler(store, raw)
	case RequestActionSelect:
		return SelectReqHandler(store, raw)
	case RequestActionUpdateTable:
		return UpdateTableReqHandler(store, raw)
	case RequestActionListTables:
		return ListTablesReqHandler(store)
	default:
		return NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unknown action: %s", action))
	}
}

var upgrader = websocket.Upgrader{
	WriteBufferSize: 1024 * 10,
	ReadBufferSize:  1024 * 10,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

var (
	ws_conns_locker sync.Mutex
	ws_conns        = pkg.Map[string, *websocket.Conn]{}
)

func registerWsConn(id string, conn *websocket.Conn) {
	ws_conns_locker.Lock()
	defer ws_conns_locker.Unlock()
	ws_conns.Set(id, conn)
}

func unregisterWsConn(id string) {
	ws_conns_locker.Lock()
	defer ws_conns_locker.Unlock()
	ws_conns.Delete(id)
}

// closeWsConns drops every open socket; used on shutdown.
func closeWsConns() {
	ws_conns_locker.Lock()
	defer ws_conns_locker.Unlock()
	for _, id := range ws_conns.Keys() {
		ws_conns.Get(id).Close()
		ws_conns.Delete(id)
	}
}

func wsHandler(store *db.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			pkg.ErrorLog(err)
			return
		}

		conn_id := uuid.NewString()
		registerWsConn(conn_id, conn)
		pkg.InfoLog("new connection", conn_id, "from", r.RemoteAddr)

		defer conn.Close()
		defer unregisterWsConn(conn_id)
		defer pkg.InfoLog("connection closed", conn_id)

		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					pkg.ErrorLog("unexpected close", err)
				} else {
					pkg.DebugLog("connection closed", err)
				}
				return
			}

			var req WsRequest
			if err := json.Unmarshal(message, &req); err != nil {
				pkg.ErrorLog("parsing request", err)
				continue
			}

			res := ActionHandler(store, req.Action, message)
			res.ReqId = req.ReqId

			if err := conn.WriteJSON(res); err != nil {
				pkg.ErrorLog("writing response", err)
				return
			}
		}
	}
}
