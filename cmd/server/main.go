// Command server exposes the planner over a websocket: one "solve"
// request in, one "solveResult" envelope out, structured errors for
// anything malformed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/rummisolve/api"
	"github.com/domino14/rummisolve/config"
)

const GracefulShutdownTimeout = 20 * time.Second

var addr = flag.String("addr", ":8088", "listen address")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type InMsg struct {
	T     string          `json:"t"`
	ReqID string          `json:"reqId,omitempty"`
	P     json.RawMessage `json:"p,omitempty"`
}

type OutMsg struct {
	T     string      `json:"t"`
	ReqID string      `json:"reqId,omitempty"`
	P     interface{} `json:"p,omitempty"`
}

type ErrPayload struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

func writeErr(ws *websocket.Conn, reqID, code, msg string) {
	ws.WriteJSON(OutMsg{T: "error", ReqID: reqID, P: ErrPayload{Code: code, Msg: msg}})
}

func handleConn(ws *websocket.Conn) {
	defer ws.Close()
	for {
		var in InMsg
		if err := ws.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("ws-read")
			}
			return
		}
		switch in.T {
		case "solve":
			var req api.SolveRequest
			if err := json.Unmarshal(in.P, &req); err != nil {
				writeErr(ws, in.ReqID, "BAD_PAYLOAD", err.Error())
				continue
			}
			resp := api.Solve(context.Background(), req)
			if err := ws.WriteJSON(OutMsg{T: "solveResult", ReqID: in.ReqID, P: resp}); err != nil {
				log.Debug().Err(err).Msg("ws-write")
				return
			}
		case "ping":
			ws.WriteJSON(OutMsg{T: "pong", ReqID: in.ReqID})
		default:
			writeErr(ws, in.ReqID, "UNKNOWN_TYPE", "unknown message type: "+in.T)
		}
	}
}

func wsHandler(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Msg("upgrade-failed")
		return
	}
	handleConn(ws)
}

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg := config.Load()
	cfg.AdjustLogLevel()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler)
	srv := &http.Server{Addr: *addr, Handler: mux}

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("got quit signal...")
		ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Msgf("HTTP server Shutdown: %v", err)
		}
		cancel()
		close(idleConnsClosed)
	}()

	log.Info().Str("addr", *addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("")
	}
	<-idleConnsClosed
	log.Info().Msg("server gracefully shutting down")
}
