// wsuci bridges a single WebSocket connection to a UCI driver: it reads UCI lines as text frames
// and feeds them to the same uci.Driver used by cmd/corvid, writing the driver's output lines
// back as text frames. This is the spirit of the teacher's cmd/livechess-uci adaptor (bridging an
// external line source/sink into the identical uci.NewDriver) generalized to a transport any
// browser-based GUI can use, in place of a DGT-board-specific hardware integration wholly outside
// a chess search engine's domain.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/uci"
	"github.com/gorilla/websocket"
	"github.com/seekerror/logw"
)

var (
	addr = flag.String("addr", ":8080", "Listen address")
	path = flag.String("path", "/uci", "WebSocket endpoint path")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: wsuci [options]

wsuci serves a UCI engine over a single WebSocket connection.
Options:
`)
		flag.PrintDefaults()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func main() {
	flag.Parse()
	ctx := context.Background()

	http.HandleFunc(*path, func(w http.ResponseWriter, r *http.Request) {
		serve(ctx, w, r)
	})

	logw.Infof(ctx, "Listening on %v%v", *addr, *path)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		logw.Exitf(ctx, "ListenAndServe failed: %v", err)
	}
}

func serve(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logw.Errorf(ctx, "Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	e := engine.New(ctx, "corvid", "corvidchess")

	in := readSocketLines(ctx, conn)
	if first, ok := <-in; !ok || first != uci.ProtocolName {
		logw.Errorf(ctx, "First line was not %q", uci.ProtocolName)
		return
	}

	driver, out := uci.NewDriver(ctx, e, in)
	go writeSocketLines(ctx, conn, out)

	<-driver.Closed()
}

// readSocketLines reads text frames off conn into a chan, one line per frame. Async.
func readSocketLines(ctx context.Context, conn *websocket.Conn) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				logw.Debugf(ctx, "WebSocket read closed: %v", err)
				return
			}
			logw.Debugf(ctx, "<< %v", string(data))
			ret <- string(data)
		}
	}()
	return ret
}

// writeSocketLines writes each line from out as its own text frame.
func writeSocketLines(ctx context.Context, conn *websocket.Conn, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, ">> %v", line)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			logw.Errorf(ctx, "WebSocket write failed: %v", err)
			return
		}
	}
}
