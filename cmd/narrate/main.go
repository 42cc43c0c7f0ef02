// narrate is a small CLI client for the edutoon narration service.
//
// Usage:
//
//	narrate speak welcome find_color        # queue clips by key
//	narrate say "pick the red balloon"      # queue free text
//	narrate stop                            # clear queue, cut sound
//	narrate status                          # one-shot status
//	narrate clips                           # list voice keys
//	narrate gesture                         # report a user interaction
//	narrate watch                           # stream status/expression events
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", "localhost:8087", "narration service address")
	wait := flag.Bool("wait", false, "block until queued narration has finished (speak/say)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	c := &client{addr: *addr, http: &http.Client{Timeout: 2 * time.Minute}}

	var err error
	switch args[0] {
	case "speak":
		if len(args) < 2 {
			err = fmt.Errorf("speak requires at least one clip key")
			break
		}
		err = c.speak(args[1:], *wait)
	case "say":
		if len(args) < 2 {
			err = fmt.Errorf("say requires text")
			break
		}
		err = c.say(args[1], *wait)
	case "stop":
		err = c.post("/api/stop", nil)
	case "status":
		err = c.get("/api/status")
	case "clips":
		err = c.get("/api/clips")
	case "gesture":
		err = c.post("/api/gesture", nil)
	case "watch":
		err = c.watch()
	default:
		err = fmt.Errorf("unknown command %q", args[0])
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "narrate: %v\n", err)
		os.Exit(1)
	}
}

type client struct {
	addr string
	http *http.Client
}

func (c *client) speak(keys []string, wait bool) error {
	type request struct {
		Key string `json:"key"`
	}
	reqs := make([]request, len(keys))
	for i, k := range keys {
		reqs[i] = request{Key: k}
	}
	path := "/api/speak"
	if wait {
		path += "?wait=true"
	}
	return c.post(path, map[string]any{"requests": reqs})
}

func (c *client) say(text string, wait bool) error {
	path := "/api/speak"
	if wait {
		path += "?wait=true"
	}
	return c.post(path, map[string]any{"text": text})
}

func (c *client) post(path string, body any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	resp, err := c.http.Post("http://"+c.addr+path, "application/json", reader)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

func (c *client) get(path string) error {
	resp, err := c.http.Get("http://" + c.addr + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

// watch streams status and mascot expression events until interrupted.
func (c *client) watch() error {
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+c.addr+"/ws/status", nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				done <- err
				return
			}
			fmt.Printf("%s  %s\n", time.Now().Format("15:04:05.000"), data)
		}
	}()

	select {
	case err := <-done:
		return err
	case <-interrupt:
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		return nil
	}
}

func printResponse(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s: %s", resp.Status, bytes.TrimSpace(data))
	}
	if len(bytes.TrimSpace(data)) > 0 {
		fmt.Println(string(bytes.TrimSpace(data)))
	}
	return nil
}
