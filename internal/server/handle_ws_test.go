package server

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func TestWSIntents(t *testing.T) {
	s := testServer(t)
	srv := httptest.NewServer(s.srv.Handler)
	defer srv.Close()

	id, _ := s.games.Create()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + srv.URL[len("http"):] + "/ws/games/" + id
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	var hello WSReply
	if err := wsjson.Read(ctx, conn, &hello); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if hello.Game.ID != id || hello.Game.State != "ready" {
		t.Fatalf("initial snapshot = %s/%s", hello.Game.ID, hello.Game.State)
	}

	steps := []struct {
		in      Intent
		state   string
		wantErr bool
	}{
		{Intent{Type: "submit"}, "ready", true},
		{Intent{Type: "nearest", Cities: []string{"Shanghai", "Beijing"}}, "ready", false},
		{Intent{Type: "farthest", Pair: intPtr(9)}, "ready", true},
		{Intent{Type: "farthest", Pair: intPtr(1)}, "ready", false},
		{Intent{Type: "shout"}, "ready", true},
		{Intent{Type: "submit"}, "judged", false},
		{Intent{Type: "start"}, "ready", false},
	}

	for i, st := range steps {
		if err := wsjson.Write(ctx, conn, st.in); err != nil {
			t.Fatalf("step %d: write: %v", i, err)
		}
		var reply WSReply
		if err := wsjson.Read(ctx, conn, &reply); err != nil {
			t.Fatalf("step %d: read: %v", i, err)
		}
		if (reply.Error != "") != st.wantErr {
			t.Errorf("step %d (%s): error = %q, wantErr %v", i, st.in.Type, reply.Error, st.wantErr)
		}
		if reply.Game.State != st.state {
			t.Errorf("step %d (%s): state = %q, want %q", i, st.in.Type, reply.Game.State, st.state)
		}
		if st.in.Type == "submit" && !st.wantErr {
			if reply.Game.Result == nil || !reply.Game.Result.Success {
				t.Errorf("step %d: result = %+v, want success", i, reply.Game.Result)
			}
		}
	}

	conn.Close(websocket.StatusNormalClosure, "done")
}

func TestWSUnknownGame(t *testing.T) {
	srv := httptest.NewServer(testServer(t).srv.Handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, resp, err := websocket.Dial(ctx, "ws"+srv.URL[len("http"):]+"/ws/games/missing", nil)
	if err == nil {
		t.Fatal("dial succeeded for unknown game")
	}
	if resp == nil || resp.StatusCode != 404 {
		t.Errorf("resp = %v, want 404", resp)
	}
}

func dialGame(t *testing.T, ctx context.Context, srvURL, id string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.Dial(ctx, "ws"+srvURL[len("http"):]+"/ws/games/"+id, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	var hello WSReply
	if err := wsjson.Read(ctx, conn, &hello); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	return conn
}

func TestWSIntentsKeepGameAlive(t *testing.T) {
	s := testServer(t)
	clock := newTestClock()
	s.games.now = clock.Now
	srv := httptest.NewServer(s.srv.Handler)
	defer srv.Close()

	id, _ := s.games.Create()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialGame(t, ctx, srv.URL, id)
	defer conn.CloseNow()

	clock.Advance(20 * time.Minute)
	if err := wsjson.Write(ctx, conn, Intent{Type: "nearest", Pair: intPtr(0)}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var reply WSReply
	if err := wsjson.Read(ctx, conn, &reply); err != nil {
		t.Fatalf("read: %v", err)
	}

	if ids := s.games.Sweep(15 * time.Minute); len(ids) != 0 {
		t.Fatalf("game in play was evicted: %v", ids)
	}
	if _, err := s.games.Get(id); err != nil {
		t.Errorf("get after sweep: %v", err)
	}
}

func TestWSClosesWhenGameRemoved(t *testing.T) {
	s := testServer(t)
	srv := httptest.NewServer(s.srv.Handler)
	defer srv.Close()

	id, _ := s.games.Create()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialGame(t, ctx, srv.URL, id)
	defer conn.CloseNow()

	s.games.Delete(id)

	if err := wsjson.Write(ctx, conn, Intent{Type: "submit"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var reply WSReply
	if err := wsjson.Read(ctx, conn, &reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply.Error != "game not found" {
		t.Errorf("error = %q, want game not found", reply.Error)
	}

	var next WSReply
	err := wsjson.Read(ctx, conn, &next)
	if websocket.CloseStatus(err) != websocket.StatusGoingAway {
		t.Errorf("read after removal: %v, want going-away close", err)
	}
}
