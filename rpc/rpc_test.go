package rpc

import (
	"errors"
	"net/rpc"
	"strings"
	"testing"
)

type Echo struct{}

func (e *Echo) Upper(request string, reply *string) error {
	if request == "" {
		return errors.New("nothing to echo")
	}
	*reply = strings.ToUpper(request)
	return nil
}

func TestServerAndClient(t *testing.T) {
	server := NewTcpServer(&Echo{}, "127.0.0.1:0", "EchoServer")
	if err := server.Run(); err != nil {
		t.Fatalf("unable to run server: %s", err)
	}
	if strings.HasSuffix(server.Address(), ":0") {
		t.Fatalf("expected a real port but got %s", server.Address())
	}

	client := NewTcpClient(server.Address(), "EchoClient")
	if err := client.Call("Echo.Upper", "hi", new(string)); err == nil {
		t.Error("expected an error calling before connecting")
	}
	if err := client.Connect(); err != nil {
		t.Fatalf("unable to connect: %s", err)
	}

	var reply string
	if err := client.Call("Echo.Upper", "band", &reply); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if reply != "BAND" {
		t.Errorf("expected BAND but got %s", reply)
	}

	err := client.Call("Echo.Upper", "", &reply)
	var serverErr rpc.ServerError
	if !errors.As(err, &serverErr) || err.Error() != "nothing to echo" {
		t.Errorf("expected the server error to come back but got %v", err)
	}

	if err := client.Disconnect(); err != nil {
		t.Errorf("unexpected error disconnecting: %s", err)
	}
	if err := client.Disconnect(); err == nil {
		t.Error("expected an error disconnecting twice")
	}
	if err := server.Stop(); err != nil {
		t.Errorf("unexpected error stopping: %s", err)
	}
	if err := server.Stop(); err == nil {
		t.Error("expected an error stopping twice")
	}
}

func TestStopBeforeRun(t *testing.T) {
	server := NewTcpServer(&Echo{}, "127.0.0.1:0", "EchoServer")
	if err := server.Stop(); err == nil {
		t.Error("expected an error stopping a server that never ran")
	}
}
