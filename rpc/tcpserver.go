package rpc

import (
	"errors"
	"mandelbrot/misc"
	"net"
	"net/rpc"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

// TcpServer exposes the exported methods of one object over net/rpc.
type TcpServer struct {
	address  string
	listener *net.TCPListener
	object   interface{}
	shutdown chan bool

	Logger bslogger.Logger
	Name   string
	WG     *sync.WaitGroup
}

func NewTcpServer(object interface{}, address string, name string) *TcpServer {
	return &TcpServer{
		address:  address,
		object:   object,
		shutdown: make(chan bool),
		Logger:   misc.NewLogger(name),
		Name:     name,
		WG:       &sync.WaitGroup{},
	}
}

// Address is the address the server listens on. Once running this holds the real port when started on port 0.
func (ts *TcpServer) Address() string {
	if ts.listener != nil {
		return ts.listener.Addr().String()
	}
	return ts.address
}

func (ts *TcpServer) Run() error {
	handler := rpc.NewServer()
	err := handler.Register(ts.object)
	if err != nil {
		ts.Logger.Error("Registering object")
		return err
	}

	tcpAddress, err := net.ResolveTCPAddr("tcp", ts.address)
	if err != nil {
		ts.Logger.Errorf("Resolving tcp address %s", ts.address)
		return err
	}

	ts.listener, err = net.ListenTCP("tcp", tcpAddress)
	if err != nil {
		ts.Logger.Errorf("Listening at address %s", ts.address)
		return err
	}

	ts.WG.Add(1)
	go func() {
		defer ts.WG.Done()
		for {
			select {
			case <-ts.shutdown:
				err := ts.listener.Close()
				if err != nil {
					ts.Logger.Infof("Closing listener at address %s - %s", ts.Address(), err)
				}
				return
			default:
				// Poll so a shutdown is noticed even when no client connects
				ts.listener.SetDeadline(time.Now().Add(250 * time.Millisecond))
			}

			conn, err := ts.listener.Accept()
			if err != nil {
				var netErr net.Error
				if errors.As(err, &netErr) && netErr.Timeout() {
					continue
				}
				ts.Logger.Warningf("Accepting connection at address %s - %s", ts.Address(), err)
				continue
			}

			ts.Logger.Debugf("Server opened connection to client at address %s", conn.RemoteAddr())
			go handler.ServeConn(conn)
		}
	}()

	ts.Logger.Infof("Running server at address %s", ts.Address())
	return nil
}

// Stop closes the listener and waits for the accept loop to exit. Connections already open are left to their clients.
func (ts *TcpServer) Stop() error {
	if ts.listener == nil {
		return errors.New("server is not running")
	}
	select {
	case <-ts.shutdown:
		return errors.New("server already stopped")
	default:
	}
	ts.Logger.Infof("Shutting down server at address %s", ts.Address())
	close(ts.shutdown)
	ts.WG.Wait()
	return nil
}
