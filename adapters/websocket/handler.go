package websocket

import (
	"github.com/labstack/echo/v4"
)

// Handler upgrades the connection and serves chat turns until the client
// disconnects.
func (s *Server) Handler(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := NewClient(conn)
	s.hub.Register(client)

	client.Run(s.handleMessage)

	defer s.hub.Unregister(client)

	// Wait for the client context to be done (connection closed)
	<-client.Context().Done()

	return nil
}
