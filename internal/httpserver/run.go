package httpserver

import (
	"fmt"
)

// Run maps the handlers and serves until the process is stopped.
func (srv *HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return fmt.Errorf("httpserver.Run: map handlers: %w", err)
	}

	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}
