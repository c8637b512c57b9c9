package notify

import (
	"fmt"

	"github.com/esiqveland/notify"
)

// ServerInfo describes the notification daemon answering on the session bus.
type ServerInfo struct {
	Name    string `json:"name"`
	Vendor  string `json:"vendor"`
	Version string `json:"version"`
	Actions bool   `json:"actions"`
	Sound   bool   `json:"sound"`
}

// Probe asks the notification daemon who it is and whether it supports
// actions. The connection is closed before returning.
func Probe() (ServerInfo, error) {
	conn, err := connectSessionBus()
	if err != nil {
		return ServerInfo{}, err
	}
	defer conn.Close()

	srv, err := notify.GetServerInformation(conn)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	info := ServerInfo{Name: srv.Name, Vendor: srv.Vendor, Version: srv.Version}

	caps, err := notify.GetCapabilities(conn)
	if err != nil {
		return info, fmt.Errorf("%w: reading capabilities: %v", ErrUnavailable, err)
	}
	info.applyCapabilities(caps)
	return info, nil
}

// applyCapabilities sets the flags for the capability names a server
// advertises through GetCapabilities.
func (s *ServerInfo) applyCapabilities(caps []string) {
	for _, c := range caps {
		switch c {
		case "actions":
			s.Actions = true
		case "sound":
			s.Sound = true
		}
	}
}
