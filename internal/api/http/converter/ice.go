package converter

import (
	"github.com/immxrtalbeast/meetrelay/internal/config"
	"github.com/pion/webrtc/v3"
)

// ICEServers builds the RTCIceServer list browsers feed into their peer
// connections. TURN entries carry the configured credentials.
func ICEServers(cfg config.WebRTCConfig) []webrtc.ICEServer {
	servers := make([]webrtc.ICEServer, 0, 2)

	if len(cfg.STUNServers) > 0 {
		servers = append(servers, webrtc.ICEServer{
			URLs: cfg.STUNServers,
		})
	}

	if len(cfg.TURNServers) > 0 {
		servers = append(servers, webrtc.ICEServer{
			URLs:           cfg.TURNServers,
			Username:       cfg.TURNUsername,
			Credential:     cfg.TURNCredential,
			CredentialType: webrtc.ICECredentialTypePassword,
		})
	}

	return servers
}
