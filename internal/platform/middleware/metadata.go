package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

// ClientMetadata describes the caller of a request for audit enrichment.
type ClientMetadata struct {
	IP       string
	Browser  string
	OS       string
	Platform string
}

type clientMetadataKey struct{}

// ClientInfo extracts the client IP address and a parsed User-Agent summary
// from the request and adds them to the context for audit enrichment.
func ClientInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		md := ClientMetadata{IP: remoteIP(r)}

		if uaString := r.Header.Get("User-Agent"); uaString != "" {
			ua := useragent.New(uaString)
			browser, _ := ua.Browser()
			md.Browser = strings.ToLower(strings.TrimSpace(browser))
			md.OS = strings.ToLower(strings.TrimSpace(ua.OS()))
			md.Platform = "desktop"
			if ua.Mobile() {
				md.Platform = "mobile"
			}
		}

		ctx := context.WithValue(r.Context(), clientMetadataKey{}, md)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientMetadata retrieves client metadata from the context.
func GetClientMetadata(ctx context.Context) ClientMetadata {
	if md, ok := ctx.Value(clientMetadataKey{}).(ClientMetadata); ok {
		return md
	}
	return ClientMetadata{}
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
