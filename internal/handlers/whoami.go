package handlers

import "context"

// WhoAmIResponse describes the calling client.
type WhoAmIResponse struct {
	Body struct {
		IPAddress string `doc:"Client IP address"        example:"203.0.113.7"    json:"ipaddress"`
		Language  string `doc:"Accept-Language header"   example:"en-US,en;q=0.9" json:"language"`
		Software  string `doc:"User-Agent header"        example:"curl/8.5.0"     json:"software"`
	}
}

// WhoAmI echoes the request metadata collected by the request meta middleware.
func WhoAmI(ctx context.Context, _ *struct{}) (*WhoAmIResponse, error) {
	meta := RequestMetaFromContext(ctx)

	resp := &WhoAmIResponse{}
	resp.Body.IPAddress = meta.ClientIP
	resp.Body.Language = meta.Language
	resp.Body.Software = meta.UserAgent

	return resp, nil
}
