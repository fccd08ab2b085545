// Package qrcode builds the join link and its QR image URL shown on the
// kiosk display.
package qrcode

import (
	"fmt"
	"net/url"
	"strings"
)

const defaultImageSize = 300

// Generator produces the public join URL for this deployment and a QR
// image URL rendering it. Image generation is delegated to the
// qrserver.com API so the service itself stays stateless.
type Generator struct {
	baseURL   string
	imageSize int
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL:   strings.TrimRight(baseURL, "/"),
		imageSize: defaultImageSize,
	}
}

// JoinURL returns the address guests open to join the queue.
func (g *Generator) JoinURL() string {
	return g.baseURL + "/join"
}

// ImageURL returns a QR code image link encoding the join URL.
func (g *Generator) ImageURL() string {
	return fmt.Sprintf(
		"https://api.qrserver.com/v1/create-qr-code/?size=%dx%d&data=%s",
		g.imageSize, g.imageSize, url.QueryEscape(g.JoinURL()),
	)
}
