package request

import (
	"strings"

	"seatly/internal/domain/redirect"
)

// RedirectRequest carries a raw redirect URL captured by the app (deep link or webview).
// Cancelling on shortfall is left to the owner-checked finalize endpoint.
type RedirectRequest struct {
	URL     string `json:"url" binding:"required"`
	Channel string `json:"channel" binding:"required"`
}

func (r RedirectRequest) GetChannel() (redirect.Channel, bool) {
	ch := redirect.Channel(strings.ToLower(strings.TrimSpace(r.Channel)))
	return ch, ch.IsValid()
}
