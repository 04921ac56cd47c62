// Package redirect normalizes the URLs a payment provider sends users back to.
package redirect

import (
	"net/url"
	"strings"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindFailure Kind = "failure"
	KindPending Kind = "pending"
	KindUnknown Kind = ""
)

type Channel string

const (
	ChannelDeepLink Channel = "deep_link"
	ChannelWebView  Channel = "webview"
	ChannelBrowser  Channel = "browser"
	ChannelAPI      Channel = "api"
)

func (c Channel) IsValid() bool {
	switch c {
	case ChannelDeepLink, ChannelWebView, ChannelBrowser, ChannelAPI:
		return true
	default:
		return false
	}
}

type Signal struct {
	Kind          Kind
	ReservationID string
	PaymentID     string
	// ApprovedHint is the provider's own claim; it is never trusted on its own.
	ApprovedHint bool
}

func (s Signal) IsZero() bool {
	return s == Signal{}
}

// Event is one message of the redirect inbox.
type Event struct {
	Channel    Channel   `json:"channel"`
	Signal     Signal    `json:"signal"`
	RawURL     string    `json:"raw_url,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
	// CancelOnShortfall is only ever set by the explicit finalize API.
	CancelOnShortfall bool `json:"cancel_on_shortfall,omitempty"`
}

const (
	paymentHost    = "payment"
	paymentSegment = "/payment/"

	collectionApproved = "approved"
)

type Parser struct {
	scheme string
}

func NewParser(appScheme string) *Parser {
	return &Parser{scheme: strings.ToLower(appScheme)}
}

// Parse is total: input that is not a recognised payment redirect yields an empty Signal.
func (p *Parser) Parse(raw string) Signal {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Signal{}
	}

	var kind Kind
	switch scheme := strings.ToLower(u.Scheme); {
	case scheme != "" && scheme == p.scheme:
		if strings.ToLower(u.Host) != paymentHost {
			return Signal{}
		}
		kind = kindOf(strings.Trim(u.Path, "/"))
	case scheme == "http" || scheme == "https":
		path := strings.TrimSuffix(u.Path, "/")
		i := strings.LastIndex(path, paymentSegment)
		if i < 0 {
			return Signal{}
		}
		kind = kindOf(path[i+len(paymentSegment):])
	default:
		return Signal{}
	}
	if kind == KindUnknown {
		return Signal{}
	}

	q := u.Query()
	sig := Signal{Kind: kind}

	sig.ReservationID = q.Get("reservationId")
	if sig.ReservationID == "" {
		sig.ReservationID = q.Get("rid")
	}

	approved := q.Get("collection_status") == collectionApproved || q.Get("status") == collectionApproved
	sig.PaymentID = q.Get("payment_id")
	if sig.PaymentID == "" && approved {
		sig.PaymentID = q.Get("collection_id")
	}
	sig.ApprovedHint = approved

	return sig
}

func kindOf(segment string) Kind {
	switch Kind(strings.ToLower(segment)) {
	case KindSuccess:
		return KindSuccess
	case KindFailure:
		return KindFailure
	case KindPending:
		return KindPending
	default:
		return KindUnknown
	}
}
