package analytics

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"edge.bartcommute.org/internal/models"
)

// sessionWindow is the bucket width for derived session identifiers: the
// same client maps to one stable session id within a half-hour window.
const sessionWindow = 30 * time.Minute

// ClientInfo is the connection metadata an identity can be resolved from.
type ClientInfo struct {
	UserID    string // X-User-ID header, may be empty
	SessionID string // X-Session-ID header, may be empty
	IP        string
	UserAgent string
}

// ClientInfoFromRequest extracts identity headers and connection metadata.
// The client IP comes from CF-Connecting-IP, then the first comma-separated
// X-Forwarded-For value, then the socket address.
func ClientInfoFromRequest(r *http.Request) ClientInfo {
	ip := r.Header.Get("CF-Connecting-IP")
	if ip == "" {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			ip = strings.TrimSpace(first)
		}
	}
	if ip == "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		} else {
			ip = r.RemoteAddr
		}
	}

	return ClientInfo{
		UserID:    r.Header.Get("X-User-ID"),
		SessionID: r.Header.Get("X-Session-ID"),
		IP:        ip,
		UserAgent: r.Header.Get("User-Agent"),
	}
}

// Identity is a resolved user/session pair plus how it was established.
type Identity struct {
	UserID    string
	SessionID string
	Method    models.IdentificationMethod
}

// ResolveIdentity applies the explicit-with-fallback policy: both headers
// present means the caller's values verbatim; otherwise a deterministic
// pseudo-identity is derived from connection metadata. Explicit and
// fallback values are never mixed within one identity.
func ResolveIdentity(info ClientInfo, now time.Time) Identity {
	if info.UserID != "" && info.SessionID != "" {
		return Identity{
			UserID:    info.UserID,
			SessionID: info.SessionID,
			Method:    models.IdentificationExplicit,
		}
	}

	bucket := now.Unix() / int64(sessionWindow.Seconds())
	return Identity{
		UserID:    deriveID(info.IP + info.UserAgent),
		SessionID: deriveID(fmt.Sprintf("%s%s%d", info.IP, info.UserAgent, bucket)),
		Method:    models.IdentificationFallback,
	}
}

// deriveID renders a 16-hex-character identifier from two salted passes of
// a 32-bit string fold. Collisions are acceptable: analytics is
// approximate and no security property is claimed.
func deriveID(s string) string {
	return fmt.Sprintf("%08x%08x", fold32(s), fold32("bart:"+s))
}

// fold32 is the classic multiply-by-31 string fold into 32 bits.
func fold32(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}
