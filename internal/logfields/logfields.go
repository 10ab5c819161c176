package logfields

import "log/slog"

// Canonical log field names shared by every package.
const (
	KeyPath       = "path"
	KeyRoot       = "root"
	KeySlug       = "slug"
	KeyField      = "field"
	KeyTag        = "tag"
	KeyCount      = "count"
	KeyKind       = "kind"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyURL        = "url"
	KeyStatus     = "status"
	KeyRequestID  = "request_id"
	KeyAddr       = "addr"
	KeyError      = "error"
)

func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Root(p string) slog.Attr        { return slog.String(KeyRoot, p) }
func Slug(s string) slog.Attr        { return slog.String(KeySlug, s) }
func Field(f string) slog.Attr       { return slog.String(KeyField, f) }
func Tag(t string) slog.Attr         { return slog.String(KeyTag, t) }
func Count(n int) slog.Attr          { return slog.Int(KeyCount, n) }
func Kind(k string) slog.Attr        { return slog.String(KeyKind, k) }
func Method(m string) slog.Attr      { return slog.String(KeyMethod, m) }
func URL(u string) slog.Attr         { return slog.String(KeyURL, u) }
func Status(code int) slog.Attr      { return slog.Int(KeyStatus, code) }
func RequestID(id string) slog.Attr  { return slog.String(KeyRequestID, id) }
func Addr(a string) slog.Attr        { return slog.String(KeyAddr, a) }

func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
