package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)
	basicPattern  = regexp.MustCompile(`(?i)^basic\s+.+$`)
	jwtPattern    = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)
)

// DefaultRedactOptions masks credentials for the remote quote endpoint and
// anything that looks like an auth header value.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("api_key"),
		masq.WithFieldName("apiKey"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("Authorization"),
		masq.WithFieldName("password"),
		masq.WithFieldName("token"),
		masq.WithFieldName("access_token"),
		masq.WithFieldName("cookie"),
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(basicPattern),
		masq.WithRegex(jwtPattern),
	}
}

// NewReplaceAttr returns a slog ReplaceAttr func applying DefaultRedactOptions plus opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
