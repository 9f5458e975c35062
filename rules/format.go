package rules

import (
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	cron "github.com/robfig/cron/v3"

	luq "github.com/maroonedog/luq-sub004"
)

// FormatFunc judges one string against a named format.
type FormatFunc func(s string) bool

var (
	emailRe    = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
	hostnameRe = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
	durationRe = regexp.MustCompile(`^P(\d+Y)?(\d+M)?(\d+W)?(\d+D)?(T(\d+H)?(\d+M)?(\d+([.,]\d+)?S)?)?$`)
	jsonPtrRe  = regexp.MustCompile(`^(/([^/~]|~[01])*)*$`)
	relPtrRe   = regexp.MustCompile(`^(0|[1-9][0-9]*)(#|(/([^/~]|~[01])*)*)$`)
)

// builtinFormats is the static format table. Read-only after init.
var builtinFormats = map[string]FormatFunc{
	"email":                 emailRe.MatchString,
	"hostname":              checkHostname,
	"url":                   checkURL,
	"uri":                   checkURI,
	"uri-reference":         checkURIReference,
	"iri":                   checkURI,
	"iri-reference":         checkURIReference,
	"uri-template":          checkURITemplate,
	"uuid":                  checkUUID,
	"date":                  checkDate,
	"date-time":             checkDateTime,
	"time":                  checkTime,
	"duration":              checkDuration,
	"ipv4":                  checkIPv4,
	"ipv6":                  checkIPv6,
	"json-pointer":          jsonPtrRe.MatchString,
	"relative-json-pointer": relPtrRe.MatchString,
	"regex":                 checkRegex,
	"cron":                  checkCron,
}

// Format checks string values against a named built-in format. Unknown names
// pass permissively, matching the format annotation contract. Non-string
// values pass.
func Format(name string, opts ...luq.RuleOpt) luq.Rule {
	return formatRule(name, builtinFormats[name], opts)
}

// FormatWith checks string values against a named format, consulting the
// custom table before the built-ins. Names found in neither pass.
func FormatWith(name string, custom map[string]FormatFunc, opts ...luq.RuleOpt) luq.Rule {
	if fn, ok := custom[name]; ok {
		return formatRule(name, fn, opts)
	}
	return formatRule(name, builtinFormats[name], opts)
}

// KnownFormat reports whether a built-in checker exists for name.
func KnownFormat(name string) bool {
	_, ok := builtinFormats[name]
	return ok
}

// Email is Format("email").
func Email(opts ...luq.RuleOpt) luq.Rule { return Format("email", opts...) }

// URL is Format("url").
func URL(opts ...luq.RuleOpt) luq.Rule { return Format("url", opts...) }

// UUIDFormat is Format("uuid").
func UUIDFormat(opts ...luq.RuleOpt) luq.Rule { return Format("uuid", opts...) }

func formatRule(name string, fn FormatFunc, opts []luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code:   luq.CodeInvalidFormat,
		Kind:   luq.KindBase,
		Params: map[string]any{"format": name},
		Check: func(v luq.Value, _ luq.Env) bool {
			s, ok := v.Data.(string)
			if !ok || fn == nil {
				return true
			}
			return fn(s)
		},
	}, opts)
}

// ------- format checkers -------

func checkHostname(s string) bool {
	return len(s) <= 253 && hostnameRe.MatchString(s)
}

func checkURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func checkURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func checkURIReference(s string) bool {
	_, err := url.Parse(s)
	return err == nil
}

// checkURITemplate scans for balanced, non-empty, non-nested RFC 6570
// expressions.
func checkURITemplate(s string) bool {
	depth := 0
	exprLen := 0
	for _, r := range s {
		switch r {
		case '{':
			if depth > 0 {
				return false
			}
			depth++
			exprLen = 0
		case '}':
			if depth == 0 || exprLen == 0 {
				return false
			}
			depth--
		default:
			if depth > 0 {
				exprLen++
			}
		}
	}
	return depth == 0
}

// checkUUID accepts only the canonical 36-character form; uuid.Parse alone
// would also take urn: and braced variants.
func checkUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func checkDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func checkDateTime(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

func checkTime(s string) bool {
	_, err := time.Parse("15:04:05Z07:00", s)
	return err == nil
}

// checkDuration validates the ISO 8601 shape; the regexp alone would accept
// "P" and a dangling "T" with no components.
func checkDuration(s string) bool {
	if s == "P" || strings.HasSuffix(s, "T") {
		return false
	}
	return durationRe.MatchString(s)
}

func checkIPv4(s string) bool {
	if strings.Contains(s, ":") {
		return false
	}
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil
}

func checkIPv6(s string) bool {
	return strings.Contains(s, ":") && net.ParseIP(s) != nil
}

func checkRegex(s string) bool {
	_, err := regexp.Compile(s)
	return err == nil
}

func checkCron(s string) bool {
	_, err := cron.ParseStandard(s)
	return err == nil
}
