package model

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidMethod indicates a verb outside the supported method set.
var ErrInvalidMethod = errors.New("invalid method")

// Method is an HTTP verb accepted by RestClient request lines.
type Method string

// Supported HTTP methods accepted by collection requests and rendered request lines.
const (
	MethodCopy     Method = "COPY"
	MethodDelete   Method = "DELETE"
	MethodGet      Method = "GET"
	MethodHead     Method = "HEAD"
	MethodLink     Method = "LINK"
	MethodLock     Method = "LOCK"
	MethodOptions  Method = "OPTIONS"
	MethodPatch    Method = "PATCH"
	MethodPost     Method = "POST"
	MethodPropfind Method = "PROPFIND"
	MethodPurge    Method = "PURGE"
	MethodPut      Method = "PUT"
	MethodUnlink   Method = "UNLINK"
	MethodUnlock   Method = "UNLOCK"
	MethodView     Method = "VIEW"
)

var supportedMethods = map[Method]struct{}{
	MethodCopy:     {},
	MethodDelete:   {},
	MethodGet:      {},
	MethodHead:     {},
	MethodLink:     {},
	MethodLock:     {},
	MethodOptions:  {},
	MethodPatch:    {},
	MethodPost:     {},
	MethodPropfind: {},
	MethodPurge:    {},
	MethodPut:      {},
	MethodUnlink:   {},
	MethodUnlock:   {},
	MethodView:     {},
}

// IsSupportedMethod reports whether method is in the canonical supported set.
func IsSupportedMethod(method Method) bool {
	_, ok := supportedMethods[method]
	return ok
}

// ParseMethod matches value against the supported set, folding ASCII case only.
// No trimming or partial matching is applied.
func ParseMethod(value string) (Method, error) {
	upper, ok := asciiUpper(value)
	if !ok || !IsSupportedMethod(Method(upper)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidMethod, value)
	}
	return Method(upper), nil
}

// asciiUpper upper-cases value, rejecting any non-ASCII byte.
func asciiUpper(value string) (string, bool) {
	buf := make([]byte, len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= utf8.RuneSelf:
			return "", false
		case 'a' <= c && c <= 'z':
			c -= 'a' - 'A'
		}
		buf[i] = c
	}
	return string(buf), true
}

// SupportedMethods returns the canonical method list in stable order.
func SupportedMethods() []Method {
	return []Method{
		MethodCopy,
		MethodDelete,
		MethodGet,
		MethodHead,
		MethodLink,
		MethodLock,
		MethodOptions,
		MethodPatch,
		MethodPost,
		MethodPropfind,
		MethodPurge,
		MethodPut,
		MethodUnlink,
		MethodUnlock,
		MethodView,
	}
}

func (m Method) String() string {
	return string(m)
}
