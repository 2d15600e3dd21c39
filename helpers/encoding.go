package helpers

import (
	"mime"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// misdeclared lists charsets that servers (or clients defaulting per HTTP/1.1)
// report for pages that are really in the site's legacy encoding.
var misdeclared = map[string]struct{}{
	"iso-8859-1":   {},
	"latin1":       {},
	"us-ascii":     {},
	"windows-1252": {},
}

// DeclaredCharset returns the lower-cased charset parameter of a Content-Type
// header. A text/* type without a charset reports iso-8859-1.
func DeclaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if cs := strings.ToLower(strings.TrimSpace(params["charset"])); cs != "" {
		return cs
	}
	if strings.HasPrefix(mediaType, "text/") {
		return "iso-8859-1"
	}
	return ""
}

// DecodeBody converts a fetched body to UTF-8 text. siteCharset is used when
// the declared charset is a known-wrong single-byte fallback, or when content
// sniffing can only guess windows-1252. It never fails: undecodable bytes
// become U+FFFD.
func DecodeBody(body []byte, contentType, siteCharset string) string {
	var enc encoding.Encoding

	if _, wrong := misdeclared[DeclaredCharset(contentType)]; wrong {
		enc = lookupEncoding(siteCharset)
	} else {
		detected, name, certain := charset.DetermineEncoding(body, "")
		if !certain && name == "windows-1252" {
			enc = lookupEncoding(siteCharset)
		} else {
			enc = detected
		}
	}

	if enc == nil {
		return strings.ToValidUTF8(string(body), "\uFFFD")
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return strings.ToValidUTF8(string(body), "\uFFFD")
	}
	return string(decoded)
}

func lookupEncoding(name string) encoding.Encoding {
	if name == "" {
		return nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil
	}
	return enc
}
