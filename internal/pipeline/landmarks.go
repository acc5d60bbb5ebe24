package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// landmarks holds byte offsets of the document structure used as injection
// points. Offsets are -1 when the tag is absent. Tags inside comments, scripts
// and other raw text never count.
type landmarks struct {
	prologEnd   int // after <!DOCTYPE> and <html ...>, 0 when neither exists
	headOpenEnd int // after <head ...>
	hasCharset  bool
}

// scanLandmarks tokenizes htmlContent up to the opening <body> tag.
// Everything it reports lives in the document prolog or head.
func scanLandmarks(htmlContent string) landmarks {
	lm := landmarks{headOpenEnd: -1}

	z := html.NewTokenizer(strings.NewReader(htmlContent))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return lm
		}
		offset += len(z.Raw())

		switch tt {
		case html.DoctypeToken:
			lm.prologEnd = offset
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch atom.Lookup(name) {
			case atom.Html:
				lm.prologEnd = offset
			case atom.Head:
				if lm.headOpenEnd < 0 {
					lm.headOpenEnd = offset
				}
			case atom.Meta:
				if hasAttr && declaresCharset(z) {
					lm.hasCharset = true
				}
			case atom.Body:
				return lm
			}
		}
	}
}

// declaresCharset reports whether the current <meta> tag sets an encoding,
// either with charset=... or http-equiv="Content-Type".
func declaresCharset(z *html.Tokenizer) bool {
	var httpEquiv, content string
	for more := true; more; {
		var key, val []byte
		key, val, more = z.TagAttr()
		switch string(key) {
		case "charset":
			return true
		case "http-equiv":
			httpEquiv = string(val)
		case "content":
			content = string(val)
		}
	}
	return strings.EqualFold(httpEquiv, "content-type") &&
		strings.Contains(strings.ToLower(content), "charset=")
}
