package box

import (
	"strings"
	"sync"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

var encodingAliases = map[string]string{
	"cp437":   "IBM437",
	"cp850":   "IBM850",
	"latin-1": "ISO-8859-1",
	"latin1":  "ISO-8859-1",
	"cp1252":  "windows-1252",
}

var charmaps sync.Map // name -> *charmap.Charmap (nil when unicode or unknown)

func lookupCharmap(name string) *charmap.Charmap {
	key := strings.ToLower(strings.TrimSpace(name))
	if v, ok := charmaps.Load(key); ok {
		return v.(*charmap.Charmap)
	}
	iana := key
	if alias, ok := encodingAliases[key]; ok {
		iana = alias
	}
	var cm *charmap.Charmap
	if enc, err := ianaindex.IANA.Encoding(iana); err == nil && enc != nil {
		cm, _ = enc.(*charmap.Charmap)
	}
	charmaps.Store(key, cm)
	return cm
}

// Encodable reports whether every glyph of b exists in the named
// encoding. Unicode encodings, empty names and encodings that aren't
// single-byte charmaps are assumed to cover everything.
func Encodable(b *Box, encoding string) bool {
	if b.ASCII || encoding == "" || strings.HasPrefix(strings.ToLower(encoding), "utf") {
		return true
	}
	cm := lookupCharmap(encoding)
	if cm == nil {
		return true
	}
	for _, r := range b.glyphs() {
		if _, ok := cm.EncodeRune(r); !ok {
			return false
		}
	}
	return true
}
