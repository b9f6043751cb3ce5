// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package content

import "strings"

// Registry maps lowercase file extensions to codecs. Extending the engine to
// a new text format is a registration, not a subclass.
type Registry struct {
	codecs map[string]Codec
}

// defaultExtensions are the text formats handled out of the box, all decoded
// as UTF-8 with invalid bytes dropped.
var defaultExtensions = []string{".txt", ".csv", ".html", ".htm", ".xml", ".json"}

// NewRegistry creates a registry with the default UTF-8 text codecs.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[string]Codec)}
	for _, ext := range defaultExtensions {
		r.codecs[ext] = UTF8Codec{}
	}
	return r
}

// Register binds a codec to an extension, replacing any previous binding.
// The extension is normalized to a lowercase ".ext" form.
func (r *Registry) Register(ext string, codec Codec) {
	r.codecs[normalize(ext)] = codec
}

// Lookup returns the codec for an extension, if one is registered.
func (r *Registry) Lookup(ext string) (Codec, bool) {
	codec, ok := r.codecs[normalize(ext)]
	return codec, ok
}

func normalize(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
