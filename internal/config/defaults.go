package config

import (
	"github.com/spf13/viper"

	"github.com/griffnb/core-tsdoc/internal/resolver"
)

// SetDefaults configures default values for all configuration options. The
// vocabulary defaults are the resolver's built-in names.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("info.title", "")
	v.SetDefault("info.version", "1.0")
	v.SetDefault("info.description", "")
	v.SetDefault("extension", ".ts")
	v.SetDefault("parse_vendor", false)
	v.SetDefault("roots", []string{})
	v.SetDefault("excludes", []string{})

	vocab := resolver.DefaultVocabulary()
	v.SetDefault("vocabulary.binary", vocab.Binary)
	v.SetDefault("vocabulary.async", vocab.Async)
	v.SetDefault("vocabulary.list", vocab.List)
	v.SetDefault("vocabulary.date", vocab.Date)
	v.SetDefault("vocabulary.status_wrappers", vocab.StatusWrappers)

	v.SetDefault("hints.number", hintDefaults(vocab.NumberHints))
	v.SetDefault("hints.date", hintDefaults(vocab.DateHints))
}

func hintDefaults(hints []resolver.Hint) []map[string]string {
	out := make([]map[string]string, len(hints))
	for i, h := range hints {
		out[i] = map[string]string{"name": h.Name, "type": string(h.Primitive)}
	}
	return out
}
