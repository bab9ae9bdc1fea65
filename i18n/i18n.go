/*
Package i18n provides keyed, locale-aware message formatting.

Overview

Engine packages report failures with short message keys ("hierarchy.child.kind",
"import.kind", …). This package resolves such a key against a set of message
bundles, picks the bundle best matching the active locale, and formats the
message with fmt-style arguments. It is a lookup utility, not a full
translation pipeline: bundles are plain string maps registered at startup.

Resolution order is: bundle for the matched locale, then the English fallback
bundle, then the key itself (so an untranslated key still yields a usable,
greppable message).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package i18n

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// A Bundle maps message keys to fmt-style message templates for one locale.
type Bundle struct {
	Locale   language.Tag
	Messages map[string]string
}

type bundleSet struct {
	sync.RWMutex
	bundles []Bundle
	matcher language.Matcher
	active  language.Tag
}

var messages = &bundleSet{}

// AddBundle registers a message bundle for a locale. Registering a second
// bundle for the same locale merges keys, later registrations winning.
func AddBundle(locale language.Tag, msgs map[string]string) {
	messages.Lock()
	defer messages.Unlock()
	for i := range messages.bundles {
		if messages.bundles[i].Locale == locale {
			for k, v := range msgs {
				messages.bundles[i].Messages[k] = v
			}
			return
		}
	}
	m := make(map[string]string, len(msgs))
	for k, v := range msgs {
		m[k] = v
	}
	messages.bundles = append(messages.bundles, Bundle{Locale: locale, Messages: m})
	tags := make([]language.Tag, len(messages.bundles))
	for i, b := range messages.bundles {
		tags[i] = b.Locale
	}
	messages.matcher = language.NewMatcher(tags)
}

// SetLocale selects the locale messages will be resolved against.
// The default locale is English.
func SetLocale(locale language.Tag) {
	messages.Lock()
	defer messages.Unlock()
	messages.active = locale
}

// Locale returns the currently active locale.
func Locale() language.Tag {
	messages.RLock()
	defer messages.RUnlock()
	if messages.active == (language.Tag{}) {
		return language.English
	}
	return messages.active
}

// FormatMessage resolves key against the active locale's bundle and formats
// it with args. Unknown keys fall back to English, then to the key itself.
func FormatMessage(key string, args ...interface{}) string {
	messages.RLock()
	defer messages.RUnlock()
	if tmpl, ok := lookup(messages.active, key); ok {
		return fmt.Sprintf(tmpl, args...)
	}
	if tmpl, ok := lookup(language.English, key); ok {
		return fmt.Sprintf(tmpl, args...)
	}
	return key
}

// lookup finds the message template for key in the bundle best matching
// locale. Callers hold the read lock.
func lookup(locale language.Tag, key string) (string, bool) {
	if messages.matcher == nil {
		return "", false
	}
	_, index, conf := messages.matcher.Match(locale)
	if conf == language.No {
		return "", false
	}
	tmpl, ok := messages.bundles[index].Messages[key]
	return tmpl, ok
}
