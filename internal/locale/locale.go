// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package locale handles the bilingual (Arabic/English) display language of
// the chat client.
//
// The backend speaks exactly two languages, mirrored by the persisted
// preference flag: "ar" and "en". Anything else a config file or environment
// variable supplies is matched against those two via golang.org/x/text, so
// "ar-SA" or "en-US" resolve sensibly instead of failing.
package locale

import (
	"golang.org/x/text/language"
)

// Language is the active display language flag, as persisted and as sent on
// every chat request.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

// supported is ordered: English is the fallback when matching fails.
var supported = []language.Tag{language.English, language.Arabic}

var matcher = language.NewMatcher(supported)

// Parse resolves an arbitrary language string ("ar", "ar-SA", "en-US", ...)
// to one of the two supported flags. Unrecognized input yields English.
func Parse(s string) Language {
	if s == "" {
		return English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return English
	}
	_, idx, _ := matcher.Match(tag)
	if supported[idx] == language.Arabic {
		return Arabic
	}
	return English
}

// IsArabic reports whether the language is Arabic.
func (l Language) IsArabic() bool {
	return l == Arabic
}

// String returns the wire/persistence form of the flag.
func (l Language) String() string {
	return string(l)
}

// Toggle flips between the two supported languages.
func (l Language) Toggle() Language {
	if l.IsArabic() {
		return English
	}
	return Arabic
}

// =============================================================================
// LOCALIZED DEFAULT STRINGS
// =============================================================================

// pair holds the English and Arabic variants of a fixed UI string.
type pair struct {
	en string
	ar string
}

func (p pair) pick(l Language) string {
	if l.IsArabic() {
		return p.ar
	}
	return p.en
}

var (
	thinkingText = pair{
		en: "Analyzing your query...",
		ar: "جارٍ تحليل استفسارك...",
	}
	errorFallbackText = pair{
		en: "An error occurred. Please try again.",
		ar: "عذراً، حدث خطأ. يرجى المحاولة مرة أخرى.",
	}
	authRequiredText = pair{
		en: "Please log in to continue.",
		ar: "يرجى تسجيل الدخول للمتابعة.",
	}
	loginFailedText = pair{
		en: "Incorrect username or password.",
		ar: "اسم المستخدم أو كلمة المرور غير صحيحة.",
	}
	networkErrorText = pair{
		en: "Connection failed. Please check your network and try again.",
		ar: "فشل الاتصال. يرجى التحقق من الشبكة والمحاولة مرة أخرى.",
	}
)

// Thinking is the locally synthesized placeholder shown while a chat request
// is in flight.
func Thinking(l Language) string { return thinkingText.pick(l) }

// ThinkingLocalized returns the Arabic variant of the thinking placeholder,
// attached to the synthesized event as localized content.
func ThinkingLocalized() string { return thinkingText.ar }

// ErrorFallback is shown for backend error events lacking a message.
func ErrorFallback(l Language) string { return errorFallbackText.pick(l) }

// AuthRequired is the notice shown when a send is attempted with no token.
func AuthRequired(l Language) string { return authRequiredText.pick(l) }

// LoginFailed is the inline login-form error for rejected credentials.
func LoginFailed(l Language) string { return loginFailedText.pick(l) }

// NetworkError is the generic alert for transport failures during send.
func NetworkError(l Language) string { return networkErrorText.pick(l) }
