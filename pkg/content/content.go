// Package content selects the display representation of bilingual values.
package content

import "strings"

// Language is a display language tag.
type Language string

const (
	English   Language = "english"
	Malayalam Language = "malayalam"
)

// Languages lists the supported tags in display order.
var Languages = []Language{English, Malayalam}

// ParseLanguage maps a request value to a supported tag. Anything unknown becomes English.
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case Malayalam:
		return Malayalam
	default:
		return English
	}
}

// Code returns the BCP 47 code used for UI string lookups.
func (l Language) Code() string {
	if l == Malayalam {
		return "ml"
	}
	return "en"
}

// Content is the set of value shapes a translatable field can hold.
type Content interface {
	~string | ~[]string
}

// Field is either a Scalar or a Bilingual value.
type Field[T Content] interface {
	Resolve(lang Language) T
}

// Resolve returns the representation of f to display for lang. A nil field yields the zero value.
func Resolve[T Content](f Field[T], lang Language) T {
	if f == nil {
		var zero T
		return zero
	}
	return f.Resolve(lang)
}

// Scalar is a plain value that is shown as-is in every language.
type Scalar[T Content] struct {
	Value T
}

func (s Scalar[T]) Resolve(Language) T {
	return s.Value
}

// Bilingual holds parallel English/Malayalam representations of the same content.
type Bilingual[T Content] struct {
	English   T `json:"english" bson:"english,omitempty" gorm:"column:english"`
	Malayalam T `json:"malayalam,omitempty" bson:"malayalam,omitempty" gorm:"column:malayalam"`
}

// Text is the common single-string form.
type Text = Bilingual[string]

// List is the bilingual list form (e.g. survivedBy).
type List = Bilingual[[]string]

// NewText builds a Text from both representations.
func NewText(english, malayalam string) Text {
	return Text{English: english, Malayalam: malayalam}
}

// Resolve picks the slot for lang when it is non-empty, otherwise English.
// When neither slot is populated the (empty) English slot is returned unchanged.
func (b Bilingual[T]) Resolve(lang Language) T {
	if lang == Malayalam && len(b.Malayalam) > 0 {
		return b.Malayalam
	}
	return b.English
}

// Slot returns the raw representation stored for lang, without fallback.
func (b Bilingual[T]) Slot(lang Language) T {
	if lang == Malayalam {
		return b.Malayalam
	}
	return b.English
}

// IsEmpty reports whether neither representation is populated.
func (b Bilingual[T]) IsEmpty() bool {
	return len(b.English) == 0 && len(b.Malayalam) == 0
}
