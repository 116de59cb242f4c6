package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBilingualTextResolve(t *testing.T) {
	testCases := map[string]struct {
		value Text
		lang  Language
		want  string
	}{
		"malayalam present": {
			value: NewText("Athira", "ആതിര"),
			lang:  Malayalam,
			want:  "ആതിര",
		},
		"malayalam missing falls back to english": {
			value: NewText("Athira", ""),
			lang:  Malayalam,
			want:  "Athira",
		},
		"english requested": {
			value: NewText("Athira", "ആതിര"),
			lang:  English,
			want:  "Athira",
		},
		"english missing for english request": {
			value: NewText("", "ആതിര"),
			lang:  English,
			want:  "",
		},
		"both empty": {
			value: Text{},
			lang:  Malayalam,
			want:  "",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve[string](tc.value, tc.lang))
		})
	}
}

func TestBilingualListResolve(t *testing.T) {
	survivedBy := List{
		English:   []string{"Gowtham (Husband)", "Rahul (Son)"},
		Malayalam: []string{"ഗൗതം (ഭർത്താവ്)"},
	}
	assert.Equal(t, []string{"ഗൗതം (ഭർത്താവ്)"}, Resolve[[]string](survivedBy, Malayalam))
	assert.Equal(t, survivedBy.English, Resolve[[]string](survivedBy, English))

	englishOnly := List{English: []string{"Priya (Daughter)"}, Malayalam: []string{}}
	assert.Equal(t, englishOnly.English, Resolve[[]string](englishOnly, Malayalam))
}

func TestScalarPassThrough(t *testing.T) {
	for _, lang := range []Language{English, Malayalam} {
		assert.Equal(t, "10:00 AM", Resolve[string](Scalar[string]{Value: "10:00 AM"}, lang))
		assert.Equal(t, []string{"a", "b"}, Resolve[[]string](Scalar[[]string]{Value: []string{"a", "b"}}, lang))
	}
}

func TestResolveNilField(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, "", Resolve[string](nil, Malayalam))
		assert.Nil(t, Resolve[[]string](nil, English))
	})
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, Malayalam, ParseLanguage("malayalam"))
	assert.Equal(t, Malayalam, ParseLanguage(" Malayalam "))
	assert.Equal(t, English, ParseLanguage("english"))
	assert.Equal(t, English, ParseLanguage(""))
	assert.Equal(t, English, ParseLanguage("tamil"))

	assert.Equal(t, "ml", Malayalam.Code())
	assert.Equal(t, "en", English.Code())
}

func TestBilingualHelpers(t *testing.T) {
	assert.True(t, Text{}.IsEmpty())
	assert.False(t, NewText("", "x").IsEmpty())
	assert.Equal(t, "", NewText("Venue", "").Slot(Malayalam))
	assert.Equal(t, "Venue", NewText("Venue", "").Slot(English))
}
