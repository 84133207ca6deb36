package localization_test

import (
	"testing"
	"testing/fstest"

	"aura/backend/internal/localization"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizer_Fallbacks(t *testing.T) {
	fsys := fstest.MapFS{
		"i18n/en.json":    {Data: []byte(`{"greeting": "Hello", "bye": "Bye"}`)},
		"i18n/hi.json":    {Data: []byte(`{"greeting": "नमस्ते"}`)},
		"i18n/README.txt": {Data: []byte("ignored")},
	}

	l, err := localization.NewLocalizer(fsys, "i18n")
	require.NoError(t, err)

	assert.Equal(t, "नमस्ते", l.GetString("hi", "greeting"))
	assert.Equal(t, "Bye", l.GetString("hi", "bye"), "missing key falls back to English")
	assert.Equal(t, "Hello", l.GetString("fr", "greeting"), "unknown language falls back to English")
	assert.Equal(t, "missing", l.GetString("en", "missing"))
}

func TestLocalizer_InvalidJSON(t *testing.T) {
	fsys := fstest.MapFS{"i18n/en.json": {Data: []byte(`{`)}}

	_, err := localization.NewLocalizer(fsys, "i18n")
	assert.Error(t, err)
}

func TestDefault_BundledMessages(t *testing.T) {
	l := localization.Default()

	assert.Equal(t, "Subject is required.", l.Format("en", "error.required", l.GetString("en", "field.subject")))
	assert.Equal(t, "Password must be at least 6 characters.", l.Format("en", "error.min_password", 6))
	assert.NotEqual(t, l.GetString("en", "error.forbidden"), l.GetString("hi", "error.forbidden"))
}

func TestMatch(t *testing.T) {
	l := localization.Default()

	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"hi-IN,hi;q=0.9,en;q=0.8", "hi"},
		{"fr-FR, en;q=0.5", "en"},
		{"de", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Match(tt.header))
		})
	}
}
