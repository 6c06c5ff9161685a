package legal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	doc, err := Get("Privacy")
	require.NoError(t, err)
	assert.Equal(t, "privacy", doc.Name)
	assert.Equal(t, "Privacy Policy", doc.Title)
	assert.Contains(t, doc.Body, "Delete your account")

	doc, err = Get("terms")
	require.NoError(t, err)
	assert.Equal(t, "Terms of Use", doc.Title)

	for _, bad := range []string{"", "../legal", "cookies"} {
		_, err := Get(bad)
		assert.ErrorIs(t, err, ErrUnknownDocument, bad)
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"privacy", "terms"}, Names())
}
