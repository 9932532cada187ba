package ai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocument_EmbeddedDefault(t *testing.T) {
	doc, fromFile, err := LoadDocument(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.False(t, fromFile)
	assert.Equal(t, "Bamidele", doc.Owner.PreferredName)
	assert.Equal(t, "bishoptewogbade@gmail.com", doc.Owner.Email)
	assert.NotEmpty(t, doc.Owner.Socials)
	assert.Contains(t, doc.Context, "TECHNICAL SKILLS:")
	assert.Contains(t, doc.Context, "Node.js")
}

func TestLoadDocument_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.yaml")
	content := "owner:\n  name: Test Owner\ncontext: |\n  You answer about Test Owner.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	doc, fromFile, err := LoadDocument(path)
	require.NoError(t, err)

	assert.True(t, fromFile)
	assert.Equal(t, "Test Owner", doc.Owner.Name)
	assert.Equal(t, "You answer about Test Owner.", doc.Context)
}

func TestParseDocument_EmptyContext(t *testing.T) {
	_, err := ParseDocument([]byte("owner:\n  name: X\n"))
	assert.Error(t, err)

	_, err = ParseDocument([]byte("context: [unclosed"))
	assert.Error(t, err)
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, "CTX\n\nUser question: hi", BuildPrompt("CTX", "hi"))
}
