package bootstrap

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
)

func TestParseRepoURI(t *testing.T) {
	owner, repo, err := parseRepoURI("github://repo/octocat/hello-world")
	require.NoError(t, err)
	assert.Equal(t, "octocat", owner)
	assert.Equal(t, "hello-world", repo)
}

func TestParseRepoURIRejectsMalformed(t *testing.T) {
	for _, uri := range []string{
		"github://repositories",
		"github://repo/",
		"github://repo/onlyowner",
		"github://repo/a/b/c",
		"https://github.com/octocat/hello-world",
	} {
		_, _, err := parseRepoURI(uri)
		require.Error(t, err, uri)
		assert.True(t, errors.HasCode(err, errors.CodeInvalidParameter), uri)
	}
}

func TestParseFileURI(t *testing.T) {
	owner, repo, path, err := parseFileURI("github://file/octocat/hello-world/README.md")
	require.NoError(t, err)
	assert.Equal(t, "octocat", owner)
	assert.Equal(t, "hello-world", repo)
	assert.Equal(t, "README.md", path)

	owner, repo, path, err = parseFileURI("github://file/octocat/hello-world/docs/guide/intro.md")
	require.NoError(t, err)
	assert.Equal(t, "octocat", owner)
	assert.Equal(t, "hello-world", repo)
	assert.Equal(t, "docs/guide/intro.md", path)
}

func TestParseFileURIRejectsMalformed(t *testing.T) {
	for _, uri := range []string{
		"github://file/",
		"github://file/octocat",
		"github://file/octocat/hello-world",
		"github://file/octocat/hello-world/",
		"github://repo/octocat/hello-world",
	} {
		_, _, _, err := parseFileURI(uri)
		require.Error(t, err, uri)
		assert.True(t, errors.HasCode(err, errors.CodeInvalidParameter), uri)
	}
}

func TestJSONResourceContents(t *testing.T) {
	contents, err := jsonResourceContents("github://user", map[string]string{"login": "octocat"})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "github://user", text.URI)
	assert.Equal(t, "application/json", text.MIMEType)
	assert.Contains(t, text.Text, `"login": "octocat"`)
}
