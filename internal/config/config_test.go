package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCredentials drops a credentials.ini with the given content into a
// temporary directory and returns its path.
func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name           string
		content        string
		expected       Credentials
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - section with both keys",
			content: `[github]
username = octocat
token = ghp_secret
`,
			expected: Credentials{Username: "octocat", Token: "ghp_secret"},
		},
		{
			name: "missing token",
			content: `[github]
username = octocat
`,
			expectError:    true,
			expectedErrMsg: "missing token",
		},
		{
			name: "missing username",
			content: `[github]
token = ghp_secret
`,
			expectError:    true,
			expectedErrMsg: "missing username",
		},
		{
			name: "missing section",
			content: `[gitlab]
username = octocat
token = ghp_secret
`,
			expectError:    true,
			expectedErrMsg: "missing username",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeCredentials(t, tc.content)
			creds, err := Load(path)
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, creds)
			}
		})
	}
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "credentials.ini"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read credentials file")
}
