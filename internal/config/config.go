// Package config loads GitHub API credentials from a local credentials.ini file.
//
// Expected format:
//
//	[github]
//	username = USERNAME
//	token = PERSONAL_ACCESS_TOKEN
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// DefaultPath is where the credentials file is looked up when no explicit
// path is given.
const DefaultPath = "credentials.ini"

// Credentials is the username/token pair used to authenticate against the
// GitHub API. Both values are opaque to the rest of the program.
type Credentials struct {
	Username string
	Token    string
}

// Load reads credentials from the INI file at path. A missing file, a missing
// [github] section, or an empty username or token is an error; no partial or
// defaulted credentials are ever returned.
func Load(path string) (Credentials, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	if err := v.ReadInConfig(); err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials file %q: %w", path, err)
	}

	creds := Credentials{
		Username: v.GetString("github.username"),
		Token:    v.GetString("github.token"),
	}
	if creds.Username == "" {
		return Credentials{}, fmt.Errorf("credentials file %q is missing username in the [github] section", path)
	}
	if creds.Token == "" {
		return Credentials{}, fmt.Errorf("credentials file %q is missing token in the [github] section", path)
	}
	return creds, nil
}
