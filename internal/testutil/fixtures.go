package testutil

import (
	"embed"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// BasicTemplate returns a minimal template using every supported token.
func BasicTemplate() string {
	return mustFixture("basic.yaml.tmpl")
}

// UnknownTokenTemplate returns a template with a token the renderer does not know.
func UnknownTokenTemplate() string {
	return mustFixture("unknown_token.yaml.tmpl")
}

// Settings returns a settings file overriding template, output and default user.
func Settings() string {
	return mustFixture("settings.toml")
}

func mustFixture(name string) string {
	data, err := LoadFixture(name)
	if err != nil {
		panic(err)
	}
	return string(data)
}
