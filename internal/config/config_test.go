package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Server.Addr != ":7002" || !c.Server.DisableTLS {
		t.Errorf("Unexpected server config %+v", c.Server)
	}
	if c.Storage.Entity != "employee" || c.Storage.IDPrefix != "EMP" || c.Storage.UniqueAttr != "email" {
		t.Errorf("Unexpected storage config %+v", c.Storage)
	}
	if c.Messages.InternalError != "Something went wrong. Please contact admin." {
		t.Errorf("Unexpected internal error message %q", c.Messages.InternalError)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.toml")
	os.WriteFile(path, []byte(`
[storage]
data-dir = "/srv/registry"

[log]
debug = true
`), 0644)

	t.Setenv("CELERIX_DATA_DIR", "/env/registry")
	t.Setenv("CELERIX_DISABLE_TLS", "false")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Storage.DataDir != "/env/registry" {
		t.Errorf("Env should win over file, got %s", c.Storage.DataDir)
	}
	if !c.Log.Debug {
		t.Error("File value for debug was not applied")
	}
	if c.Server.DisableTLS {
		t.Error("Env value for TLS was not applied")
	}
	if c.Schema.File != "./schema.json" {
		t.Errorf("Default schema file lost, got %s", c.Schema.File)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.toml")
	os.WriteFile(path, []byte(`
[storage]
id-prefix = "EMPL"
`), 0644)

	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for a four-letter prefix")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
