package testutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

// TestEnv is a temporary working tree with a home directory and an environment slice.
type TestEnv struct {
	T       *testing.T
	Root    string   // Working directory for the command under test
	Home    string   // $HOME, containing .ssh
	Environ []string // Environment handed to config.Load
}

// NewTestEnv creates a temp tree and changes into it for the duration of the test.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	root := t.TempDir()
	home := filepath.Join(root, "home")
	if err := os.MkdirAll(filepath.Join(home, ".ssh"), 0700); err != nil {
		t.Fatalf("Failed to create home: %v", err)
	}

	t.Chdir(root)

	return &TestEnv{
		T:       t,
		Root:    root,
		Home:    home,
		Environ: []string{"HOME=" + home},
	}
}

// Setenv adds a variable to the environment slice.
func (e *TestEnv) Setenv(name, value string) {
	e.Environ = append(e.Environ, name+"="+value)
}

// WriteFile writes content to a path relative to Root and returns the absolute path.
func (e *TestEnv) WriteFile(rel, content string) string {
	e.T.Helper()

	path := filepath.Join(e.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile reads a path relative to Root.
func (e *TestEnv) ReadFile(rel string) string {
	e.T.Helper()

	data, err := os.ReadFile(filepath.Join(e.Root, rel))
	if err != nil {
		e.T.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}

// Exists reports whether a path relative to Root exists.
func (e *TestEnv) Exists(rel string) bool {
	_, err := os.Stat(filepath.Join(e.Root, rel))
	return err == nil
}

// AddHomeKey writes a public key file into $HOME/.ssh.
func (e *TestEnv) AddHomeKey(name, key string) string {
	e.T.Helper()
	return e.WriteFile(filepath.Join("home", ".ssh", name), key+"\n")
}

// GenerateKey returns a fresh ed25519 authorized-key line with the given comment.
func GenerateKey(t *testing.T, comment string) string {
	t.Helper()

	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("Failed to convert key: %v", err)
	}
	line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub)))
	if comment != "" {
		line += " " + comment
	}
	return line
}
