package keys

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/errors"
	"github.com/firefly-engineering/dotfiles/packages/generate-cloud-init/internal/system"
)

func equalKeys(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("keys = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "comma separated",
			input: "ssh-ed25519 AAAA1 a,ssh-ed25519 AAAA2 b",
			want:  []string{"ssh-ed25519 AAAA1 a", "ssh-ed25519 AAAA2 b"},
		},
		{
			name:  "newline separated",
			input: "ssh-ed25519 AAAA1 a\nssh-rsa BBBB2 b\n",
			want:  []string{"ssh-ed25519 AAAA1 a", "ssh-rsa BBBB2 b"},
		},
		{
			name:  "mixed separators are one rule",
			input: "k1,k2\nk3, k4\n\n,k5",
			want:  []string{"k1", "k2", "k3", "k4", "k5"},
		},
		{
			name:  "commas inside a key comment split too",
			input: "ssh-ed25519 AAAA1 me,laptop",
			want:  []string{"ssh-ed25519 AAAA1 me", "laptop"},
		},
		{
			name:  "crlf and surrounding whitespace",
			input: "  k1  \r\n\tk2\r\n",
			want:  []string{"k1", "k2"},
		},
		{
			name:  "empty",
			input: " , \n ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equalKeys(t, SplitKeys(tt.input), tt.want)
		})
	}
}

func TestLiteralSource(t *testing.T) {
	src := NewLiteralSource("SSH_PUBLIC_KEYS", "k1,k2")
	if src.Name() != "SSH_PUBLIC_KEYS" {
		t.Errorf("Name() = %q", src.Name())
	}
	keys, err := src.Keys()
	if err != nil {
		t.Fatalf("Keys() error: %v", err)
	}
	equalKeys(t, keys, []string{"k1", "k2"})
}

func TestFileSource(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/keys/one.pub", []byte("ssh-ed25519 AAAA1 one\n"), 0644)
	fsys.AddFile("/keys/two.pub", []byte("# work key\nssh-ed25519 AAAA2 two, with comma\n\n"), 0644)

	src := NewFileSource("SSH_KEY_PATH_*", fsys, []string{"/keys/one.pub", "/keys/missing.pub", "/keys/two.pub"})
	keys, err := src.Keys()
	if err != nil {
		t.Fatalf("Keys() error: %v", err)
	}
	equalKeys(t, keys, []string{"ssh-ed25519 AAAA1 one", "ssh-ed25519 AAAA2 two, with comma"})
}

func TestFileSource_OnlyMissingFiles(t *testing.T) {
	src := NewFileSource("SSH_KEY_PATH_*", system.NewMockFS(), []string{"/nope.pub"})
	keys, err := src.Keys()
	if err != nil {
		t.Fatalf("a missing key file should not be an error: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("keys = %q, want none", keys)
	}
}

func TestFileSource_ReadError(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.ReadFileErr = stderrors.New("permission denied")

	src := NewFileSource("SSH_KEY_PATH_<n>", fsys, []string{"/keys/one.pub"})
	_, err := src.Keys()
	if err == nil {
		t.Fatal("expected read error to be returned")
	}
	if !stderrors.Is(err, fsys.ReadFileErr) {
		t.Errorf("error = %v, want the read error wrapped", err)
	}
	if !errors.IsKind(err, errors.KindGeneral) {
		t.Errorf("error = %v, want a General RenderError", err)
	}
	hint := errors.GetHint(err)
	if !strings.Contains(hint, "/keys/one.pub") || !strings.Contains(hint, "SSH_KEY_PATH_<n>") {
		t.Errorf("hint should name the path and variable, got %q", hint)
	}
}

func TestDirSource_ReadErrors(t *testing.T) {
	tests := []struct {
		name     string
		inject   func(fsys *system.MockFS)
		wantHint string
	}{
		{
			name:     "directory unreadable",
			inject:   func(fsys *system.MockFS) { fsys.ReadDirErr = stderrors.New("permission denied") },
			wantHint: "/home/dev/.ssh",
		},
		{
			name:     "key file unreadable",
			inject:   func(fsys *system.MockFS) { fsys.ReadFileErr = stderrors.New("permission denied") },
			wantHint: "/home/dev/.ssh/id_ed25519.pub",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := system.NewMockFS()
			fsys.AddFile("/home/dev/.ssh/id_ed25519.pub", []byte("ssh-ed25519 AAAA ed\n"), 0644)
			tt.inject(fsys)

			_, err := NewDirSource(fsys, "/home/dev/.ssh", "*.pub").Keys()
			if !errors.IsKind(err, errors.KindGeneral) {
				t.Fatalf("error = %v, want a General RenderError", err)
			}
			if hint := errors.GetHint(err); !strings.Contains(hint, tt.wantHint) {
				t.Errorf("hint = %q, want it to name %s", hint, tt.wantHint)
			}
		})
	}
}

func TestDirSource(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/home/dev/.ssh/id_rsa.pub", []byte("ssh-rsa BBBB rsa\n"), 0644)
	fsys.AddFile("/home/dev/.ssh/id_ed25519.pub", []byte("ssh-ed25519 AAAA ed\n"), 0644)
	fsys.AddFile("/home/dev/.ssh/id_ed25519", []byte("PRIVATE"), 0600)
	fsys.AddFile("/home/dev/.ssh/known_hosts", []byte("host ssh-ed25519 CCCC"), 0644)
	fsys.AddDir("/home/dev/.ssh/dir.pub")

	src := NewDirSource(fsys, "/home/dev/.ssh", "*.pub")
	if src.Name() != "/home/dev/.ssh/*.pub" {
		t.Errorf("Name() = %q", src.Name())
	}

	keys, err := src.Keys()
	if err != nil {
		t.Fatalf("Keys() error: %v", err)
	}
	// Sorted by file name
	equalKeys(t, keys, []string{"ssh-ed25519 AAAA ed", "ssh-rsa BBBB rsa"})
}

func TestDirSource_SymlinkStaysInDir(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/home/dev/.ssh/real.pub", []byte("ssh-ed25519 AAAA real\n"), 0644)
	fsys.AddSymlink("/home/dev/.ssh/alias.pub", "real.pub")
	fsys.AddFile("/etc/secret.pub", []byte("ssh-ed25519 EVIL outside\n"), 0644)
	fsys.AddSymlink("/home/dev/.ssh/escape.pub", "/etc/secret.pub")

	keys, err := NewDirSource(fsys, "/home/dev/.ssh", "*.pub").Keys()
	if err != nil {
		t.Fatalf("Keys() error: %v", err)
	}
	equalKeys(t, keys, []string{"ssh-ed25519 AAAA real", "ssh-ed25519 AAAA real"})
}

func TestDirSource_MissingOrUnset(t *testing.T) {
	fsys := system.NewMockFS()

	for _, dir := range []string{"", "/home/nobody/.ssh"} {
		keys, err := NewDirSource(fsys, dir, "*.pub").Keys()
		if err != nil {
			t.Errorf("dir %q: unexpected error %v", dir, err)
		}
		if len(keys) != 0 {
			t.Errorf("dir %q: keys = %q, want none", dir, keys)
		}
	}
}

func TestDirSource_BadPattern(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/keys/a.pub", []byte("k"), 0644)

	_, err := NewDirSource(fsys, "/keys", "[").Keys()
	if !errors.IsKind(err, errors.KindConfigError) {
		t.Errorf("error = %v, want ConfigError", err)
	}
}
