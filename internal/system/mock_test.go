package system

import (
	"errors"
	"io/fs"
	"testing"
)

func TestMockFS_ReadWriteFile(t *testing.T) {
	mockFS := NewMockFS()

	content := []byte("hello world")
	if err := mockFS.WriteFile("/test/file.txt", content, 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	// Mutating the caller's slice must not change the stored file
	content[0] = 'H'

	data, err := mockFS.ReadFile("/test/file.txt")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("ReadFile = %q, want %q", string(data), "hello world")
	}
}

func TestMockFS_ReadFile_NotExists(t *testing.T) {
	mockFS := NewMockFS()

	_, err := mockFS.ReadFile("/nonexistent")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile error = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFS_StatAndLstat(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/home/dev/.ssh/id_ed25519.pub", []byte("ssh-ed25519 AAAA dev"), 0644)
	mockFS.AddSymlink("/home/dev/.ssh/link.pub", "id_ed25519.pub")

	info, err := mockFS.Stat("/home/dev/.ssh")
	if err != nil {
		t.Fatalf("Stat dir error: %v", err)
	}
	if !info.IsDir() {
		t.Error("parent of an added file should be a directory")
	}

	info, err = mockFS.Stat("/home/dev/.ssh/link.pub")
	if err != nil {
		t.Fatalf("Stat symlink error: %v", err)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		t.Error("Stat should follow the symlink")
	}

	info, err = mockFS.Lstat("/home/dev/.ssh/link.pub")
	if err != nil {
		t.Fatalf("Lstat error: %v", err)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		t.Error("Lstat should not follow the symlink")
	}

	target, err := mockFS.Readlink("/home/dev/.ssh/link.pub")
	if err != nil || target != "id_ed25519.pub" {
		t.Errorf("Readlink = %q, %v", target, err)
	}

	if _, err := mockFS.Readlink("/home/dev/.ssh/id_ed25519.pub"); err == nil {
		t.Error("Readlink on a regular file should fail")
	}
	if _, err := mockFS.Lstat("/missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Lstat error = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFS_UncleanPaths(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/home/dev/.ssh/real.pub", []byte("ssh-ed25519 AAAA real"), 0644)
	mockFS.AddSymlink("/home/dev/.ssh/alias.pub", "real.pub")

	tests := []struct {
		name string
		path string
	}{
		{"double slash", "/home/dev/.ssh//alias.pub"},
		{"dot segment", "/home/dev/./.ssh/alias.pub"},
		{"trailing slash", "/home/dev/.ssh/alias.pub/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := mockFS.Lstat(tt.path)
			if err != nil {
				t.Fatalf("Lstat(%q) error: %v", tt.path, err)
			}
			if info.Mode()&fs.ModeSymlink == 0 {
				t.Errorf("Lstat(%q) should report a symlink", tt.path)
			}
			if target, err := mockFS.Readlink(tt.path); err != nil || target != "real.pub" {
				t.Errorf("Readlink(%q) = %q, %v", tt.path, target, err)
			}
		})
	}

	data, err := mockFS.ReadFile("/home//dev/.ssh/real.pub")
	if err != nil || string(data) != "ssh-ed25519 AAAA real" {
		t.Errorf("ReadFile = %q, %v", data, err)
	}
	if _, err := mockFS.ReadDir("/home/dev/.ssh/"); err != nil {
		t.Errorf("ReadDir with trailing slash error: %v", err)
	}
}

func TestMockFS_ReadDirSorted(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/keys/b.pub", nil, 0644)
	mockFS.AddFile("/keys/a.pub", nil, 0644)
	mockFS.AddDir("/keys/sub")
	mockFS.AddFile("/other/c.pub", nil, 0644)

	entries, err := mockFS.ReadDir("/keys")
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"a.pub", "b.pub", "sub"}
	if len(names) != len(want) {
		t.Fatalf("ReadDir names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if !entries[2].IsDir() {
		t.Error("sub should be a directory entry")
	}

	if _, err := mockFS.ReadDir("/missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadDir error = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFS_Rename(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/out/.a.tmp", []byte("new"), 0644)
	mockFS.AddFile("/out/a", []byte("old"), 0644)

	if err := mockFS.Rename("/out/.a.tmp", "/out/a"); err != nil {
		t.Fatalf("Rename error: %v", err)
	}
	if _, ok := mockFS.GetFile("/out/.a.tmp"); ok {
		t.Error("source should be gone after rename")
	}
	if data, _ := mockFS.GetFile("/out/a"); string(data) != "new" {
		t.Errorf("destination = %q, want %q", data, "new")
	}

	if err := mockFS.Rename("/out/missing", "/out/b"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Rename error = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFS_ErrorInjection(t *testing.T) {
	injected := errors.New("injected")
	mockFS := NewMockFS()
	mockFS.ReadFileErr = injected
	mockFS.WriteFileErr = injected
	mockFS.RenameErr = injected
	mockFS.MkdirAllErr = injected
	mockFS.ReadDirErr = injected

	if _, err := mockFS.ReadFile("/x"); err != injected {
		t.Errorf("ReadFile error = %v", err)
	}
	if err := mockFS.WriteFile("/x", nil, 0644); err != injected {
		t.Errorf("WriteFile error = %v", err)
	}
	if err := mockFS.Rename("/x", "/y"); err != injected {
		t.Errorf("Rename error = %v", err)
	}
	if err := mockFS.MkdirAll("/x", 0755); err != injected {
		t.Errorf("MkdirAll error = %v", err)
	}
	if _, err := mockFS.ReadDir("/x"); err != injected {
		t.Errorf("ReadDir error = %v", err)
	}
}

func TestDefaultFS(t *testing.T) {
	mockFS := NewMockFS()
	SetDefaultFS(mockFS)
	defer ResetDefaults()

	if DefaultFS() != mockFS {
		t.Error("DefaultFS should return the injected filesystem")
	}

	ResetDefaults()
	if _, ok := DefaultFS().(*osFileSystem); !ok {
		t.Error("ResetDefaults should restore the OS filesystem")
	}
}
