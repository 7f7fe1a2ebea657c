package storage

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestMemoryBasics(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(false)

	if err := mem.MkdirAll(ctx, "docs/sub"); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := mem.Create(ctx, "docs/Read Me.md"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if ok, _ := mem.IsDir(ctx, "docs/sub"); !ok {
		t.Error("IsDir(docs/sub) should be true")
	}
	if ok, _ := mem.IsFile(ctx, "docs/Read Me.md"); !ok {
		t.Error("IsFile(docs/Read Me.md) should be true")
	}
	if ok, _ := mem.Exists(ctx, "docs/read me.md"); ok {
		t.Error("case-sensitive memory backend must not fold case")
	}

	entries, err := mem.List(ctx, "docs")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(entries))
	}
	if entries[0].Path != "docs/Read Me.md" || entries[1].Path != "docs/sub" {
		t.Errorf("List() = %+v, want sorted [docs/Read Me.md docs/sub]", entries)
	}

	if err := mem.Rename(ctx, "docs", "d"); err != ErrUnsupported {
		t.Errorf("Rename() error = %v, want ErrUnsupported", err)
	}
	if mem.Capabilities().NativeRename {
		t.Error("memory backend should not report native rename")
	}
	if _, ok := mem.SysPath("docs"); ok {
		t.Error("memory backend has no OS paths")
	}
}

func TestMemoryCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(true)
	mem.MkdirAll(ctx, "dir")
	mem.Create(ctx, "dir/Photo.JPG")

	ok, err := mem.Exists(ctx, "dir/photo.jpg")
	if err != nil || !ok {
		t.Errorf("Exists(dir/photo.jpg) = %v, %v; want true on a case-insensitive mirror", ok, err)
	}
	if ok, _ := mem.Exists(ctx, "missing/photo.jpg"); ok {
		t.Error("Exists() under a missing parent should be false")
	}
}

func TestMemoryMoves(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(false)
	mem.MkdirAll(ctx, "My Dir/Sub")
	mem.Create(ctx, "My Dir/a.txt")
	mem.Create(ctx, "My Dir/Sub/b.txt")
	mem.Create(ctx, "taken.txt")

	if err := mem.Move(ctx, "My Dir/a.txt", "taken.txt"); err == nil {
		t.Error("Move() should refuse an existing destination")
	}

	if err := mem.MoveDir(ctx, "My Dir", "my-dir"); err != nil {
		t.Fatalf("MoveDir() error = %v", err)
	}
	for _, p := range []string{"my-dir/a.txt", "my-dir/Sub/b.txt"} {
		if ok, _ := mem.IsFile(ctx, p); !ok {
			t.Errorf("%s missing after MoveDir()", p)
		}
	}
	if ok, _ := mem.Exists(ctx, "My Dir"); ok {
		t.Error("source directory should be gone after MoveDir()")
	}

	if err := mem.Move(ctx, "my-dir/a.txt", "my-dir/a-moved.txt"); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if ok, _ := mem.Exists(ctx, "my-dir/a.txt"); ok {
		t.Error("source file should be gone after Move()")
	}
}

func TestMirror(t *testing.T) {
	ctx := context.Background()
	tempDir := newTempTree(t,
		"root/My Photos/IMG_0001.JPG",
		"root/My Photos/img_0001.jpg",
		"root/Docs/Notes.md",
		"root/Empty/",
	)
	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	mem := NewMemory(local.Capabilities().CaseInsensitive)
	result, err := Mirror(ctx, local, mem, "root")
	if err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}
	if !result.OK() {
		t.Errorf("Mirror() failures = %+v", result.Failed)
	}
	if result.Dirs != 4 {
		t.Errorf("Dirs = %d, want 4", result.Dirs)
	}

	wantFiles := []string{"root/Docs/Notes.md", "root/My Photos/IMG_0001.JPG"}
	if !local.Capabilities().CaseInsensitive {
		wantFiles = append(wantFiles, "root/My Photos/img_0001.jpg")
		if result.Files != 3 {
			t.Errorf("Files = %d, want 3", result.Files)
		}
	}
	for _, p := range wantFiles {
		if ok, _ := mem.IsFile(ctx, p); !ok {
			t.Errorf("%s not mirrored", p)
		}
	}
	if ok, _ := mem.IsDir(ctx, "root/Empty"); !ok {
		t.Error("empty directory not mirrored")
	}

	// the real tree is never touched
	if _, err := os.Stat(filepath.Join(tempDir, "root", "My Photos", "IMG_0001.JPG")); err != nil {
		t.Errorf("source tree modified: %v", err)
	}
}

func TestMirrorMissingStart(t *testing.T) {
	tempDir := newTempTree(t)
	local, _ := NewLocal(tempDir)

	if _, err := Mirror(context.Background(), local, NewMemory(false), "nope"); err == nil {
		t.Error("Mirror() should fail for a missing start path")
	}
}

func TestMirrorUnreadableSubtree(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	ctx := context.Background()
	tempDir := newTempTree(t, "root/locked/secret.txt", "root/open/file.txt")
	locked := filepath.Join(tempDir, "root", "locked")
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer os.Chmod(locked, 0755)

	local, _ := NewLocal(tempDir)
	mem := NewMemory(false)
	result, err := Mirror(ctx, local, mem, "root")
	if err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}
	if result.OK() {
		t.Fatal("Mirror() should report the unreadable subtree")
	}
	if result.Failed[0].Path != "root/locked" {
		t.Errorf("Failed[0].Path = %s, want root/locked", result.Failed[0].Path)
	}
	if ok, _ := mem.IsFile(ctx, "root/open/file.txt"); !ok {
		t.Error("sibling subtree should still be mirrored")
	}
}
