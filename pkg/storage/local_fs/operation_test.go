package local_fs

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"
)

func TestLocalFS_SendContent(t *testing.T) {
	tempDir := t.TempDir()
	ctx := context.Background()

	client, err := NewClient(&Config{
		SavePath: tempDir,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	// Test with a subdirectory to ensure SendContent creates directories
	filename := "/echoapp_memos/test_content.md"
	content := []byte("hello content")
	modTime := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	savedPath, err := client.SendContent(ctx, filename, content, modTime)
	if err != nil {
		t.Fatalf("SendContent failed: %v", err)
	}

	savedContent, err := os.ReadFile(savedPath)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(savedContent, content) {
		t.Errorf("Content mismatch: expected %s, got %s", content, string(savedContent))
	}

	fileInfo, err := os.Stat(savedPath)
	if err != nil {
		t.Fatalf("Failed to stat saved file: %v", err)
	}
	if !fileInfo.ModTime().Equal(modTime) {
		diff := fileInfo.ModTime().Sub(modTime)
		if diff < -time.Second || diff > time.Second {
			t.Errorf("ModTime mismatch: expected %v, got %v (diff %v)", modTime, fileInfo.ModTime(), diff)
		}
	}

	read, err := client.ReadContent(ctx, filename)
	if err != nil {
		t.Fatalf("ReadContent failed: %v", err)
	}
	if !bytes.Equal(read, content) {
		t.Errorf("ReadContent mismatch: got %s", string(read))
	}
}

func TestLocalFS_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	client, _ := NewClient(&Config{SavePath: t.TempDir(), CustomPath: "mirror"})

	if err := client.MkdirAll(ctx, "/echoapp_backup"); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := client.MkdirAll(ctx, "/echoapp_backup"); err != nil {
		t.Fatalf("MkdirAll on existing dir failed: %v", err)
	}
	if _, err := client.SendContent(ctx, "/echoapp_backup/a.json", []byte("{}"), time.Time{}); err != nil {
		t.Fatalf("SendContent failed: %v", err)
	}

	entries, err := client.List(ctx, "/")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || !entries[0].IsDir || entries[0].Path != "/echoapp_backup" {
		t.Fatalf("unexpected root listing: %+v", entries)
	}

	if err := client.Delete(ctx, "/echoapp_backup/a.json"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	entries, _ = client.List(ctx, "/echoapp_backup")
	if len(entries) != 0 {
		t.Fatalf("expected empty dir after delete, got %+v", entries)
	}

	// deleting a missing key is a no-op
	if err := client.Delete(ctx, "/echoapp_backup/missing.json"); err != nil {
		t.Fatalf("Delete of missing file failed: %v", err)
	}
	if err := client.Delete(ctx, "/"); err == nil {
		t.Fatal("expected refusal to delete the root")
	}
}

func TestLocalFS_DeleteRootKeepsMirror(t *testing.T) {
	ctx := context.Background()
	client, _ := NewClient(&Config{SavePath: t.TempDir(), CustomPath: "mirror"})

	if _, err := client.SendContent(ctx, "/echoapp_memos/a.md", []byte("# a"), time.Time{}); err != nil {
		t.Fatalf("SendContent failed: %v", err)
	}

	for _, key := range []string{"/", "", ".", "/./", "//"} {
		if err := client.Delete(ctx, key); err == nil {
			t.Fatalf("expected refusal to delete the root for key %q", key)
		}
	}

	data, err := client.ReadContent(ctx, "/echoapp_memos/a.md")
	if err != nil {
		t.Fatalf("mirror content removed: %v", err)
	}
	if string(data) != "# a" {
		t.Fatalf("unexpected content %q", data)
	}
}
