package squish

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"testing"
)

// buildTree creates a small directory tree to archive:
//
//	root/top.txt
//	root/data/inner.txt
func buildTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "root")
	if err := os.MkdirAll(filepath.Join(root, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	mustWriteFile(t, filepath.Join(root, "top.txt"), "top content")
	mustWriteFile(t, filepath.Join(root, "data", "inner.txt"), "inner content")
	return root
}

func checkExtractedTree(t *testing.T, dst string) {
	t.Helper()
	for path, want := range map[string]string{
		filepath.Join(dst, "root", "top.txt"):           "top content",
		filepath.Join(dst, "root", "data", "inner.txt"): "inner content",
	} {
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("missing extracted file: %v", err)
		}
		if string(got) != want {
			t.Errorf("%s content = %q, want %q", path, got, want)
		}
	}
}

func TestTarRoundtrip(t *testing.T) {
	root := buildTree(t)

	var buf bytes.Buffer
	if err := PackTar([]string{root}, &buf); err != nil {
		t.Fatalf("PackTar: %v", err)
	}

	names, err := ListTar(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ListTar: %v", err)
	}
	sort.Strings(names)
	want := []string{"root/", "root/data/", "root/data/inner.txt", "root/top.txt"}
	if !slices.Equal(names, want) {
		t.Errorf("entries = %v, want %v", names, want)
	}

	dst := t.TempDir()
	if _, err := UnpackTar(bytes.NewReader(buf.Bytes()), dst); err != nil {
		t.Fatalf("UnpackTar: %v", err)
	}
	checkExtractedTree(t, dst)
}

func TestZipRoundtrip(t *testing.T) {
	root := buildTree(t)

	var buf bytes.Buffer
	if err := PackZip([]string{root}, &buf); err != nil {
		t.Fatalf("PackZip: %v", err)
	}

	archive := filepath.Join(t.TempDir(), "tree.zip")
	if err := os.WriteFile(archive, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := ListZip(archive)
	if err != nil {
		t.Fatalf("ListZip: %v", err)
	}
	sort.Strings(names)
	want := []string{"root/", "root/data/", "root/data/inner.txt", "root/top.txt"}
	if !slices.Equal(names, want) {
		t.Errorf("entries = %v, want %v", names, want)
	}

	dst := t.TempDir()
	if _, err := UnpackZip(archive, dst); err != nil {
		t.Fatalf("UnpackZip: %v", err)
	}
	checkExtractedTree(t, dst)
}

func TestUnpackTarRejectsEscapingEntries(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	content := []byte("evil")
	if err := tw.WriteHeader(&tar.Header{
		Name:     "../evil.txt",
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     int64(len(content)),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}

	dst := t.TempDir()
	if _, err := UnpackTar(bytes.NewReader(buf.Bytes()), dst); err == nil {
		t.Fatal("UnpackTar accepted an entry escaping the output directory")
	}
	if _, err := os.Stat(filepath.Join(dst, "..", "evil.txt")); err == nil {
		t.Fatal("escaping entry was written to disk")
	}
}

func TestUnpackTarSkipsSpecialsWithWarning(t *testing.T) {
	got := captureWarnings(t)

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := tw.WriteHeader(&tar.Header{
		Name:     "link",
		Typeflag: tar.TypeSymlink,
		Linkname: "target",
	}); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}

	created, err := UnpackTar(bytes.NewReader(buf.Bytes()), t.TempDir())
	if err != nil {
		t.Fatalf("UnpackTar: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("created = %v, want none", created)
	}
	if len(*got) == 0 {
		t.Error("expected a warning about the skipped entry")
	}
}
