package squish

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

// Archive packing and unpacking. Zip, rar and 7z operate on whole
// files; tar streams, so it composes with the stream codecs.

// errUnsafeEntry guards against archive entries escaping the
// destination directory.
func errUnsafeEntry(name string) error {
	return fmt.Errorf("squish: archive entry '%s' points outside the output directory", name)
}

// PackTar writes the named files and directories into a tar stream.
// Paths are stored relative to their parent directory.
func PackTar(paths []string, w io.Writer) error {
	tw := tar.NewWriter(w)
	for _, root := range paths {
		base := filepath.Dir(root)
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(base, path)
			if err != nil {
				return err
			}
			hdr, err := tar.FileInfoHeader(info, "")
			if err != nil {
				return err
			}
			hdr.Name = filepath.ToSlash(rel)
			if info.IsDir() {
				hdr.Name += "/"
			}
			if err := tw.WriteHeader(hdr); err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				return nil
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = io.Copy(tw, f)
			return err
		})
		if err != nil {
			return err
		}
	}
	return tw.Close()
}

// UnpackTar extracts a tar stream into dst and returns the paths it
// created.
func UnpackTar(r io.Reader, dst string) ([]string, error) {
	tr := tar.NewReader(r)
	var created []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return created, nil
		}
		if err != nil {
			return created, err
		}
		name := filepath.FromSlash(hdr.Name)
		if !filepath.IsLocal(name) {
			return created, errUnsafeEntry(hdr.Name)
		}
		target := filepath.Join(dst, name)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)); err != nil {
				return created, err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, os.FileMode(hdr.Mode)); err != nil {
				return created, err
			}
		default:
			// Symlinks and specials are skipped with a warning rather
			// than failing the whole extraction.
			Warningf("skipping unsupported tar entry '%s'", hdr.Name)
			continue
		}
		created = append(created, target)
	}
}

// PackZip writes the named files and directories into a zip stream.
func PackZip(paths []string, w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, root := range paths {
		base := filepath.Dir(root)
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(base, path)
			if err != nil {
				return err
			}
			hdr, err := zip.FileInfoHeader(info)
			if err != nil {
				return err
			}
			hdr.Name = filepath.ToSlash(rel)
			if info.IsDir() {
				hdr.Name += "/"
			} else {
				hdr.Method = zip.Deflate
			}
			entry, err := zw.CreateHeader(hdr)
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				return nil
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = io.Copy(entry, f)
			return err
		})
		if err != nil {
			return err
		}
	}
	return zw.Close()
}

// UnpackZip extracts the zip archive at path into dst.
func UnpackZip(path, dst string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var created []string
	for _, file := range zr.File {
		name := filepath.FromSlash(file.Name)
		if !filepath.IsLocal(name) {
			return created, errUnsafeEntry(file.Name)
		}
		target := filepath.Join(dst, name)
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, file.Mode()); err != nil {
				return created, err
			}
			created = append(created, target)
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return created, err
		}
		err = writeEntry(target, rc, file.Mode())
		rc.Close()
		if err != nil {
			return created, err
		}
		created = append(created, target)
	}
	return created, nil
}

// UnpackRar extracts the rar archive at path into dst. Rar is
// read-only: there is no compressor counterpart.
func UnpackRar(path, dst string) ([]string, error) {
	rc, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var created []string
	for {
		hdr, err := rc.Next()
		if err == io.EOF {
			return created, nil
		}
		if err != nil {
			return created, err
		}
		name := filepath.FromSlash(hdr.Name)
		if !filepath.IsLocal(name) {
			return created, errUnsafeEntry(hdr.Name)
		}
		target := filepath.Join(dst, name)
		if hdr.IsDir {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return created, err
			}
		} else {
			if err := writeEntry(target, rc, 0o644); err != nil {
				return created, err
			}
		}
		created = append(created, target)
	}
}

// UnpackSevenZip extracts the 7z archive at path into dst. Like rar,
// decompression only.
func UnpackSevenZip(path, dst string) ([]string, error) {
	sz, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer sz.Close()

	var created []string
	for _, file := range sz.File {
		name := filepath.FromSlash(file.Name)
		if !filepath.IsLocal(name) {
			return created, errUnsafeEntry(file.Name)
		}
		target := filepath.Join(dst, name)
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return created, err
			}
			created = append(created, target)
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return created, err
		}
		err = writeEntry(target, rc, file.Mode())
		rc.Close()
		if err != nil {
			return created, err
		}
		created = append(created, target)
	}
	return created, nil
}

// ListTar returns the entry names of a tar stream.
func ListTar(r io.Reader) ([]string, error) {
	tr := tar.NewReader(r)
	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return names, err
		}
		names = append(names, hdr.Name)
	}
}

// ListZip returns the entry names of the zip archive at path.
func ListZip(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, file := range zr.File {
		names = append(names, file.Name)
	}
	return names, nil
}

// ListRar returns the entry names of the rar archive at path.
func ListRar(path string) ([]string, error) {
	rc, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var names []string
	for {
		hdr, err := rc.Next()
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return names, err
		}
		names = append(names, hdr.Name)
	}
}

// ListSevenZip returns the entry names of the 7z archive at path.
func ListSevenZip(path string) ([]string, error) {
	sz, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer sz.Close()

	names := make([]string, 0, len(sz.File))
	for _, file := range sz.File {
		names = append(names, file.Name)
	}
	return names, nil
}

// writeEntry writes one extracted file, creating parent directories as
// needed.
func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
