package setup

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// copySiblingFiles copies the regular files of dir into dst, skipping the
// named entry. Used to preserve include files next to smb.conf.
func copySiblingFiles(dir, dst, skip string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == skip {
			continue
		}
		src := filepath.Join(dir, entry.Name())
		if err := copyFile(src, filepath.Join(dst, entry.Name())); err != nil {
			log.Printf("backup of %s failed: %v", src, err)
		}
	}
}

// copyTree mirrors src into dst recursively. Errors on single entries are
// logged and skipped so a partially unreadable tree still gets backed up.
func copyTree(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyTree(from, to); err != nil {
				log.Printf("backup of %s failed: %v", from, err)
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if err := copyFile(from, to); err != nil {
			log.Printf("backup of %s failed: %v", from, err)
		}
	}
	return nil
}
