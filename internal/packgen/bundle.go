package packgen

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// Bundle упаковывает каталоги пакетов в один архив (.mcpack/.mcaddon).
// Каждый каталог кладется в архив под своим базовым именем.
func Bundle(out string, dirs ...string) (int, error) {
	f, err := os.Create(out)
	if err != nil {
		return 0, err
	}
	zw := zip.NewWriter(f)

	files := 0
	for _, dir := range dirs {
		base := filepath.Base(dir)
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			w, err := zw.Create(filepath.ToSlash(filepath.Join(base, rel)))
			if err != nil {
				return err
			}
			src, err := os.Open(path)
			if err != nil {
				return err
			}
			defer src.Close()
			if _, err := io.Copy(w, src); err != nil {
				return err
			}
			files++
			return nil
		})
		if err != nil {
			zw.Close()
			f.Close()
			return files, err
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return files, err
	}
	return files, f.Close()
}
