package naming

import (
	"path/filepath"
	"strings"
)

// DeriveBase strips one trailing ext from the final path component of
// sourcePath. The directory part is kept. A name without ext, or a name that
// is nothing but ext (".22l"), is returned unchanged so the result is never
// empty.
func DeriveBase(sourcePath, ext string) string {
	dir, file := filepath.Split(sourcePath)
	if ext == "" || !strings.HasSuffix(file, ext) || file == ext {
		return sourcePath
	}
	return dir + strings.TrimSuffix(file, ext)
}
