package util

import (
	"os"

	"github.com/spf13/afero"
)

// CheckFileExists reports whether fpath exists on fs. Stat errors other
// than "not exist" count as existing.
func CheckFileExists(fs afero.Fs, fpath string) bool {
	_, err := fs.Stat(fpath)
	if err == nil {
		return true
	}
	return !os.IsNotExist(err)
}
