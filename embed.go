package vocaltrans

import (
	"embed"
	"io/fs"
)

//go:embed data/*.txt
var embedded embed.FS

// DataFS returns the built-in rule tables as a file system rooted at the
// directory holding the table files.
func DataFS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}
