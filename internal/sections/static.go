package sections

import (
	"embed"
	"io/fs"
)

//go:embed static/*.css
var staticFS embed.FS

// Static is the asset tree served under <base>/assets/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
