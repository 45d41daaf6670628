// +build go1.16

package datafiles

import _ "embed" // at least "import _ "embed"" is required

//go:embed viewer.html
var viewerHTMLEmbed string

// ViewerHTML returns the embedded preview page the web server serves at /.
func ViewerHTML() string {
	return viewerHTMLEmbed
}
