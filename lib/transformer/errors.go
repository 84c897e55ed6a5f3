package transformer

import "github.com/samber/oops"

var (
	ErrTemplateNotFound = oops.New("template file not found")
	ErrOutputExists     = oops.New("output file already exists")
	ErrIO               = oops.New("template transformation I/O failure")
)
