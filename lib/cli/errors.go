package cli

import "github.com/samber/oops"

var ErrNoOperation = oops.New("no service operation found: must specify -C, -D, or -U option")
