package debugs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tapebf/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
