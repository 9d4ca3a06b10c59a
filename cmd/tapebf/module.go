package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tapebf/bfconfigs"
	"github.com/reusee/tapebf/debugs"
)

type Module struct {
	dscope.Module
	Configs bfconfigs.Module
	Debugs  debugs.Module
}
