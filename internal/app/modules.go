package app

import (
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/specialistvlad/blueprintgo/modules/env_vars"
	"github.com/specialistvlad/blueprintgo/modules/flow"
	"github.com/specialistvlad/blueprintgo/modules/print"
	"github.com/specialistvlad/blueprintgo/modules/value"
)

// coreModules is the definitive list of all modules that are compiled into
// the blueprintgo binary.
var coreModules = []registry.Module{
	&env_vars.Module{},
	&flow.Module{},
	&print.Module{},
	&value.Module{},
}
