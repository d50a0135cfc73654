package app

import (
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/modules/declarations"
	"github.com/specialistvlad/codeshape/modules/expressions"
	"github.com/specialistvlad/codeshape/modules/statements"
	"github.com/specialistvlad/codeshape/modules/tokens"
)

// coreModules is the definitive list of all node kinds compiled into the
// codeshape binary.
var coreModules = []registry.Module{
	&declarations.Module{},
	&statements.Module{},
	&expressions.Module{},
	&tokens.Module{},
}
