package app

import (
	"github.com/plugboard-dev/plugboard/modules/fizzbuzz"
	"github.com/plugboard-dev/plugboard/modules/health"
	"github.com/plugboard-dev/plugboard/modules/hello"
)

// coreModules is the definitive list of all modules that are compiled into
// the plugboard binary.
var coreModules = []Module{
	&health.Module{},
	&hello.Module{},
	&fizzbuzz.Module{},
}
