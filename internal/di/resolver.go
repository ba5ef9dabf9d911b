package di

import "github.com/plugboard-dev/plugboard/internal/extension"

// Resolver returns an extension resolver that passes every contribution
// argument through inj.Inject. Arguments naming a registered id are replaced
// by the instance; structs have their nil injectable fields filled.
func Resolver(inj *Injector) func(extension.Contribution) extension.Contribution {
	return func(c extension.Contribution) extension.Contribution {
		return c.Map(inj.Inject)
	}
}
