package cmds

// Var defines name to set the value and name. to reset it to zero.
func Var[T any](name string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}))
	var zero T
	Define(name+".", Func(func() {
		value = zero
	}))
	return &value
}

// Switch defines name to turn the switch on and !name to turn it off.
func Switch(name string) *bool {
	var value bool
	Define(name, Func(func() {
		value = true
	}))
	Define("!"+name, Func(func() {
		value = false
	}))
	return &value
}

func Collect[T any](name string) *[]T {
	var value []T
	Define(name, Func(func(v T) {
		value = append(value, v)
	}))
	return &value
}
