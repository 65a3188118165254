/*
Package dsl provides a fluent builder for constructing rule packs in Go code.

It is an alternative to writing packs as JSON or YAML files, useful for packs generated
at runtime, for tests, and for getting compile-time checks on pack construction.

Weight and Tags apply to the rule added last, so a pack reads top to bottom:

	package main

	import (
		"github.com/aretw0/rulegen"
		"github.com/aretw0/rulegen/pkg/dsl"
	)

	func main() {
		pack := dsl.New("greeting").
			Name("Greetings").
			Rule("greeting", "{salutation}, {name}!").
			Rules("salutation", "Hello", "Hi there").
			Rule("salutation", "Greetings").Weight(0.5).Tags("formal").
			Var("name", "World").
			Build()

		// The resulting pack can be handed to rulegen.New(rulegen.WithRulePacks(pack)).
		_ = pack
	}
*/
package dsl
