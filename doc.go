/*
Package rulegen is a recursive, weighted, grammar-driven text generator.

A generator holds named production rules (symbol → alternative text templates) loaded
from rule packs. Generating from a root symbol expands nested {symbol} placeholders
into finished text, choosing among alternatives with a seeded, deterministic random
stream: the same rules and the same seed always produce the same text.

# Concept

  - Symbol: a named slot that expands to one of its registered rules.
  - Rule: one weighted alternative for a symbol. Higher weight, more likely.
  - Variable: a terminal substitution that shadows a same-named symbol.
  - Rule pack: a shareable bundle of rules and default variables.

Content problems never abort a run. An undefined symbol renders as [UNDEFINED:name] and
recursion that reaches the depth limit renders as [MAX_DEPTH:name].

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/rulegen"
		"github.com/aretw0/rulegen/pkg/dsl"
		"github.com/aretw0/rulegen/pkg/random"
	)

	func main() {
		pack := dsl.New("weather").
			Rule("forecast", "Today will be {weather}.").
			Rule("weather", "sunny").Weight(50).
			Rule("weather", "rainy").Weight(15).
			Build()

		gen, err := rulegen.New(rulegen.WithRulePacks(pack))
		if err != nil {
			log.Fatal(err)
		}

		res, err := gen.Generate("forecast", rulegen.WithSeed(random.StringSeed("weather-0")))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.Text)
	}

A Generator is not safe for concurrent use. Wrap it with NewLocked when several
goroutines share one instance, or give each caller its own generator.
*/
package rulegen
