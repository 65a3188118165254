/*
Package domain contains the core domain models of the rulegen generator.

It defines the grammar entities (rules and rule packs), the result of a generation
call, the inline markers used for soft failures and the sentinel errors for hard ones.
This package is kept pure and free of external dependencies like I/O or persistence.

# Key Entities

  - Rule: one alternative expansion for a symbol (template text, weight, tags).
  - RulePack: a named, shareable bundle of rules and default variables.
  - Result: the trimmed text produced by a generation call plus the variables in effect.
  - LifecycleHooks: callbacks fired while the engine expands symbols.
*/
package domain
