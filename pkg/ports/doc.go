/*
Package ports defines the driven ports (interfaces) of the rulegen generator.

These interfaces decouple the expansion engine from the rule store implementation and
decouple the facade from the places rule packs come from (files, a loam repository,
redis).

# Key Interfaces

  - RuleReader: read-only view of the rule store used during expansion.
  - PackSource: yields rule packs in load order.
  - PackRepository: a PackSource that can also save and delete packs by ID.
*/
package ports
