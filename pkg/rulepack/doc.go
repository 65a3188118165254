// Package rulepack implements the rule pack interchange format and the small
// transformations that operate on whole packs.
//
// A pack is a structured record with a required id and a required rules sequence,
// plus optional name, description and variables. The same record is accepted as JSON
// or YAML:
//
//	id: weather
//	name: Weather
//	rules:
//	  - symbol: forecast
//	    text: Today will be {weather}.
//	  - symbol: weather
//	    text: sunny
//	    weight: 50
//	    tags: [dry]
//	variables:
//	  city: Lisbon
//
// Decoding fails with domain.ErrMalformedRulePack when the id is missing or the rules
// field is not a sequence, before any pack value is produced. Encoding is the inverse
// and round-trips losslessly.
package rulepack
