// Package random provides the deterministic pseudo-random source used by the generator.
//
// The default implementation is a multiplicative linear congruential generator
// (Park–Miller, modulus 2^31-1, multiplier 16807). Two sources seeded with the same
// value produce the same infinite sequence, so a generation run can be reproduced
// from its seed alone. The Source interface lets tests substitute a scripted stub.
package random
