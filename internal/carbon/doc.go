// Package carbon implements a RothC-style five-pool soil organic carbon
// model driven monthly.
//
//   - [Pools]: DPM, RPM, BIO, HUM and the inert IOM pool (Mg C/ha)
//   - [Step]: one month of first-order decay and redistribution
//   - [Aggregate]: daily weather and crop cover to monthly climate
//   - [Simulate]: multi-year projection over a crop rotation
//
// Decomposed carbon is split by a clay-dependent partition into respired
// CO2 and new BIO+HUM. Emitted CO2 is reported per month and not retained.
package carbon
